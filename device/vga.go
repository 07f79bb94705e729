/*
 * rv32emu - VGA controller and framebuffer device
 *
 * Copyright 2026, rv32emu contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package device

import "github.com/rv32emu/rv32emu/memory"

// VGA backs the control pair {width<<16|height, sync-flag latch} and a
// separate framebuffer region of width*height 32-bit ARGB pixels.
type VGA struct {
	width, height uint32
	ctl           []byte // 8 bytes: word0 geometry, word1 sync latch
	fb            []byte
	out           Renderer
}

// NewVGA allocates a VGA device of the given geometry, presenting
// through out. A nil out is valid (headless) and simply drops frames.
func NewVGA(width, height uint32, out Renderer) *VGA {
	v := &VGA{width: width, height: height, ctl: make([]byte, 8), fb: make([]byte, width*height*4), out: out}
	putWord(v.ctl, 0, width<<16|height)
	return v
}

// CtlRegion is the {geometry, sync flag} MMIO region.
func (v *VGA) CtlRegion(base uint32) memory.Region {
	return memory.Region{Name: "vga-ctl", Base: base, Size: uint32(len(v.ctl)), Backing: v.ctl, Dev: v}
}

// FBRegion is the raw framebuffer MMIO region.
func (v *VGA) FBRegion(base uint32) memory.Region {
	return memory.Region{Name: "vga-fb", Base: base, Size: uint32(len(v.fb)), Backing: v.fb}
}

// OnAccess implements memory.Device. A write to the sync-flag word
// (offset 4) is write-1-to-latch: any write sets the flag, regardless of
// the value written.
func (v *VGA) OnAccess(offset uint32, length int, isWrite bool) {
	if isWrite && offset == 4 {
		putWord(v.ctl, 4, 1)
	}
}

// Tick is driven once per retired instruction (or at a lower frequency)
// by the top-level loop: if the sync flag is set, present the
// framebuffer and clear the flag.
func (v *VGA) Tick() {
	if getWord(v.ctl, 4) == 0 {
		return
	}
	if v.out != nil {
		v.out.Present(v.width, v.height, v.fb)
	}
	putWord(v.ctl, 4, 0)
}

// Snapshot returns the current geometry and a copy of the framebuffer,
// for a post-mortem dump on abort (§9 supplement).
func (v *VGA) Snapshot() (width, height uint32, argb []byte) {
	argb = make([]byte, len(v.fb))
	copy(argb, v.fb)
	return v.width, v.height, argb
}
