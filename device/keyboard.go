/*
 * rv32emu - keyboard event queue device
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

import (
	"container/list"

	"github.com/rv32emu/rv32emu/memory"
)

// keydownBit marks bit 15 of a keycode as keydown (set) vs. keyup (clear).
const keydownBit = 1 << 15

// Keyboard is a single 32-bit readable register returning the oldest
// pending keycode from the host event queue, or 0 if empty.
type Keyboard struct {
	backing []byte
	queue   *list.List
}

// NewKeyboard builds an empty keyboard event queue.
func NewKeyboard() *Keyboard {
	return &Keyboard{backing: make([]byte, 4), queue: list.New()}
}

// Region is the keyboard's MMIO region.
func (k *Keyboard) Region(base uint32) memory.Region {
	return memory.Region{Name: "keyboard", Base: base, Size: 4, Backing: k.backing, Dev: k}
}

// Push enqueues a keycode; down selects bit 15 keydown vs. keyup.
func (k *Keyboard) Push(code uint16, down bool) {
	v := uint32(code)
	if down {
		v |= keydownBit
	}
	k.queue.PushBack(v)
}

// OnAccess implements memory.Device: a read dequeues the oldest event.
func (k *Keyboard) OnAccess(offset uint32, length int, isWrite bool) {
	if isWrite {
		return
	}
	var v uint32
	if front := k.queue.Front(); front != nil {
		v = front.Value.(uint32)
		k.queue.Remove(front)
	}
	putWord(k.backing, 0, v)
}
