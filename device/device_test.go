/*
 * rv32emu - MMIO device test cases
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
	"bytes"
	"testing"

	"github.com/rv32emu/rv32emu/memory"
)

type fakeRenderer struct {
	presented bool
	w, h      uint32
}

func (f *fakeRenderer) Present(w, h uint32, argb []byte) {
	f.presented = true
	f.w, f.h = w, h
}

func TestVGASyncFlagPresents(t *testing.T) {
	r := &fakeRenderer{}
	v := NewVGA(320, 200, r)
	mem := memory.New(memory.DefaultBase, 16)
	mem.MapRegion(v.CtlRegion(0x1000_0000))

	if err := mem.Write(0x1000_0004, 4, 1); err != nil {
		t.Fatalf("Write: %v", err)
	}
	v.Tick()
	if !r.presented || r.w != 320 || r.h != 200 {
		t.Errorf("renderer not presented with expected geometry: %+v", r)
	}

	r.presented = false
	v.Tick()
	if r.presented {
		t.Error("Tick presented again after flag was cleared")
	}
}

func TestKeyboardFIFOOrder(t *testing.T) {
	k := NewKeyboard()
	mem := memory.New(memory.DefaultBase, 16)
	mem.MapRegion(k.Region(0x2000_0000))

	k.Push(0x41, true)
	k.Push(0x42, false)

	v, _ := mem.Read(0x2000_0000, 4)
	if v != 0x41|keydownBit {
		t.Errorf("first read = %#x, want keydown 0x41", v)
	}
	v, _ = mem.Read(0x2000_0000, 4)
	if v != 0x42 {
		t.Errorf("second read = %#x, want keyup 0x42", v)
	}
	v, _ = mem.Read(0x2000_0000, 4)
	if v != 0 {
		t.Errorf("empty queue read = %#x, want 0", v)
	}
}

func TestLegacyUARTWritesOut(t *testing.T) {
	var buf bytes.Buffer
	u := NewLegacyUART(&buf)
	mem := memory.New(memory.DefaultBase, 16)
	mem.MapRegion(u.Region(0x3000_0000))

	mem.Write(0x3000_0000, 1, 'X')
	if buf.String() != "X" {
		t.Errorf("got %q, want %q", buf.String(), "X")
	}
}
