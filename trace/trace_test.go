/*
 * rv32emu - tracer test cases
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

package trace

import "testing"

// S2 — jal/jalr call-return: one C entry, one R entry, shadow depth 0.
func TestCallReturnShadowDepth(t *testing.T) {
	tr := New(nil)
	tr.OnCall(0x1000, 0x2000)
	if tr.ShadowDepth() != 1 {
		t.Fatalf("depth after call = %d, want 1", tr.ShadowDepth())
	}
	tr.OnReturn(0x1004)
	if tr.ShadowDepth() != 0 {
		t.Fatalf("depth after return = %d, want 0", tr.ShadowDepth())
	}
	if len(tr.fcalls) != 2 || tr.fcalls[0].Kind != CallEntry || tr.fcalls[1].Kind != ReturnEntry {
		t.Errorf("fcalls = %+v", tr.fcalls)
	}
}

func TestShadowStackClampedAtCapacity(t *testing.T) {
	tr := New(nil)
	for i := 0; i < FTraceStackMax+10; i++ {
		tr.OnCall(uint32(i), uint32(i)+4)
	}
	if tr.ShadowDepth() != FTraceStackMax {
		t.Errorf("depth = %d, want clamp at %d", tr.ShadowDepth(), FTraceStackMax)
	}
	if len(tr.fcalls) != FTraceStackMax+10 {
		t.Errorf("extra pushes should still be logged: got %d entries", len(tr.fcalls))
	}
}

func TestReturnOnEmptyShadowIsNoop(t *testing.T) {
	tr := New(nil)
	tr.OnReturn(0x1000)
	if tr.ShadowDepth() != 0 {
		t.Errorf("depth = %d, want 0", tr.ShadowDepth())
	}
}

func TestOnMemAccessPushesMEntry(t *testing.T) {
	tr := New(nil)
	tr.OnMemAccess(0x8000_0010, 4, true)
	var got []MEntry
	tr.MRing.Each(func(e MEntry, last bool) { got = append(got, e) })
	if len(got) != 1 || got[0].Addr != 0x8000_0010 || got[0].Length != 4 || !got[0].IsWrite {
		t.Errorf("mtrace entries = %+v", got)
	}
}

func TestOnDeviceAccessPushesDEntry(t *testing.T) {
	tr := New(nil)
	tr.OnDeviceAccess("uart", 0x4, 1, false)
	var got []DEntry
	tr.DRing.Each(func(e DEntry, last bool) { got = append(got, e) })
	if len(got) != 1 || got[0].Region != "uart" || got[0].Offset != 0x4 || got[0].IsWrite {
		t.Errorf("dtrace entries = %+v", got)
	}
}

// memory.AccessObserver is satisfied structurally; this pins the shape so
// a signature drift in either package fails the build.
var _ interface {
	OnMemAccess(addr uint32, length int, isWrite bool)
	OnDeviceAccess(region string, offset uint32, length int, isWrite bool)
} = (*Tracers)(nil)
