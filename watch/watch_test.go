/*
 * rv32emu - watchpoint test cases
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

package watch

import "testing"

type counterResolver struct {
	regs map[string]uint32
}

func (c *counterResolver) PC() uint32                        { return 0 }
func (c *counterResolver) Reg(name string) (uint32, bool)    { v, ok := c.regs[name]; return v, ok }
func (c *counterResolver) CSR(name string) (uint32, bool)    { return 0, false }
func (c *counterResolver) Deref(addr uint32) (uint32, error) { return 0, nil }

// S3 — watchpoint trigger across three increments.
func TestWatchTriggerSequence(t *testing.T) {
	r := &counterResolver{regs: map[string]uint32{"t0": 0}}
	var l List
	id, err := l.Add("t0", r)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	for i, want := range []struct{ old, new uint32 }{{0, 1}, {1, 2}, {2, 3}} {
		r.regs["t0"] = want.new
		triggers, errs := l.Check(r)
		if len(errs) != 0 {
			t.Fatalf("step %d: unexpected eval errors %v", i, errs)
		}
		if len(triggers) != 1 || triggers[0].ID != id {
			t.Fatalf("step %d: triggers = %+v", i, triggers)
		}
		if triggers[0].OldValue != want.old || triggers[0].NewValue != want.new {
			t.Errorf("step %d: old=%d new=%d, want %d,%d", i, triggers[0].OldValue, triggers[0].NewValue, want.old, want.new)
		}
	}
}

func TestDeleteRemovesWatchpoint(t *testing.T) {
	r := &counterResolver{regs: map[string]uint32{"t0": 0}}
	var l List
	id, _ := l.Add("t0", r)
	l.Delete(id)
	r.regs["t0"] = 5
	triggers, _ := l.Check(r)
	if len(triggers) != 0 {
		t.Errorf("deleted watchpoint still triggered: %+v", triggers)
	}
}
