/*
 * rv32emu - watchpoints
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

// Package watch implements watchpoints (C9): a fixed pool of slots, each
// holding an expression re-evaluated after every retired instruction.
package watch

import (
	"errors"

	"github.com/rv32emu/rv32emu/expr"
)

// NumSlots is the fixed pool size (§3 "NR_WP").
const NumSlots = 32

// Trigger reports a watchpoint whose value changed on the most recent
// Check.
type Trigger struct {
	ID       int
	Expr     string
	OldValue uint32
	NewValue uint32
}

type slot struct {
	live    bool
	expr    string
	baseline uint32
}

// List owns the fixed pool of watchpoint slots. IDs are stable across
// deletes until a slot is reused.
type List struct {
	slots [NumSlots]slot
}

// Add parses and evaluates expr, stores the value as baseline, and
// returns a stable ID. Returns an error if the pool is full or the
// expression fails to evaluate.
func (l *List) Add(text string, r expr.Resolver) (int, error) {
	v, err := expr.Eval(text, r)
	if err != nil {
		return 0, err
	}
	for i := range l.slots {
		if !l.slots[i].live {
			l.slots[i] = slot{live: true, expr: text, baseline: v}
			return i, nil
		}
	}
	return 0, errFull
}

var errFull = errors.New("no free watchpoint slots")

// Delete removes the watchpoint at id if present.
func (l *List) Delete(id int) {
	if id >= 0 && id < NumSlots {
		l.slots[id] = slot{}
	}
}

// Check re-evaluates every live watchpoint and reports triggers for
// those whose value differs from its baseline, updating the baseline.
// An evaluation failure is reported via evalErrs but does not trigger —
// the watchpoint is simply skipped for this step (§4.6, §7).
func (l *List) Check(r expr.Resolver) (triggers []Trigger, evalErrs map[int]error) {
	for i := range l.slots {
		s := &l.slots[i]
		if !s.live {
			continue
		}
		v, err := expr.Eval(s.expr, r)
		if err != nil {
			if evalErrs == nil {
				evalErrs = map[int]error{}
			}
			evalErrs[i] = err
			continue
		}
		if v != s.baseline {
			triggers = append(triggers, Trigger{ID: i, Expr: s.expr, OldValue: s.baseline, NewValue: v})
			s.baseline = v
		}
	}
	return triggers, evalErrs
}

// Info is one live watchpoint's id and source expression, for "info w".
type Info struct {
	ID   int
	Expr string
}

// Entries returns the live watchpoints for display, in slot order.
func (l *List) Entries() []Info {
	var out []Info
	for i := range l.slots {
		if l.slots[i].live {
			out = append(out, Info{i, l.slots[i].expr})
		}
	}
	return out
}
