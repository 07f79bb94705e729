/*
 * rv32emu - ELF function symbol table loader
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

// Package symtab loads the companion ELF image's function symbol table
// (C12) for ftrace to resolve call/return targets to names.
package symtab

import (
	"debug/elf"
	"sort"
)

// Func is one entry of the sorted function table.
type Func struct {
	Start uint32
	End   uint32
	Name  string
}

const maxNameLen = 63

// Table is an immutable, sorted function symbol table. Once built it is
// never mutated for the simulator's lifetime (§5 ownership).
type Table struct {
	funcs []Func
}

// Empty returns a Table with no symbols — the no-op ftrace mode used
// when the ELF lacks a .symtab or the companion file is absent.
func Empty() *Table {
	return &Table{}
}

// Load parses path's ELF .symtab/.dynsym and builds the sorted function
// table. The file handle is released on every exit path. A loading
// failure is reported to the caller, who per §7/§9 must still let the
// simulator run with ftrace disabled.
func Load(path string) (*Table, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var funcs []Func
	add := func(syms []elf.Symbol) {
		for _, s := range syms {
			if elf.ST_TYPE(s.Info) != elf.STT_FUNC || s.Size == 0 && s.Value == 0 {
				continue
			}
			size := s.Size
			if size == 0 {
				size = 1
			}
			name := s.Name
			if len(name) > maxNameLen {
				name = name[:maxNameLen]
			}
			funcs = append(funcs, Func{
				Start: uint32(s.Value),
				End:   uint32(s.Value) + uint32(size),
				Name:  name,
			})
		}
	}

	if syms, err := f.Symbols(); err == nil {
		add(syms)
	}
	if dsyms, err := f.DynamicSymbols(); err == nil {
		add(dsyms)
	}

	sort.Slice(funcs, func(i, j int) bool { return funcs[i].Start < funcs[j].Start })
	return &Table{funcs: funcs}, nil
}

// Lookup finds the unique function containing addr via binary search,
// or reports ok=false ("???" at the call site).
func (t *Table) Lookup(addr uint32) (Func, bool) {
	if t == nil || len(t.funcs) == 0 {
		return Func{}, false
	}
	i := sort.Search(len(t.funcs), func(i int) bool { return t.funcs[i].Start > addr })
	if i == 0 {
		return Func{}, false
	}
	cand := t.funcs[i-1]
	if addr >= cand.Start && addr < cand.End {
		return cand, true
	}
	return Func{}, false
}

// Len reports how many function symbols were loaded.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.funcs)
}
