/*
 * rv32emu - instruction/exception/call tracers
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

// Package trace implements the tracer subsystem (C7): the instruction
// ring buffer (itrace), the exception tracer (etrace), the memory-access
// ring buffer (mtrace), the MMIO device-access ring buffer (dtrace), the
// function-call tracer (ftrace, with its ELF-backed symbol lookups and
// shadow call stack), and the dump-on-failure discipline that flushes
// all five.
package trace

import (
	"fmt"
	"io"

	"github.com/rv32emu/rv32emu/cpu"
	"github.com/rv32emu/rv32emu/disassemble"
	"github.com/rv32emu/rv32emu/ringbuf"
	"github.com/rv32emu/rv32emu/symtab"
)

// Bounds on the five trace logs (§3 "Trace logs"). Implementation-
// defined sizes, chosen generously for a debugging session.
const (
	IRingBufSize   = 256
	ETraceBufSize  = 64
	MRingBufSize   = 256
	DRingBufSize   = 128
	FTraceLogSize  = 4096
	FTraceStackMax = 128
)

// IEntry is one itrace record: raw pc/snpc/bytes, not a formatted
// string, so the dumper can re-disassemble current contents.
type IEntry struct {
	PC   uint32
	SNPC uint32
	Inst [4]byte
}

// EEntry is one etrace record.
type EEntry struct {
	Kind    byte // 'E' raise, 'R' return
	Cause   uint32
	EPC     uint32
	Handler uint32
}

// MEntry is one mtrace record: a single mem.Read/mem.Write call, PMEM or
// MMIO alike.
type MEntry struct {
	Addr    uint32
	Length  int
	IsWrite bool
}

// DEntry is one dtrace record: a memory access that landed on a mapped
// MMIO region, whether or not the region has a Device.
type DEntry struct {
	Region  string
	Offset  uint32
	Length  int
	IsWrite bool
}

// CallKind distinguishes a call log entry from a return.
type CallKind byte

const (
	CallEntry   CallKind = 'C'
	ReturnEntry CallKind = 'R'
)

// FEntry is one ftrace call/return log record.
type FEntry struct {
	Kind   CallKind
	PC     uint32
	Target uint32
	Depth  int
	Name   string
}

type shadowFrame struct {
	sym    string
	hasSym bool
	ret    uint32
}

// Tracers owns the five logs and the shadow call stack. It is owned by
// the Simulator, not a package-level global.
type Tracers struct {
	IRing *ringbuf.Ring[IEntry]
	ERing *ringbuf.Ring[EEntry]
	MRing *ringbuf.Ring[MEntry]
	DRing *ringbuf.Ring[DEntry]

	fcalls []FEntry
	shadow []shadowFrame

	Symtab *symtab.Table
}

// New builds a Tracers bound to the given (possibly empty) symbol table.
func New(syms *symtab.Table) *Tracers {
	if syms == nil {
		syms = symtab.Empty()
	}
	return &Tracers{
		IRing:  ringbuf.New[IEntry](IRingBufSize),
		ERing:  ringbuf.New[EEntry](ETraceBufSize),
		MRing:  ringbuf.New[MEntry](MRingBufSize),
		DRing:  ringbuf.New[DEntry](DRingBufSize),
		Symtab: syms,
	}
}

// PushInstr records one retired (or attempted) instruction.
func (t *Tracers) PushInstr(pc, snpc, inst uint32) {
	var b [4]byte
	b[0] = byte(inst)
	b[1] = byte(inst >> 8)
	b[2] = byte(inst >> 16)
	b[3] = byte(inst >> 24)
	t.IRing.Push(IEntry{PC: pc, SNPC: snpc, Inst: b})
}

// PushTrap records a trap raise ('E').
func (t *Tracers) PushTrap(cause, epc, handler uint32) {
	t.ERing.Push(EEntry{Kind: 'E', Cause: cause, EPC: epc, Handler: handler})
}

// PushTrapReturn records an mret ('R').
func (t *Tracers) PushTrapReturn(epc uint32) {
	t.ERing.Push(EEntry{Kind: 'R', EPC: epc})
}

// OnMemAccess records one mtrace entry. It satisfies memory.AccessObserver
// structurally so memory need not import trace (it would cycle through
// trace's cpu import).
func (t *Tracers) OnMemAccess(addr uint32, length int, isWrite bool) {
	t.MRing.Push(MEntry{Addr: addr, Length: length, IsWrite: isWrite})
}

// OnDeviceAccess records one dtrace entry for an MMIO region dispatch.
func (t *Tracers) OnDeviceAccess(region string, offset uint32, length int, isWrite bool) {
	t.DRing.Push(DEntry{Region: region, Offset: offset, Length: length, IsWrite: isWrite})
}

// OnCall pushes a shadow frame (if under capacity) and always logs the
// call, per §4.4: "extra pushes are recorded in the trace log but not in
// the shadow."
func (t *Tracers) OnCall(pc, target uint32) {
	sym, ok := t.Symtab.Lookup(target)
	name := "???"
	if ok {
		name = sym.Name
	}
	depth := len(t.shadow)
	if depth < FTraceStackMax {
		t.shadow = append(t.shadow, shadowFrame{sym: name, hasSym: ok, ret: pc})
	}
	t.pushFCall(FEntry{Kind: CallEntry, PC: pc, Target: target, Depth: depth, Name: name})
}

// OnReturn pops the shadow frame (if any) and logs the return using the
// post-pop top-of-stack symbol.
func (t *Tracers) OnReturn(pc uint32) {
	depth := len(t.shadow)
	if depth > 0 {
		t.shadow = t.shadow[:depth-1]
		depth--
	}
	name := "???"
	if depth > 0 {
		name = t.shadow[depth-1].sym
	}
	t.pushFCall(FEntry{Kind: ReturnEntry, PC: pc, Depth: depth, Name: name})
}

func (t *Tracers) pushFCall(e FEntry) {
	if len(t.fcalls) >= FTraceLogSize {
		return // historical log, silently truncated once full — not a ring
	}
	t.fcalls = append(t.fcalls, e)
}

// ShadowDepth reports the current call-stack shadow depth, clamped to
// [0, FTraceStackMax] by construction (invariant 6).
func (t *Tracers) ShadowDepth() int { return len(t.shadow) }

// DumpAll flushes all five trace logs to w, as required on ABORT/END
// (§4.8 step 5). The final entry of each log is marked distinctly.
func (t *Tracers) DumpAll(w io.Writer) {
	fmt.Fprintln(w, "--- itrace ---")
	t.IRing.Each(func(e IEntry, last bool) {
		text, _ := disassemble.Disassemble(e.PC, e.Inst[:])
		marker := "   "
		if last {
			marker = "-->"
		}
		fmt.Fprintf(w, "%s %#08x: %s\n", marker, e.PC, text)
	})

	fmt.Fprintln(w, "--- etrace ---")
	t.ERing.Each(func(e EEntry, last bool) {
		marker := "   "
		if last {
			marker = "-->"
		}
		if e.Kind == 'E' {
			fmt.Fprintf(w, "%s E epc=%#08x cause=%s handler=%#08x\n", marker, e.EPC, cpu.CauseName(e.Cause), e.Handler)
		} else {
			fmt.Fprintf(w, "%s R epc=%#08x\n", marker, e.EPC)
		}
	})

	fmt.Fprintln(w, "--- mtrace ---")
	t.MRing.Each(func(e MEntry, last bool) {
		marker := "   "
		if last {
			marker = "-->"
		}
		dir := "R"
		if e.IsWrite {
			dir = "W"
		}
		fmt.Fprintf(w, "%s %s %#08x len=%d\n", marker, dir, e.Addr, e.Length)
	})

	fmt.Fprintln(w, "--- dtrace ---")
	t.DRing.Each(func(e DEntry, last bool) {
		marker := "   "
		if last {
			marker = "-->"
		}
		dir := "R"
		if e.IsWrite {
			dir = "W"
		}
		fmt.Fprintf(w, "%s %s %s+%#x len=%d\n", marker, dir, e.Region, e.Offset, e.Length)
	})

	fmt.Fprintln(w, "--- ftrace ---")
	for i, e := range t.fcalls {
		last := i == len(t.fcalls)-1
		marker := "   "
		if last {
			marker = "-->"
		}
		indent := ""
		for n := 0; n < e.Depth; n++ {
			indent += "  "
		}
		if e.Kind == CallEntry {
			fmt.Fprintf(w, "%s %s%#08x call -> %#08x %s\n", marker, indent, e.PC, e.Target, e.Name)
		} else {
			fmt.Fprintf(w, "%s %s%#08x ret  %s\n", marker, indent, e.PC, e.Name)
		}
	}
}
