/*
 * rv32emu - top-level execution loop
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

// Package sim implements the top-level loop (C11): step budget, the
// RUNNING/STOP/END/ABORT/QUIT state machine, and the dump-on-failure
// discipline. It owns every other piece of process-wide mutable state —
// CPU, memory, tracers, watchpoints, symbol table — so none of it is a
// package-level global (§5, §9).
//
// Collapsed to a single synchronous call relative to the teacher's
// goroutine+channel emu/core.go: spec.md §5 mandates single-threaded,
// cooperative execution with the interactive line editor's blocking
// read as the only suspension point.
package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/rv32emu/rv32emu/cpu"
	"github.com/rv32emu/rv32emu/difftest"
	"github.com/rv32emu/rv32emu/expr"
	"github.com/rv32emu/rv32emu/memory"
	"github.com/rv32emu/rv32emu/symtab"
	"github.com/rv32emu/rv32emu/trace"
	"github.com/rv32emu/rv32emu/watch"
)

// Ticker is driven once per retired instruction by Run; VGA uses it to
// present on a latched sync flag.
type Ticker interface {
	Tick()
}

// Simulator is the single logical owner of all mutable process state.
type Simulator struct {
	CPU    *cpu.CPU
	Mem    *memory.Memory
	Trace  *trace.Tracers
	Watch  *watch.List
	Symtab *symtab.Table
	Diff   difftest.Hook
	Out    io.Writer

	Devices []Ticker

	// FBSnapshot and DumpFrame, when both set, let Run hand a copy of the
	// VGA framebuffer to DumpFrame on ABORT (§9 supplement to the
	// dump-on-failure discipline). Both are left nil by New; the CLI wires
	// them to write a PNG.
	FBSnapshot func() (width, height uint32, argb []byte)
	DumpFrame  func(width, height uint32, argb []byte) error

	instCount uint64
	timer     time.Duration
}

// New builds a Simulator over mem. syms may be nil (ftrace disabled).
func New(mem *memory.Memory, syms *symtab.Table, diff difftest.Hook, out io.Writer) *Simulator {
	if diff == nil {
		diff = difftest.Noop{}
	}
	if syms == nil {
		syms = symtab.Empty()
	}
	tracers := trace.New(syms)
	mem.Observer = tracers
	return &Simulator{
		CPU:    cpu.New(),
		Mem:    mem,
		Trace:  tracers,
		Watch:  &watch.List{},
		Symtab: syms,
		Diff:   diff,
		Out:    out,
	}
}

// expr.Resolver binding over live CPU/memory state.

func (s *Simulator) PC() uint32 { return s.CPU.PC }

func (s *Simulator) Reg(name string) (uint32, bool) {
	if n, ok := cpu.LookupRegName(name); ok {
		return s.CPU.Reg(n), true
	}
	return 0, false
}

func (s *Simulator) CSR(name string) (uint32, bool) {
	idx, ok := cpu.CSRByName(name)
	if !ok {
		return 0, false
	}
	v, err := s.CPU.ReadCSR(idx)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (s *Simulator) Deref(addr uint32) (uint32, error) {
	return s.Mem.Read(addr, 4)
}

var _ expr.Resolver = (*Simulator)(nil)

// Run implements cpu_exec(n) (§4.8). If the machine is already
// terminal, it prints a refusal and returns immediately.
func (s *Simulator) Run(n uint64) {
	switch s.CPU.State {
	case cpu.End, cpu.Abort, cpu.Quit:
		fmt.Fprintf(s.Out, "simulator is halted (%s); use a fresh session to run again\n", s.CPU.State)
		return
	}

	start := time.Now()
	s.CPU.State = cpu.Running

	var stepped uint64
	for stepped < n {
		ev, err := s.CPU.Step(s.Mem)
		if err != nil {
			s.CPU.State = cpu.Abort
			fmt.Fprintf(s.Out, "ABORT: %v\n", err)
			break
		}
		s.instCount++
		stepped++

		s.Trace.PushInstr(ev.Decode.PC, ev.Decode.SNPC, ev.Decode.Inst)
		if ev.Trapped {
			s.Trace.PushTrap(ev.TrapCause, ev.TrapEPC, ev.TrapHandler)
		}
		if ev.ReturnedFromTrap {
			s.Trace.PushTrapReturn(ev.Decode.DNPC)
		}
		if ev.IsCall {
			s.Trace.OnCall(ev.Decode.PC, ev.CallTarget)
		}
		if ev.IsReturn {
			s.Trace.OnReturn(ev.Decode.PC)
		}

		if err := s.Diff.Check(s.CPU.PC, s.CPU.GPR); err != nil {
			s.CPU.State = cpu.Abort
			fmt.Fprintf(s.Out, "ABORT: difftest mismatch: %v\n", err)
			break
		}

		for _, d := range s.Devices {
			d.Tick()
		}

		if triggers, _ := s.Watch.Check(s); len(triggers) > 0 {
			for _, tr := range triggers {
				fmt.Fprintf(s.Out, "watchpoint %d (%s): old=%#x new=%#x\n", tr.ID, tr.Expr, tr.OldValue, tr.NewValue)
			}
			if s.CPU.State == cpu.Running {
				s.CPU.State = cpu.Stop
			}
		}

		if s.CPU.State != cpu.Running {
			break
		}
	}

	s.timer += time.Since(start)

	switch s.CPU.State {
	case cpu.End, cpu.Abort:
		s.Trace.DumpAll(s.Out)
		s.printBanner()
		if s.CPU.State == cpu.Abort && s.FBSnapshot != nil && s.DumpFrame != nil {
			if err := s.DumpFrame(s.FBSnapshot()); err != nil {
				fmt.Fprintf(s.Out, "framebuffer dump failed: %v\n", err)
			}
		}
	case cpu.Running:
		s.CPU.State = cpu.Stop
	}
}

func (s *Simulator) printBanner() {
	switch s.CPU.State {
	case cpu.End:
		if s.CPU.HaltRet == 0 {
			fmt.Fprintln(s.Out, "HIT GOOD TRAP")
		} else {
			fmt.Fprintln(s.Out, "HIT BAD TRAP")
		}
	case cpu.Abort:
		fmt.Fprintln(s.Out, "ABORT")
	}
	fmt.Fprintf(s.Out, "instructions: %d, wall time: %s, halt_pc: %#08x, halt_ret: %d\n",
		s.instCount, s.timer, s.CPU.HaltPC, s.CPU.HaltRet)
}

// ExitCode maps the terminal state to the CLI's exit-code contract (§6).
func (s *Simulator) ExitCode() int {
	switch s.CPU.State {
	case cpu.End:
		if s.CPU.HaltRet == 0 {
			return 0
		}
		return 1
	case cpu.Abort:
		return 2
	default:
		return 0
	}
}
