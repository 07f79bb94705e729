/*
 * rv32emu - CPU architectural state
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

// Package cpu implements the RV32I architectural state and the
// fetch/decode/execute loop: register file, CSR file, decoder/executor
// and the trap subsystem (C4, C5, C6).
package cpu

// RunState is the simulator-visible machine state machine.
type RunState int

const (
	Running RunState = iota
	Stop
	End
	Abort
	Quit
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Stop:
		return "STOP"
	case End:
		return "END"
	case Abort:
		return "ABORT"
	case Quit:
		return "QUIT"
	default:
		return "UNKNOWN"
	}
}

// ResetVector is the implementation-defined initial PC.
const ResetVector = 0x8000_0000

// CPU is the architectural state. It is owned by a Simulator, never a
// package-level global, so tests can run several side by side.
type CPU struct {
	GPR [32]uint32
	PC  uint32
	csr map[uint16]uint32

	State   RunState
	HaltPC  uint32
	HaltRet uint32
}

// New returns a CPU reset to the architectural initial state.
func New() *CPU {
	c := &CPU{PC: ResetVector, State: Running}
	c.csr = map[uint16]uint32{}
	return c
}

// Reg reads a GPR; gpr[0] always reads 0.
func (c *CPU) Reg(n int) uint32 {
	if n == 0 {
		return 0
	}
	return c.GPR[n&0x1f]
}

// SetReg writes a GPR; writes to gpr[0] are silently discarded.
func (c *CPU) SetReg(n int, v uint32) {
	if n == 0 {
		return
	}
	c.GPR[n&0x1f] = v
}

// Decode is the per-step scratch record.
type Decode struct {
	PC   uint32 // this instruction
	SNPC uint32 // statically next
	DNPC uint32 // dynamically next (becomes cpu.PC)
	Inst uint32
}

// Event reports everything the top-level loop needs to drive tracing and
// watchpoints after one retired (or trapped) instruction.
type Event struct {
	Decode Decode

	Trapped     bool
	TrapCause   uint32
	TrapEPC     uint32
	TrapTval    uint32
	TrapHandler uint32

	ReturnedFromTrap bool

	IsCall     bool
	CallTarget uint32
	IsReturn   bool

	Ecall  bool
	Ebreak bool
}

// AbortError signals a host-level failure the simulator cannot recover
// from: out-of-range memory access or an invalid CSR index.
type AbortError struct {
	Reason string
}

func (e *AbortError) Error() string { return e.Reason }
