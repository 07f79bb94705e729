/*
 * rv32emu - trap subsystem
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

package cpu

// Trap causes used by this minimal M-mode model.
const (
	CauseInstructionMisaligned = 0
	CauseIllegalInstruction    = 2
	CauseBreakpoint            = 3
	CauseLoadMisaligned        = 4
	CauseStoreMisaligned       = 6
	CauseMachineEcall          = 11
)

// causeNames decodes a cause code to one of the named RISC-V exceptions
// (0..15 with gaps) for etrace rendering.
var causeNames = map[uint32]string{
	0:  "instruction_address_misaligned",
	1:  "instruction_access_fault",
	2:  "illegal_instruction",
	3:  "breakpoint",
	4:  "load_address_misaligned",
	5:  "load_access_fault",
	6:  "store_address_misaligned",
	7:  "store_access_fault",
	8:  "environment_call_from_u_mode",
	9:  "environment_call_from_s_mode",
	11: "environment_call_from_m_mode",
	12: "instruction_page_fault",
	13: "load_page_fault",
	15: "store_page_fault",
}

// CauseName renders a cause code, falling back to "unknown_cause".
func CauseName(cause uint32) string {
	if name, ok := causeNames[cause]; ok {
		return name
	}
	return "unknown_cause"
}

// Raise sets mcause/mepc/mtval and returns the handler address (mtvec).
// It does not itself write cpu.PC — the executor assigns the returned
// address to dnpc, preserving "the executor is the sole writer of pc".
func (c *CPU) Raise(cause, epc, tval uint32) uint32 {
	c.csr[CSRMcause] = cause
	c.csr[CSRMepc] = epc
	c.csr[CSRMtval] = tval
	return c.csr[CSRMtvec]
}

// ReturnFromTrap returns mepc. There is no mstatus stack in this
// M-mode-only model.
func (c *CPU) ReturnFromTrap() uint32 {
	return c.csr[CSRMepc]
}
