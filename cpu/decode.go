/*
 * rv32emu - RV32I instruction field decode
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

// Field extraction, bit-for-bit faithful to the RISC-V ISA manual.

func opcode(inst uint32) uint32 { return inst & 0x7f }
func rd(inst uint32) int        { return int((inst >> 7) & 0x1f) }
func funct3(inst uint32) uint32 { return (inst >> 12) & 0x7 }
func rs1(inst uint32) int       { return int((inst >> 15) & 0x1f) }
func rs2(inst uint32) int       { return int((inst >> 20) & 0x1f) }
func funct7(inst uint32) uint32 { return (inst >> 25) & 0x7f }
func shamt(inst uint32) uint32  { return (inst >> 20) & 0x1f }

func signExtend(v uint32, bits int) uint32 {
	shift := 32 - bits
	return uint32(int32(v<<shift) >> shift)
}

func immI(inst uint32) uint32 {
	return signExtend(inst>>20, 12)
}

func immS(inst uint32) uint32 {
	v := ((inst >> 25) << 5) | ((inst >> 7) & 0x1f)
	return signExtend(v, 12)
}

func immB(inst uint32) uint32 {
	v := (((inst >> 31) & 1) << 12) |
		(((inst >> 7) & 1) << 11) |
		(((inst >> 25) & 0x3f) << 5) |
		(((inst >> 8) & 0xf) << 1)
	return signExtend(v, 13)
}

func immU(inst uint32) uint32 {
	return inst & 0xffff_f000
}

func immJ(inst uint32) uint32 {
	v := (((inst >> 31) & 1) << 20) |
		(((inst >> 12) & 0xff) << 12) |
		(((inst >> 20) & 1) << 11) |
		(((inst >> 21) & 0x3ff) << 1)
	return signExtend(v, 21)
}

// csrIndex returns the 12-bit CSR index embedded in a SYSTEM instruction.
func csrIndex(inst uint32) uint16 {
	return uint16(inst >> 20)
}
