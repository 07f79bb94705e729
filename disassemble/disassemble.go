/*
 * rv32emu - RV32I disassembler
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

// Package disassemble is a pure function of (pc, bytes) to a mnemonic
// string, grounded on the teacher's opMap/opcode table shape but keyed
// by the RV32I opcode/funct3/funct7 fields instead of an 8-bit opcode
// byte. Disassembly failure never panics: an unrecognized pattern
// renders as a placeholder instead of crashing the caller.
package disassemble

import (
	"fmt"
	"strings"

	"github.com/rv32emu/rv32emu/cpu"
)

// Disassemble renders the 4-byte little-endian instruction at pc.
// Returns the AT&T-style mnemonic and the instruction length in bytes:
// 4 (this core does not execute compressed instructions), or len(data)
// when fewer than 4 bytes are given.
func Disassemble(pc uint32, data []byte) (string, int) {
	if len(data) < 4 {
		return undefined(data), len(data)
	}
	inst := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
	s, ok := decodeText(pc, inst)
	if !ok {
		return undefined(data), 4
	}
	return s, 4
}

func undefined(data []byte) string {
	var b strings.Builder
	b.WriteString(".word ")
	for i, by := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", by)
	}
	return b.String()
}

func reg(n int) string { return cpu.RegNames[n&0x1f] }

func decodeText(pc, inst uint32) (string, bool) {
	op := inst & 0x7f
	f3 := (inst >> 12) & 0x7
	f7 := (inst >> 25) & 0x7f
	rd := int((inst >> 7) & 0x1f)
	rs1 := int((inst >> 15) & 0x1f)
	rs2 := int((inst >> 20) & 0x1f)

	switch op {
	case 0x37:
		return fmt.Sprintf("lui     %s, %#x", reg(rd), immU(inst)>>12), true
	case 0x17:
		return fmt.Sprintf("auipc   %s, %#x", reg(rd), immU(inst)>>12), true
	case 0x6f:
		return fmt.Sprintf("jal     %s, %#x", reg(rd), pc+immJ(inst)), true
	case 0x67:
		return fmt.Sprintf("jalr    %s, %d(%s)", reg(rd), int32(immI(inst)), reg(rs1)), true
	case 0x63:
		name, ok := branchNames[f3]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%-7s %s, %s, %#x", name, reg(rs1), reg(rs2), pc+immB(inst)), true
	case 0x03:
		name, ok := loadNames[f3]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%-7s %s, %d(%s)", name, reg(rd), int32(immI(inst)), reg(rs1)), true
	case 0x23:
		name, ok := storeNames[f3]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%-7s %s, %d(%s)", name, reg(rs2), int32(immS(inst)), reg(rs1)), true
	case 0x13:
		return opImmText(inst, rd, rs1, f3, f7)
	case 0x33:
		return opText(inst, rd, rs1, rs2, f3, f7)
	case 0x0f:
		return "fence", true
	case 0x73:
		return systemText(inst, rd, rs1, f3)
	default:
		return "", false
	}
}

var branchNames = map[uint32]string{0: "beq", 1: "bne", 4: "blt", 5: "bge", 6: "bltu", 7: "bgeu"}
var loadNames = map[uint32]string{0: "lb", 1: "lh", 2: "lw", 4: "lbu", 5: "lhu"}
var storeNames = map[uint32]string{0: "sb", 1: "sh", 2: "sw"}

func opImmText(inst uint32, rd, rs1 int, f3, f7 uint32) (string, bool) {
	imm := int32(immI(inst))
	switch f3 {
	case 0:
		return fmt.Sprintf("addi    %s, %s, %d", reg(rd), reg(rs1), imm), true
	case 2:
		return fmt.Sprintf("slti    %s, %s, %d", reg(rd), reg(rs1), imm), true
	case 3:
		return fmt.Sprintf("sltiu   %s, %s, %d", reg(rd), reg(rs1), imm), true
	case 4:
		return fmt.Sprintf("xori    %s, %s, %d", reg(rd), reg(rs1), imm), true
	case 6:
		return fmt.Sprintf("ori     %s, %s, %d", reg(rd), reg(rs1), imm), true
	case 7:
		return fmt.Sprintf("andi    %s, %s, %d", reg(rd), reg(rs1), imm), true
	case 1:
		return fmt.Sprintf("slli    %s, %s, %d", reg(rd), reg(rs1), (inst>>20)&0x1f), true
	case 5:
		if f7&0x20 != 0 {
			return fmt.Sprintf("srai    %s, %s, %d", reg(rd), reg(rs1), (inst>>20)&0x1f), true
		}
		return fmt.Sprintf("srli    %s, %s, %d", reg(rd), reg(rs1), (inst>>20)&0x1f), true
	}
	return "", false
}

var mulDivNames = map[uint32]string{0: "mul", 1: "mulh", 2: "mulhsu", 3: "mulhu", 4: "div", 5: "divu", 6: "rem", 7: "remu"}

func opText(inst uint32, rd, rs1, rs2 int, f3, f7 uint32) (string, bool) {
	if f7 == 0x01 {
		name, ok := mulDivNames[f3]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%-7s %s, %s, %s", name, reg(rd), reg(rs1), reg(rs2)), true
	}
	switch f3 {
	case 0:
		if f7&0x20 != 0 {
			return fmt.Sprintf("sub     %s, %s, %s", reg(rd), reg(rs1), reg(rs2)), true
		}
		return fmt.Sprintf("add     %s, %s, %s", reg(rd), reg(rs1), reg(rs2)), true
	case 1:
		return fmt.Sprintf("sll     %s, %s, %s", reg(rd), reg(rs1), reg(rs2)), true
	case 2:
		return fmt.Sprintf("slt     %s, %s, %s", reg(rd), reg(rs1), reg(rs2)), true
	case 3:
		return fmt.Sprintf("sltu    %s, %s, %s", reg(rd), reg(rs1), reg(rs2)), true
	case 4:
		return fmt.Sprintf("xor     %s, %s, %s", reg(rd), reg(rs1), reg(rs2)), true
	case 5:
		if f7&0x20 != 0 {
			return fmt.Sprintf("sra     %s, %s, %s", reg(rd), reg(rs1), reg(rs2)), true
		}
		return fmt.Sprintf("srl     %s, %s, %s", reg(rd), reg(rs1), reg(rs2)), true
	case 6:
		return fmt.Sprintf("or      %s, %s, %s", reg(rd), reg(rs1), reg(rs2)), true
	case 7:
		return fmt.Sprintf("and     %s, %s, %s", reg(rd), reg(rs1), reg(rs2)), true
	}
	return "", false
}

func systemText(inst uint32, rd, rs1 int, f3 uint32) (string, bool) {
	if f3 == 0 {
		switch inst >> 20 {
		case 0:
			return "ecall", true
		case 1:
			return "ebreak", true
		case 0x302:
			return "mret", true
		default:
			return "", false
		}
	}
	names := map[uint32]string{1: "csrrw", 2: "csrrs", 3: "csrrc", 5: "csrrwi", 6: "csrrsi", 7: "csrrci"}
	name, ok := names[f3]
	if !ok {
		return "", false
	}
	csr := inst >> 20
	if f3 >= 5 {
		return fmt.Sprintf("%-7s %s, %#x, %d", name, reg(rd), csr, rs1), true
	}
	return fmt.Sprintf("%-7s %s, %#x, %s", name, reg(rd), csr, reg(rs1)), true
}

func signExtend(v uint32, bits int) uint32 {
	shift := 32 - bits
	return uint32(int32(v<<shift) >> shift)
}

func immI(inst uint32) uint32 { return signExtend(inst>>20, 12) }
func immU(inst uint32) uint32 { return inst & 0xffff_f000 }

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

func immJ(inst uint32) uint32 {
	v := (((inst >> 31) & 1) << 20) |
		(((inst >> 12) & 0xff) << 12) |
		(((inst >> 20) & 1) << 11) |
		(((inst >> 21) & 0x3ff) << 1)
	return signExtend(v, 21)
}
