/*
 * rv32emu - RV32I decoder and executor
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

import "github.com/rv32emu/rv32emu/memory"

const (
	opLUI     = 0x37
	opAUIPC   = 0x17
	opJAL     = 0x6f
	opJALR    = 0x67
	opBranch  = 0x63
	opLoad    = 0x03
	opStore   = 0x23
	opOpImm   = 0x13
	opOp      = 0x33
	opMiscMem = 0x0f
	opSystem  = 0x73
)

type execFunc func(c *CPU, mem *memory.Memory, d *Decode, ev *Event) error

// table is the decode dispatch: a function-pointer array keyed by the
// 7-bit opcode field. funct3/funct7 sub-dispatch happens inside each
// handler. Building it once at init time preserves first-match ordering
// and lets an assertion catch accidental overlap (there is none: the
// opcode field alone selects a unique handler in RV32I).
var table [128]execFunc

func init() {
	register := func(op uint32, fn execFunc) {
		if table[op] != nil {
			panic("cpu: overlapping decode table entry")
		}
		table[op] = fn
	}
	register(opLUI, execLUI)
	register(opAUIPC, execAUIPC)
	register(opJAL, execJAL)
	register(opJALR, execJALR)
	register(opBranch, execBranch)
	register(opLoad, execLoad)
	register(opStore, execStore)
	register(opOpImm, execOpImm)
	register(opOp, execOp)
	register(opMiscMem, execFence)
	register(opSystem, execSystem)
}

// Step fetches, decodes and executes one instruction at cpu.PC. It is
// the sole writer of cpu.PC outside of trap entry/return (C5 contract).
func (c *CPU) Step(mem *memory.Memory) (Event, error) {
	var ev Event
	d := Decode{PC: c.PC}

	if d.PC%4 != 0 {
		handler := c.Raise(CauseInstructionMisaligned, d.PC, d.PC)
		ev.Decode = d
		ev.Trapped = true
		ev.TrapCause = CauseInstructionMisaligned
		ev.TrapEPC = d.PC
		ev.TrapTval = d.PC
		ev.TrapHandler = handler
		c.PC = handler
		return ev, nil
	}

	inst, err := mem.Read(d.PC, 4)
	if err != nil {
		return ev, err
	}
	d.Inst = inst
	d.SNPC = d.PC + 4
	d.DNPC = d.SNPC

	fn := table[opcode(inst)]
	if fn == nil {
		handler := c.Raise(CauseIllegalInstruction, d.PC, inst)
		ev.Trapped = true
		ev.TrapCause = CauseIllegalInstruction
		ev.TrapEPC = d.PC
		ev.TrapTval = inst
		ev.TrapHandler = handler
		d.DNPC = handler
		c.PC = handler
		ev.Decode = d
		return ev, nil
	}

	if err := fn(c, mem, &d, &ev); err != nil {
		return ev, err
	}
	ev.Decode = d
	c.PC = d.DNPC
	return ev, nil
}

func execLUI(c *CPU, mem *memory.Memory, d *Decode, ev *Event) error {
	c.SetReg(rd(d.Inst), immU(d.Inst))
	return nil
}

func execAUIPC(c *CPU, mem *memory.Memory, d *Decode, ev *Event) error {
	c.SetReg(rd(d.Inst), d.PC+immU(d.Inst))
	return nil
}

func execJAL(c *CPU, mem *memory.Memory, d *Decode, ev *Event) error {
	target := d.PC + immJ(d.Inst)
	r := rd(d.Inst)
	c.SetReg(r, d.SNPC)
	d.DNPC = target
	if r == 1 {
		ev.IsCall = true
		ev.CallTarget = target
	}
	return nil
}

func execJALR(c *CPU, mem *memory.Memory, d *Decode, ev *Event) error {
	r, s1 := rd(d.Inst), rs1(d.Inst)
	target := (c.Reg(s1) + immI(d.Inst)) &^ 1
	c.SetReg(r, d.SNPC)
	d.DNPC = target
	switch {
	case r == 0 && s1 == 1 && immI(d.Inst) == 0:
		ev.IsReturn = true
	case r != 0:
		ev.IsCall = true
		ev.CallTarget = target
	}
	return nil
}

func execBranch(c *CPU, mem *memory.Memory, d *Decode, ev *Event) error {
	a, b := c.Reg(rs1(d.Inst)), c.Reg(rs2(d.Inst))
	var taken bool
	switch funct3(d.Inst) {
	case 0b000: // beq
		taken = a == b
	case 0b001: // bne
		taken = a != b
	case 0b100: // blt
		taken = int32(a) < int32(b)
	case 0b101: // bge
		taken = int32(a) >= int32(b)
	case 0b110: // bltu
		taken = a < b
	case 0b111: // bgeu
		taken = a >= b
	default:
		return illegal(c, d, ev)
	}
	if taken {
		d.DNPC = d.PC + immB(d.Inst)
	}
	return nil
}

func execLoad(c *CPU, mem *memory.Memory, d *Decode, ev *Event) error {
	addr := c.Reg(rs1(d.Inst)) + immI(d.Inst)
	var width int
	switch funct3(d.Inst) {
	case 0b000, 0b100:
		width = 1
	case 0b001, 0b101:
		width = 2
	case 0b010:
		width = 4
	default:
		return illegal(c, d, ev)
	}
	if width > 1 && addr%uint32(width) != 0 {
		return misaligned(c, d, ev, CauseLoadMisaligned, addr)
	}
	v, err := mem.Read(addr, width)
	if err != nil {
		return err
	}
	switch funct3(d.Inst) {
	case 0b000:
		v = signExtend(v, 8)
	case 0b001:
		v = signExtend(v, 16)
	case 0b100, 0b101:
		// zero-extended: v already holds the unsigned width.
	}
	c.SetReg(rd(d.Inst), v)
	return nil
}

func execStore(c *CPU, mem *memory.Memory, d *Decode, ev *Event) error {
	addr := c.Reg(rs1(d.Inst)) + immS(d.Inst)
	var width int
	switch funct3(d.Inst) {
	case 0b000:
		width = 1
	case 0b001:
		width = 2
	case 0b010:
		width = 4
	default:
		return illegal(c, d, ev)
	}
	if width > 1 && addr%uint32(width) != 0 {
		return misaligned(c, d, ev, CauseStoreMisaligned, addr)
	}
	return mem.Write(addr, width, c.Reg(rs2(d.Inst)))
}

func execOpImm(c *CPU, mem *memory.Memory, d *Decode, ev *Event) error {
	a := c.Reg(rs1(d.Inst))
	imm := immI(d.Inst)
	var v uint32
	switch funct3(d.Inst) {
	case 0b000: // addi
		v = a + imm
	case 0b010: // slti
		v = boolU(int32(a) < int32(imm))
	case 0b011: // sltiu
		v = boolU(a < imm)
	case 0b100: // xori
		v = a ^ imm
	case 0b110: // ori
		v = a | imm
	case 0b111: // andi
		v = a & imm
	case 0b001: // slli
		v = a << shamt(d.Inst)
	case 0b101: // srli/srai
		if funct7(d.Inst)&0x20 != 0 {
			v = uint32(int32(a) >> shamt(d.Inst))
		} else {
			v = a >> shamt(d.Inst)
		}
	default:
		return illegal(c, d, ev)
	}
	c.SetReg(rd(d.Inst), v)
	return nil
}

func execOp(c *CPU, mem *memory.Memory, d *Decode, ev *Event) error {
	a, b := c.Reg(rs1(d.Inst)), c.Reg(rs2(d.Inst))
	f7 := funct7(d.Inst)
	if f7 == 0x01 {
		return execMulDiv(c, d, a, b)
	}
	var v uint32
	switch funct3(d.Inst) {
	case 0b000:
		if f7&0x20 != 0 {
			v = a - b
		} else {
			v = a + b
		}
	case 0b001:
		v = a << (b & 0x1f)
	case 0b010:
		v = boolU(int32(a) < int32(b))
	case 0b011:
		v = boolU(a < b)
	case 0b100:
		v = a ^ b
	case 0b101:
		if f7&0x20 != 0 {
			v = uint32(int32(a) >> (b & 0x1f))
		} else {
			v = a >> (b & 0x1f)
		}
	case 0b110:
		v = a | b
	case 0b111:
		v = a & b
	default:
		return illegal(c, d, ev)
	}
	c.SetReg(rd(d.Inst), v)
	return nil
}

// execMulDiv implements the optional M-extension arithmetic ops, added
// on top of the base table (spec.md §4.1 allows multiply/divide).
func execMulDiv(c *CPU, d *Decode, a, b uint32) error {
	var v uint32
	switch funct3(d.Inst) {
	case 0b000: // mul
		v = a * b
	case 0b001: // mulh
		v = uint32((int64(int32(a)) * int64(int32(b))) >> 32)
	case 0b010: // mulhsu
		v = uint32((int64(int32(a)) * int64(uint64(b))) >> 32)
	case 0b011: // mulhu
		v = uint32((uint64(a) * uint64(b)) >> 32)
	case 0b100: // div
		if b == 0 {
			v = 0xffff_ffff
		} else if a == 0x8000_0000 && b == 0xffff_ffff {
			v = a
		} else {
			v = uint32(int32(a) / int32(b))
		}
	case 0b101: // divu
		if b == 0 {
			v = 0xffff_ffff
		} else {
			v = a / b
		}
	case 0b110: // rem
		if b == 0 {
			v = a
		} else if a == 0x8000_0000 && b == 0xffff_ffff {
			v = 0
		} else {
			v = uint32(int32(a) % int32(b))
		}
	case 0b111: // remu
		if b == 0 {
			v = a
		} else {
			v = a % b
		}
	}
	c.SetReg(rd(d.Inst), v)
	return nil
}

// execFence treats fence/fence.i as a no-op: this model has a single
// hart and no reordering to fence against.
func execFence(c *CPU, mem *memory.Memory, d *Decode, ev *Event) error {
	return nil
}

func execSystem(c *CPU, mem *memory.Memory, d *Decode, ev *Event) error {
	if funct3(d.Inst) == 0 {
		imm := d.Inst >> 20
		switch imm {
		case 0x000: // ecall
			handler := c.Raise(CauseMachineEcall, d.PC, 0)
			ev.Ecall = true
			ev.Trapped = true
			ev.TrapCause = CauseMachineEcall
			ev.TrapEPC = d.PC
			ev.TrapTval = 0
			ev.TrapHandler = handler
			d.DNPC = handler
			return nil
		case 0x001: // ebreak
			ev.Ebreak = true
			c.HaltPC = d.PC
			c.HaltRet = c.Reg(10)
			c.State = End
			d.DNPC = d.PC
			return nil
		case 0x302: // mret
			d.DNPC = c.ReturnFromTrap()
			ev.ReturnedFromTrap = true
			return nil
		default:
			return illegal(c, d, ev)
		}
	}
	return execCSR(c, d, ev)
}

func execCSR(c *CPU, d *Decode, ev *Event) error {
	idx := csrIndex(d.Inst)
	r, s1 := rd(d.Inst), rs1(d.Inst)

	old, err := c.ReadCSR(idx)
	if err != nil {
		return err
	}

	var writeVal uint32
	doWrite := true
	switch funct3(d.Inst) {
	case 0b001: // csrrw
		writeVal = c.Reg(s1)
	case 0b010: // csrrs
		writeVal = old | c.Reg(s1)
		doWrite = s1 != 0
	case 0b011: // csrrc
		writeVal = old &^ c.Reg(s1)
		doWrite = s1 != 0
	case 0b101: // csrrwi
		writeVal = uint32(s1)
	case 0b110: // csrrsi
		writeVal = old | uint32(s1)
		doWrite = s1 != 0
	case 0b111: // csrrci
		writeVal = old &^ uint32(s1)
		doWrite = s1 != 0
	default:
		return illegal(c, d, ev)
	}
	if doWrite {
		if err := c.WriteCSR(idx, writeVal); err != nil {
			return err
		}
	}
	c.SetReg(r, old)
	return nil
}

func illegal(c *CPU, d *Decode, ev *Event) error {
	handler := c.Raise(CauseIllegalInstruction, d.PC, d.Inst)
	ev.Trapped = true
	ev.TrapCause = CauseIllegalInstruction
	ev.TrapEPC = d.PC
	ev.TrapTval = d.Inst
	ev.TrapHandler = handler
	d.DNPC = handler
	return nil
}

func misaligned(c *CPU, d *Decode, ev *Event, cause, addr uint32) error {
	handler := c.Raise(cause, d.PC, addr)
	ev.Trapped = true
	ev.TrapCause = cause
	ev.TrapEPC = d.PC
	ev.TrapTval = addr
	ev.TrapHandler = handler
	d.DNPC = handler
	return nil
}

func boolU(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
