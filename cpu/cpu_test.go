/*
 * rv32emu - CPU execution test cases
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

import (
	"encoding/binary"
	"testing"

	"github.com/rv32emu/rv32emu/memory"
)

func newTestSystem(t *testing.T, words ...uint32) (*CPU, *memory.Memory) {
	t.Helper()
	c := New()
	mem := memory.New(ResetVector, 4096)
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	if err := mem.LoadImage(buf); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	return c, mem
}

func step(t *testing.T, c *CPU, mem *memory.Memory) Event {
	t.Helper()
	ev, err := c.Step(mem)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	return ev
}

// S1 — addi chain.
func TestAddiChain(t *testing.T) {
	c, mem := newTestSystem(t,
		0x00500093, // addi x1,x0,5
		0x00a00113, // addi x2,x0,10
		0x002081b3, // add x3,x1,x2
		0x00100073, // ebreak
	)
	for i := 0; i < 4; i++ {
		step(t, c, mem)
	}
	if c.Reg(1) != 5 || c.Reg(2) != 10 || c.Reg(3) != 15 {
		t.Errorf("gpr = %d,%d,%d; want 5,10,15", c.Reg(1), c.Reg(2), c.Reg(3))
	}
	if c.State != End {
		t.Errorf("state = %v, want END", c.State)
	}
	if c.HaltRet != 0 {
		t.Errorf("halt_ret = %d, want 0", c.HaltRet)
	}
}

func TestGPRZeroAlwaysReadsZero(t *testing.T) {
	c := New()
	c.SetReg(0, 0xdeadbeef)
	if c.Reg(0) != 0 {
		t.Errorf("Reg(0) = %#x, want 0", c.Reg(0))
	}
}

// S5 — ecall trap.
func TestEcallTrap(t *testing.T) {
	// li a7,-1 (a7 is x17), then ecall.
	c, mem := newTestSystem(t, encodeAddiNeg1(17), 0x00000073)
	c.WriteCSR(CSRMtvec, 0x8000_1000)
	step(t, c, mem) // addi a7,x0,-1
	ev := step(t, c, mem)
	if !ev.Trapped || ev.TrapCause != CauseMachineEcall {
		t.Fatalf("expected ecall trap, got %+v", ev)
	}
	epc, _ := c.ReadCSR(CSRMepc)
	cause, _ := c.ReadCSR(CSRMcause)
	wantEPC := uint32(ResetVector + 4)
	if epc != wantEPC || cause != CauseMachineEcall {
		t.Errorf("mepc=%#x mcause=%d, want %#x, 11", epc, cause, wantEPC)
	}
	if c.PC != 0x8000_1000 {
		t.Errorf("pc = %#x, want mtvec", c.PC)
	}
}

// S6 — misaligned store.
func TestMisalignedStore(t *testing.T) {
	c, mem := newTestSystem(t, encodeStoreWord(1, 0, 0)) // sw x0, 0(x1)
	c.WriteCSR(CSRMtvec, 0x8000_2000)
	c.SetReg(1, ResetVector+1)
	ev := step(t, c, mem)
	if !ev.Trapped || ev.TrapCause != CauseStoreMisaligned {
		t.Fatalf("expected store-misaligned trap, got %+v", ev)
	}
	if ev.TrapTval != ResetVector+1 {
		t.Errorf("tval = %#x, want %#x", ev.TrapTval, ResetVector+1)
	}
}

func encodeAddiNeg1(rdReg int) uint32 {
	imm := uint32(0xfff) // -1 in 12 bits
	return imm<<20 | 0<<15 | 0<<12 | uint32(rdReg)<<7 | opOpImm
}

func encodeStoreWord(base, src, imm int) uint32 {
	immU := uint32(imm) & 0xfff
	lo := immU & 0x1f
	hi := (immU >> 5) & 0x7f
	return hi<<25 | uint32(src)<<20 | uint32(base)<<15 | 0b010<<12 | lo<<7 | opStore
}
