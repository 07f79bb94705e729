/*
 * rv32emu - top-level loop test cases
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

package sim

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/rv32emu/rv32emu/cpu"
	"github.com/rv32emu/rv32emu/memory"
)

func newTestSim(t *testing.T, words ...uint32) *Simulator {
	t.Helper()
	mem := memory.New(cpu.ResetVector, 4096)
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	if err := mem.LoadImage(buf); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	var out bytes.Buffer
	return New(mem, nil, nil, &out)
}

func TestRunToEbreak(t *testing.T) {
	s := newTestSim(t,
		0x00500093, // addi x1,x0,5
		0x00a00113, // addi x2,x0,10
		0x002081b3, // add x3,x1,x2
		0x00100073, // ebreak
	)
	s.Run(^uint64(0))
	if s.CPU.State != cpu.End {
		t.Fatalf("state = %v, want END", s.CPU.State)
	}
	if s.ExitCode() != 0 {
		t.Errorf("exit code = %d, want 0", s.ExitCode())
	}
}

func TestAbortDumpsFramebuffer(t *testing.T) {
	// lui x5,0x10000; lw x1,0(x5) loads from 0x10000000, which lies in
	// neither this test's tiny PMEM window nor any MMIO region — abort.
	s := newTestSim(t,
		0x100002b7, // lui x5, 0x10000
		0x0002a083, // lw x1, 0(x5)
	)
	var dumped bool
	s.FBSnapshot = func() (uint32, uint32, []byte) { return 2, 2, make([]byte, 2*2*4) }
	s.DumpFrame = func(width, height uint32, argb []byte) error {
		dumped = true
		if width != 2 || height != 2 {
			t.Errorf("dump geometry = %dx%d, want 2x2", width, height)
		}
		return nil
	}
	s.Run(^uint64(0))
	if s.CPU.State != cpu.Abort {
		t.Fatalf("state = %v, want ABORT", s.CPU.State)
	}
	if !dumped {
		t.Error("expected DumpFrame to be called on ABORT")
	}
}

func TestWatchpointStopsExecution(t *testing.T) {
	s := newTestSim(t,
		0x00100093, // addi x1,x0,1 (ra := 1, differs from baseline 0)
		0x00100073, // ebreak
	)
	if _, err := s.Watch.Add("ra", s); err != nil {
		t.Fatalf("Add: %v", err)
	}
	s.Run(^uint64(0))
	if s.CPU.State != cpu.Stop {
		t.Fatalf("state = %v, want STOP on watchpoint trigger", s.CPU.State)
	}
}
