/*
 * rv32emu - SDB command test cases
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

package sdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/rv32emu/rv32emu/cpu"
	"github.com/rv32emu/rv32emu/memory"
	"github.com/rv32emu/rv32emu/sim"
)

func newTestSim(t *testing.T, words ...uint32) *sim.Simulator {
	t.Helper()
	mem := memory.New(cpu.ResetVector, 4096)
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	if err := mem.LoadImage(buf); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	return sim.New(mem, nil, nil, new(bytes.Buffer))
}

func TestUnknownCommandReportsAndContinues(t *testing.T) {
	s := newTestSim(t, 0x00100073)
	var out bytes.Buffer
	var sess Session
	quit := sess.ProcessLine(s, &out, "bogus")
	if quit {
		t.Fatal("unknown command should not quit")
	}
	if !strings.Contains(out.String(), "Unknown command 'bogus'") {
		t.Errorf("got %q", out.String())
	}
}

func TestEmptyLineRepeatsLast(t *testing.T) {
	s := newTestSim(t, 0x00100073)
	var out bytes.Buffer
	var sess Session
	sess.ProcessLine(s, &out, "p 1+1")
	out.Reset()
	sess.ProcessLine(s, &out, "")
	if !strings.Contains(out.String(), "2 (0x2)") {
		t.Errorf("repeated command did not run: got %q", out.String())
	}
}

// S4 — memory inspect.
func TestExamineCommand(t *testing.T) {
	mem := memory.New(cpu.ResetVector, 4096)
	s := sim.New(mem, nil, nil, new(bytes.Buffer))
	words := []uint32{0xdeadbeef, 0xcafebabe, 0x12345678, 0x00000000}
	for i, w := range words {
		if err := mem.Write(cpu.ResetVector+0x100+uint32(i*4), 4, w); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	var out bytes.Buffer
	var sess Session
	sess.ProcessLine(s, &out, fmt.Sprintf("x 4 %#x", cpu.ResetVector+0x100))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %q", len(lines), out.String())
	}
	if lines[0] != "DEADBEEF" || lines[1] != "CAFEBABE" {
		t.Errorf("got %v", lines)
	}
}
