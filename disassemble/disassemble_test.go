/*
 * rv32emu - disassembler test cases
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

package disassemble

import (
	"encoding/binary"
	"strings"
	"testing"
)

func encode(inst uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, inst)
	return b
}

func TestDisassembleAddi(t *testing.T) {
	s, n := Disassemble(0x8000_0000, encode(0x00500093)) // addi x1,x0,5
	if n != 4 {
		t.Fatalf("length = %d, want 4", n)
	}
	if !strings.Contains(s, "addi") || !strings.Contains(s, "ra") {
		t.Errorf("got %q", s)
	}
}

func TestDisassembleUnknownDoesNotPanic(t *testing.T) {
	s, n := Disassemble(0, encode(0xffffffff))
	if n != 4 || !strings.HasPrefix(s, ".word") {
		t.Errorf("got %q, %d", s, n)
	}
}

func TestDisassembleShortBuffer(t *testing.T) {
	s, n := Disassemble(0, []byte{0x01, 0x02})
	if n != 2 || s == "" {
		t.Errorf("got %q, %d", s, n)
	}
}
