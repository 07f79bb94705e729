/*
 * rv32emu - UART device
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

package device

import (
	"bytes"
	"io"

	"github.com/rv32emu/rv32emu/memory"
)

// UART register offsets, 16550-compatible register file, active when
// DLAB (LCR bit 7) is clear.
const (
	regTHR = 0 // write: transmit holding
	regRBR = 0 // read: receive buffer
	regIER = 1
	regFCR = 2
	regLCR = 3
	regDLL = 0 // DLAB=1
	regDLM = 1 // DLAB=1
	regLSR = 5
)

const (
	lsrDR   = 1 << 0 // data ready
	lsrTHRE = 1 << 5 // transmit holding register empty
)

// UART models a single write-only legacy data register plus the
// optional 16550 register file. Writes go to out; reads drain in, with
// no echo (§4.2).
type UART struct {
	backing []byte // 8 bytes: THR/RBR, IER, FCR, LCR, (unused), LSR, ...
	out     io.Writer
	in      bytes.Buffer
	legacy  bool
}

// NewLegacyUART builds a single-register write-only serial port.
func NewLegacyUART(out io.Writer) *UART {
	return &UART{backing: make([]byte, 1), out: out, legacy: true}
}

// New16550UART builds the fuller register-file UART.
func New16550UART(out io.Writer) *UART {
	u := &UART{backing: make([]byte, 8), out: out}
	u.backing[regLSR] = lsrTHRE
	return u
}

// Region is the UART's MMIO region.
func (u *UART) Region(base uint32) memory.Region {
	return memory.Region{Name: "uart", Base: base, Size: uint32(len(u.backing)), Backing: u.backing, Dev: u}
}

// Feed appends host input bytes available for the guest to read.
func (u *UART) Feed(b []byte) { u.in.Write(b) }

// OnAccess implements memory.Device.
func (u *UART) OnAccess(offset uint32, length int, isWrite bool) {
	if u.legacy {
		if isWrite {
			u.out.Write(u.backing[0:1])
		}
		return
	}
	dlab := u.backing[regLCR]&0x80 != 0
	switch {
	case isWrite && !dlab && offset == regTHR:
		u.out.Write(u.backing[offset : offset+1])
	case !isWrite && !dlab && offset == regRBR:
		if u.in.Len() > 0 {
			b, _ := u.in.ReadByte()
			u.backing[regRBR] = b
		} else {
			u.backing[regRBR] = 0
		}
	case !isWrite && offset == regLSR:
		lsr := byte(lsrTHRE)
		if u.in.Len() > 0 {
			lsr |= lsrDR
		}
		u.backing[regLSR] = lsr
	}
}
