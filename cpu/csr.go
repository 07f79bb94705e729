/*
 * rv32emu - control & status register file
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

// Recognized CSR indices (§3).
const (
	CSRMstatus   = 0x300
	CSRMtvec     = 0x305
	CSRMepc      = 0x341
	CSRMcause    = 0x342
	CSRMtval     = 0x343
	CSRMcycle    = 0xB00
	CSRMcycleh   = 0xB80
	CSRMvendorid = 0xF11
	CSRMarchid   = 0xF12
)

// mstatusConst is the fixed value reads of mstatus return: MPP=3 (0x1800).
// Writes are ignored — this core only models M-mode.
const mstatusConst = 0x1800

const (
	vendoridConst = 0x79737978
	archidConst   = 26010003
)

func isReadOnlyCSR(n uint16) bool {
	switch n {
	case CSRMvendorid, CSRMarchid:
		return true
	default:
		return false
	}
}

// csrByName is the identifier table the expression evaluator and SDB use
// to resolve CSR names (§4.5).
var csrByName = map[string]uint16{
	"mstatus":   CSRMstatus,
	"mtvec":     CSRMtvec,
	"mepc":      CSRMepc,
	"mcause":    CSRMcause,
	"mtval":     CSRMtval,
	"mcycle":    CSRMcycle,
	"mcycleh":   CSRMcycleh,
	"mvendorid": CSRMvendorid,
	"marchid":   CSRMarchid,
}

// CSRByName resolves a CSR identifier to its 12-bit index.
func CSRByName(name string) (uint16, bool) {
	n, ok := csrByName[name]
	return n, ok
}

func knownCSR(n uint16) bool {
	switch n {
	case CSRMstatus, CSRMtvec, CSRMepc, CSRMcause, CSRMtval, CSRMcycle, CSRMcycleh,
		CSRMvendorid, CSRMarchid:
		return true
	default:
		return false
	}
}

// ReadCSR returns the value of CSR n. An unrecognized index is a host
// abort (§7: "Host invalid CSR index (with rt-check)").
func (c *CPU) ReadCSR(n uint16) (uint32, error) {
	if !knownCSR(n) {
		return 0, &AbortError{Reason: "invalid CSR index"}
	}
	switch n {
	case CSRMstatus:
		return mstatusConst, nil
	case CSRMvendorid:
		return vendoridConst, nil
	case CSRMarchid:
		return archidConst, nil
	default:
		return c.csr[n], nil
	}
}

// WriteCSR sets CSR n to v. Writes to mstatus and read-only CSRs are
// silently ignored.
func (c *CPU) WriteCSR(n uint16, v uint32) error {
	if !knownCSR(n) {
		return &AbortError{Reason: "invalid CSR index"}
	}
	if n == CSRMstatus || isReadOnlyCSR(n) {
		return nil
	}
	c.csr[n] = v
	return nil
}
