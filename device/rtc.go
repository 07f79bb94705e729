/*
 * rv32emu - real-time clock device
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

import "github.com/rv32emu/rv32emu/memory"

// RTC backs two 32-bit words latched together on read of the low word so
// a follow-up read of the high word stays consistent.
type RTC struct {
	backing []byte
	now     func() uint64 // monotonic host microseconds
}

// calNum/calDen apply the guest-microsecond calibration: guest_us =
// host_us * 40 / 53.
const (
	calNum = 40
	calDen = 53
)

// NewRTC builds an RTC sourced from now (host monotonic microseconds).
func NewRTC(now func() uint64) *RTC {
	return &RTC{backing: make([]byte, 8), now: now}
}

// Region is the RTC's MMIO region.
func (r *RTC) Region(base uint32) memory.Region {
	return memory.Region{Name: "rtc", Base: base, Size: 8, Backing: r.backing, Dev: r}
}

// OnAccess implements memory.Device: a read of the low word latches both
// words to the calibrated guest time.
func (r *RTC) OnAccess(offset uint32, length int, isWrite bool) {
	if isWrite || offset != 0 {
		return
	}
	us := r.now() * calNum / calDen
	putWord(r.backing, 0, uint32(us))
	putWord(r.backing, 4, uint32(us>>32))
}
