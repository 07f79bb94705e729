/*
 * rv32emu - physical memory and MMIO dispatch
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

// Package memory implements the flat physical address space and the
// ordered MMIO region dispatch the executor reads and writes through. An
// optional AccessObserver taps every Read/Write and region dispatch for
// the mtrace/dtrace tracers, without this package importing trace.
package memory

import "fmt"

// Default physical memory window. Overridable via New.
const (
	DefaultBase = 0x8000_0000
	DefaultSize = 16 * 1024 * 1024
)

// Device is the callback surface an MMIO region hands to its owner.
// Offset is relative to the region base; isWrite distinguishes the two
// call sites (reads are notified before the value is returned to the
// guest, writes after the backing bytes are updated).
type Device interface {
	OnAccess(offset uint32, length int, isWrite bool)
}

// AccessObserver receives every memory access for the mtrace/dtrace
// tracers (§2 C7). A nil Observer on Memory disables both at zero cost
// beyond a nil check.
type AccessObserver interface {
	OnMemAccess(addr uint32, length int, isWrite bool)
	OnDeviceAccess(region string, offset uint32, length int, isWrite bool)
}

// Region is one entry of the ordered MMIO map. Regions never overlap.
type Region struct {
	Name    string
	Base    uint32
	Size    uint32
	Backing []byte
	Dev     Device
}

// AbortError marks an access that must terminate the simulator: no
// recovery path exists for memory outside both PMEM and the MMIO map.
type AbortError struct {
	Addr uint32
	Len  int
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("access to unmapped address %#08x (len %d)", e.Addr, e.Len)
}

// Memory owns the flat RAM array and the MMIO region list. It has a
// single logical owner, the Simulator — never a package-level global.
type Memory struct {
	base    uint32
	ram     []byte
	regions []Region

	// Observer, when set, is notified of every Read/Write (mtrace) and
	// every MMIO region dispatch (dtrace). Left nil by New; the owner
	// wires it in after building the tracer subsystem.
	Observer AccessObserver
}

// New allocates size bytes of RAM starting at base.
func New(base, size uint32) *Memory {
	return &Memory{base: base, ram: make([]byte, size)}
}

// Base returns the physical memory window's start address.
func (m *Memory) Base() uint32 { return m.base }

// Size returns the physical memory window's length in bytes.
func (m *Memory) Size() uint32 { return uint32(len(m.ram)) }

// LoadImage copies data verbatim to the reset vector (base of PMEM).
func (m *Memory) LoadImage(data []byte) error {
	if uint32(len(data)) > uint32(len(m.ram)) {
		return fmt.Errorf("image of %d bytes exceeds PMEM size %d", len(data), len(m.ram))
	}
	copy(m.ram, data)
	return nil
}

// MapRegion registers a non-overlapping MMIO region. Panics on overlap —
// the map is built once at startup from a fixed device set, so an
// overlap is a programming error, not a runtime condition.
func (m *Memory) MapRegion(r Region) {
	for _, existing := range m.regions {
		if regionsOverlap(existing, r) {
			panic(fmt.Sprintf("memory: MMIO region %q overlaps %q", r.Name, existing.Name))
		}
	}
	m.regions = append(m.regions, r)
}

func regionsOverlap(a, b Region) bool {
	aEnd, bEnd := a.Base+a.Size, b.Base+b.Size
	return a.Base < bEnd && b.Base < aEnd
}

func (m *Memory) inPMEM(addr uint32, length int) bool {
	end := m.base + uint32(len(m.ram))
	return addr >= m.base && uint64(addr)+uint64(length) <= uint64(end)
}

func (m *Memory) findRegion(addr uint32) (*Region, bool) {
	for i := range m.regions {
		r := &m.regions[i]
		if addr >= r.Base && addr < r.Base+r.Size {
			return r, true
		}
	}
	return nil, false
}

// Read performs a little-endian load of width 1, 2 or 4 bytes, per the
// dispatch order: PMEM direct, then the unique MMIO region containing
// addr, else abort.
func (m *Memory) Read(addr uint32, length int) (uint32, error) {
	if m.inPMEM(addr, length) {
		off := addr - m.base
		v := readLE(m.ram[off : off+uint32(length)])
		if m.Observer != nil {
			m.Observer.OnMemAccess(addr, length, false)
		}
		return v, nil
	}
	r, ok := m.findRegion(addr)
	if !ok {
		return 0, &AbortError{Addr: addr, Len: length}
	}
	off := addr - r.Base
	if uint64(off)+uint64(length) > uint64(r.Size) {
		return 0, &AbortError{Addr: addr, Len: length}
	}
	if r.Dev != nil {
		r.Dev.OnAccess(off, length, false)
	}
	if m.Observer != nil {
		m.Observer.OnMemAccess(addr, length, false)
		m.Observer.OnDeviceAccess(r.Name, off, length, false)
	}
	return readLE(r.Backing[off : off+uint32(length)]), nil
}

// Write performs a little-endian store of width 1, 2 or 4 bytes.
func (m *Memory) Write(addr uint32, length int, value uint32) error {
	if m.inPMEM(addr, length) {
		off := addr - m.base
		writeLE(m.ram[off:off+uint32(length)], value)
		if m.Observer != nil {
			m.Observer.OnMemAccess(addr, length, true)
		}
		return nil
	}
	r, ok := m.findRegion(addr)
	if !ok {
		return &AbortError{Addr: addr, Len: length}
	}
	off := addr - r.Base
	if uint64(off)+uint64(length) > uint64(r.Size) {
		return &AbortError{Addr: addr, Len: length}
	}
	writeLE(r.Backing[off:off+uint32(length)], value)
	if r.Dev != nil {
		r.Dev.OnAccess(off, length, true)
	}
	if m.Observer != nil {
		m.Observer.OnMemAccess(addr, length, true)
		m.Observer.OnDeviceAccess(r.Name, off, length, true)
	}
	return nil
}

func readLE(b []byte) uint32 {
	var v uint32
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint32(b[i])
	}
	return v
}

func writeLE(b []byte, v uint32) {
	for i := range b {
		b[i] = byte(v)
		v >>= 8
	}
}
