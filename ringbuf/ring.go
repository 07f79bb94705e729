/*
 * rv32emu - fixed-capacity ring buffer
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

// Package ringbuf implements the fixed-capacity circular log shared by
// the tracers: itrace, etrace, mtrace and dtrace each push onto one of
// these instead of growing an unbounded slice. The function-call log is
// not a ring; it is a slice truncated once full.
package ringbuf

// Ring is a fixed-capacity circular buffer of T. Once full, each push
// overwrites the oldest entry. Storage is allocated once at New and never
// reallocated.
type Ring[T any] struct {
	buf   []T
	head  int // index to write next
	count int
}

// New allocates a ring of the given capacity. Capacity must be positive.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push writes v at head, overwriting the oldest entry once full.
func (r *Ring[T]) Push(v T) {
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Len reports how many entries are currently live.
func (r *Ring[T]) Len() int {
	return r.count
}

// Cap reports the fixed capacity.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Each calls fn for every live entry, oldest first, newest last. It is not
// restartable by design — single-consumer dump only — so fn is given
// "last" to flag the final (most recent) call for distinct rendering.
func (r *Ring[T]) Each(fn func(entry T, last bool)) {
	if r.count == 0 {
		return
	}
	start := r.head - r.count
	if start < 0 {
		start += len(r.buf)
	}
	for i := 0; i < r.count; i++ {
		idx := (start + i) % len(r.buf)
		fn(r.buf[idx], i == r.count-1)
	}
}

// Reset empties the ring without releasing storage.
func (r *Ring[T]) Reset() {
	r.head = 0
	r.count = 0
}
