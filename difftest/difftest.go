/*
 * rv32emu - differential-test hook
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

// Package difftest names the extension point for differential testing
// against a reference model (spec.md §1 lists it as an external
// collaborator with a specified interface only). No reference backend
// ships with this core; Hook's default implementation is a no-op.
package difftest

// Hook is consulted by the Simulator after every retired instruction with
// the new pc and register file; a non-nil error aborts the run. The -d
// flag does not install a Hook in this build.
type Hook interface {
	Check(pc uint32, gpr [32]uint32) error
}

// Noop is the hook a Simulator uses when none is given.
type Noop struct{}

// Check always succeeds.
func (Noop) Check(pc uint32, gpr [32]uint32) error { return nil }
