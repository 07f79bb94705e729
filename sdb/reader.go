/*
 * rv32emu - SDB interactive line reader
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
	"errors"
	"io"

	"github.com/peterh/liner"
	"github.com/rv32emu/rv32emu/sim"
)

// Repl drives the interactive REPL over the process's stdin/stdout
// terminal using liner for history and tab completion, grounded on
// command/reader/reader.go's ConsoleReader.
func Repl(s *sim.Simulator, out io.Writer) int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string { return CompleteCmd(l) })

	var sess Session
	for {
		text, err := line.Prompt("rvdbg> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			break
		}
		line.AppendHistory(text)
		if sess.ProcessLine(s, out, text) {
			break
		}
	}
	return s.ExitCode()
}

// Batch runs the non-interactive CLI mode (-b/--batch): equivalent to
// "c" then "q" (§6).
func Batch(s *sim.Simulator, out io.Writer) int {
	var sess Session
	sess.ProcessLine(s, out, "c")
	sess.ProcessLine(s, out, "q")
	return s.ExitCode()
}
