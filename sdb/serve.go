/*
 * rv32emu - SDB remote debug server
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
	"bufio"
	"fmt"
	"net"

	"github.com/rv32emu/rv32emu/sim"
)

// Serve accepts a single remote debug connection on addr and drives it
// through the same exact-name command dispatch as the interactive REPL,
// generalized from the teacher's telnet/listener.go console multiplexer
// to a single-client debug console (§6's optional "-p PORT").
func Serve(addr string, s *sim.Simulator) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	conn, err := ln.Accept()
	if err != nil {
		return err
	}
	defer conn.Close()

	var sess Session
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		if sess.ProcessLine(s, conn, scanner.Text()) {
			break
		}
	}
	fmt.Fprintf(conn, "exit code %d\n", s.ExitCode())
	return scanner.Err()
}
