/*
 * rv32emu - device/geometry config file parser
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

// Package cliconfig implements the optional device/geometry config file:
// device base addresses and VGA screen geometry as "key = value" lines,
// one per line, '#' to end of line a comment. Grounded on the teacher's
// config/configparser/configparser.go line-scanner style, collapsed to
// this simulator's fixed device set (no model registration table is
// needed since the device set is not pluggable).
package cliconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config holds every value the CLI's device wiring needs. The zero Config
// is not usable as-is; start from Defaults().
type Config struct {
	PMEMBase uint32
	PMEMSize uint32

	VGAWidth  uint32
	VGAHeight uint32
	VGACtl    uint32
	VGAFB     uint32

	RTCAddr  uint32
	UARTAddr uint32
	KBDAddr  uint32
}

// Defaults returns the built-in device map used when no config file is
// given, or one is given but omits a key.
func Defaults() Config {
	return Config{
		PMEMBase:  0x8000_0000,
		PMEMSize:  16 * 1024 * 1024,
		VGAWidth:  320,
		VGAHeight: 240,
		VGACtl:    0x9000_0000,
		VGAFB:     0x9000_1000,
		RTCAddr:   0x9010_0000,
		UARTAddr:  0x9010_1000,
		KBDAddr:   0x9010_2000,
	}
}

var keys = map[string]func(c *Config, v uint32){
	"pmem_base":  func(c *Config, v uint32) { c.PMEMBase = v },
	"pmem_size":  func(c *Config, v uint32) { c.PMEMSize = v },
	"vga_width":  func(c *Config, v uint32) { c.VGAWidth = v },
	"vga_height": func(c *Config, v uint32) { c.VGAHeight = v },
	"vga_ctl":    func(c *Config, v uint32) { c.VGACtl = v },
	"vga_fb":     func(c *Config, v uint32) { c.VGAFB = v },
	"rtc_addr":   func(c *Config, v uint32) { c.RTCAddr = v },
	"uart_addr":  func(c *Config, v uint32) { c.UARTAddr = v },
	"kbd_addr":   func(c *Config, v uint32) { c.KBDAddr = v },
}

// Load reads a config file from disk, starting from Defaults and
// overriding any key present. Any open or parse failure, a missing file
// included, is returned as an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads config lines from r, starting from Defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Defaults()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := parseLine(&cfg, scanner.Text(), lineNo); err != nil {
			return Config{}, err
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseLine(cfg *Config, line string, lineNo int) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	i := strings.IndexByte(line, '=')
	if i < 0 {
		return fmt.Errorf("cliconfig: line %d: missing '=': %q", lineNo, line)
	}
	name := strings.ToLower(strings.TrimSpace(line[:i]))
	valStr := strings.TrimSpace(line[i+1:])
	if name == "" || valStr == "" {
		return fmt.Errorf("cliconfig: line %d: empty key or value", lineNo)
	}

	set, ok := keys[name]
	if !ok {
		return fmt.Errorf("cliconfig: line %d: unknown key %q", lineNo, name)
	}

	v, err := parseValue(valStr)
	if err != nil {
		return fmt.Errorf("cliconfig: line %d: %w", lineNo, err)
	}
	set(cfg, v)
	return nil
}

// parseValue accepts decimal, 0x-hex, and a trailing K/M multiplier
// (e.g. "16M"), matching the teacher's <address> grammar's
// <number><K|M> alternative.
func parseValue(s string) (uint32, error) {
	mult := uint64(1)
	switch last := s[len(s)-1]; last {
	case 'K', 'k':
		mult = 1024
		s = s[:len(s)-1]
	case 'M', 'm':
		mult = 1024 * 1024
		s = s[:len(s)-1]
	}
	if s == "" {
		return 0, errors.New("empty numeric value")
	}
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad numeric value: %w", err)
	}
	n *= mult
	if n > 0xFFFF_FFFF {
		return 0, fmt.Errorf("value %d overflows 32 bits", n)
	}
	return uint32(n), nil
}
