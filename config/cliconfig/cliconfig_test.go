/*
 * rv32emu - config file parser test cases
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

package cliconfig

import (
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	src := `
# geometry override
vga_width = 640
vga_height = 480
pmem_size = 16M
rtc_addr = 0x9020_0000
`
	cfg, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.VGAWidth != 640 || cfg.VGAHeight != 480 {
		t.Errorf("geometry = %dx%d, want 640x480", cfg.VGAWidth, cfg.VGAHeight)
	}
	if cfg.PMEMSize != 16*1024*1024 {
		t.Errorf("PMEMSize = %#x, want 16M", cfg.PMEMSize)
	}
	if cfg.RTCAddr != 0x9020_0000 {
		t.Errorf("RTCAddr = %#x, want 0x90200000", cfg.RTCAddr)
	}
	// Unspecified keys keep their default.
	if cfg.KBDAddr != Defaults().KBDAddr {
		t.Errorf("KBDAddr changed despite no override")
	}
}

func TestParseRejectsUnknownKey(t *testing.T) {
	if _, err := Parse(strings.NewReader("bogus_key = 1\n")); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestParseRejectsMissingEquals(t *testing.T) {
	if _, err := Parse(strings.NewReader("vga_width 640\n")); err == nil {
		t.Fatal("expected error for missing '='")
	}
}

func TestParseSkipsCommentsAndBlankLines(t *testing.T) {
	cfg, err := Parse(strings.NewReader("\n# just a comment\n   \n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("expected pure defaults, got %+v", cfg)
	}
}
