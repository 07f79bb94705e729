/*
 * rv32emu - simulator CLI entry point
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

package main

import (
	"log/slog"
	"os"
	"time"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rv32emu/rv32emu/config/cliconfig"
	"github.com/rv32emu/rv32emu/device"
	"github.com/rv32emu/rv32emu/logging"
	"github.com/rv32emu/rv32emu/memory"
	"github.com/rv32emu/rv32emu/sdb"
	"github.com/rv32emu/rv32emu/sim"
	"github.com/rv32emu/rv32emu/symtab"
	"github.com/rv32emu/rv32emu/video"
)

func main() {
	optBatch := getopt.BoolLong("batch", 'b', "Run non-interactively: continue then quit")
	optLogFile := getopt.StringLong("log", 'l', "", "Write log to FILE instead of stdout")
	optDiff := getopt.StringLong("difftest", 'd', "", "Differential test against REF dynamic-library reference model")
	optPort := getopt.StringLong("port", 'p', "", "Enable remote debug on PORT")
	optConfig := getopt.StringLong("config", 'c', "", "Device/geometry config file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("[IMG]")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logOut *os.File
	if *optLogFile != "" {
		f, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error("cannot create log file", "path", *optLogFile, "error", err)
			os.Exit(2)
		}
		logOut = f
	}
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	logger := slog.New(logging.NewHandler(logOut, &slog.HandlerOptions{Level: level}, false))
	slog.SetDefault(logger)

	cfg := cliconfig.Defaults()
	if *optConfig != "" {
		loaded, err := cliconfig.Load(*optConfig)
		if err != nil {
			slog.Error("cannot load config file", "path", *optConfig, "error", err)
			os.Exit(2)
		}
		cfg = loaded
	}

	args := getopt.Args()
	if len(args) == 0 {
		slog.Error("no guest image given")
		getopt.Usage()
		os.Exit(2)
	}
	imgPath := args[0]

	mem := memory.New(cfg.PMEMBase, cfg.PMEMSize)
	image, err := os.ReadFile(imgPath)
	if err != nil {
		slog.Error("cannot read guest image", "path", imgPath, "error", err)
		os.Exit(2)
	}
	if err := mem.LoadImage(image); err != nil {
		slog.Error("cannot load guest image", "path", imgPath, "error", err)
		os.Exit(2)
	}

	var syms *symtab.Table
	elfPath := elfStem(imgPath)
	if t, err := symtab.Load(elfPath); err == nil {
		syms = t
	} else {
		slog.Warn("ftrace disabled: no usable companion ELF", "path", elfPath, "error", err)
	}

	kbd := device.NewKeyboard()
	window := video.NewWindow("rv32emu", int(cfg.VGAWidth), int(cfg.VGAHeight), kbd)
	var renderer device.Renderer
	if err := window.Start("rv32emu"); err != nil {
		slog.Warn("host renderer failed to start, continuing headless", "error", err)
	} else {
		renderer = window
	}

	vga := device.NewVGA(cfg.VGAWidth, cfg.VGAHeight, renderer)
	mem.MapRegion(vga.CtlRegion(cfg.VGACtl))
	mem.MapRegion(vga.FBRegion(cfg.VGAFB))

	start := time.Now()
	rtc := device.NewRTC(func() uint64 { return uint64(time.Since(start).Microseconds()) })
	mem.MapRegion(rtc.Region(cfg.RTCAddr))

	uart := device.New16550UART(os.Stdout)
	mem.MapRegion(uart.Region(cfg.UARTAddr))

	mem.MapRegion(kbd.Region(cfg.KBDAddr))

	if *optDiff != "" {
		slog.Warn("differential testing against a dynamic-library reference model is not implemented in this build; running without it", "ref", *optDiff)
	}

	s := sim.New(mem, syms, nil, os.Stdout)
	s.Devices = append(s.Devices, vga)
	s.FBSnapshot = vga.Snapshot
	s.DumpFrame = func(width, height uint32, argb []byte) error {
		f, err := os.Create("rv32emu-abort.png")
		if err != nil {
			return err
		}
		defer f.Close()
		return video.DumpPNG(f, width, height, argb)
	}

	var code int
	switch {
	case *optPort != "":
		if err := sdb.Serve(":"+*optPort, s); err != nil {
			slog.Error("remote debug server failed", "error", err)
			os.Exit(2)
		}
		code = s.ExitCode()
	case *optBatch:
		code = sdb.Batch(s, os.Stdout)
	default:
		code = sdb.Repl(s, os.Stdout)
	}
	os.Exit(code)
}

// elfStem derives the companion ELF path by replacing the image path's
// last three characters with "elf" (§6, §9): paths whose stem does not
// end in a 3-character extension may produce a wrong filename, which
// symtab.Load then reports as a plain load error — left as-is per §9.
func elfStem(imgPath string) string {
	if len(imgPath) < 3 {
		return imgPath + "elf"
	}
	return imgPath[:len(imgPath)-3] + "elf"
}
