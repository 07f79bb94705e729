/*
 * rv32emu - host presentation layer
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

// Package video implements the host presentation layer: a concrete
// ebiten-backed window (build tag !headless), a no-op fallback for
// headless/CI runs (build tag headless), and a PNG dump-on-abort helper
// shared by both, grounded on the teacher's video_backend_ebiten.go /
// video_backend_headless.go pair.
package video

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// DumpPNG renders an ARGB8888 framebuffer of the given geometry to w as
// a PNG at its own size (no scaling), used by the CLI's dump-on-abort
// path (§9 supplement: a visual artifact of the framebuffer contents at
// abort alongside the itrace/ftrace dump).
func DumpPNG(w io.Writer, width, height uint32, argb []byte) error {
	if uint32(len(argb)) < width*height*4 {
		return fmt.Errorf("video: framebuffer too small for %dx%d", width, height)
	}
	src := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			off := (y*width + x) * 4
			b, g, r, a := argb[off], argb[off+1], argb[off+2], argb[off+3]
			src.Set(int(x), int(y), color.RGBA{R: r, G: g, B: b, A: a})
		}
	}

	dst := image.NewRGBA(src.Bounds())
	draw.Copy(dst, image.Point{}, src, src.Bounds(), draw.Src, nil)
	return png.Encode(w, dst)
}
