//go:build !headless

/*
 * rv32emu - ebiten-backed host window
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

package video

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rv32emu/rv32emu/device"
)

// Window is the interactive ebiten backend. It satisfies device.Renderer
// and, once Start is called, forwards host keyboard scan codes into an
// attached device.Keyboard — adapted from the teacher's EbitenOutput,
// collapsed to the single fixed-geometry framebuffer this simulator's
// VGA device presents (no runtime SetDisplayConfig/scale/fullscreen
// surface, since spec.md's VGA device has none of that).
type Window struct {
	mu     sync.Mutex
	img    *ebiten.Image
	width  int
	height int
	buf    []byte

	kbd     *device.Keyboard
	started bool
}

var _ device.Renderer = (*Window)(nil)

// NewWindow builds an unstarted window of the given geometry. kbd may be
// nil, in which case keyboard input is simply not forwarded.
func NewWindow(title string, width, height int, kbd *device.Keyboard) *Window {
	return &Window{width: width, height: height, kbd: kbd}
}

// Start opens the host window and runs the ebiten game loop on its own
// goroutine; the simulator's synchronous top-level loop keeps running on
// the caller's goroutine and drives Present via VGA.Tick.
func (w *Window) Start(title string) error {
	if w.started {
		return nil
	}
	w.started = true
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(false)
	ebiten.SetRunnableOnUnfocused(true)

	go func() {
		if err := ebiten.RunGame(w); err != nil {
			fmt.Printf("video: ebiten exited: %v\n", err)
		}
	}()
	return nil
}

// Present implements device.Renderer: copy the ARGB framebuffer into the
// image Draw will blit next frame.
func (w *Window) Present(width, height uint32, argb []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf == nil || len(w.buf) != len(argb) {
		w.buf = make([]byte, len(argb))
	}
	copy(w.buf, argb)
}

// Update implements ebiten.Game: polls for window close and forwards key
// events into the attached keyboard queue.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if w.kbd != nil {
		w.pollKeys()
	}
	return nil
}

func (w *Window) pollKeys() {
	for _, code := range inpututil.AppendJustPressedKeys(nil) {
		w.kbd.Push(uint16(code), true)
	}
	for _, code := range inpututil.AppendJustReleasedKeys(nil) {
		w.kbd.Push(uint16(code), false)
	}
}

// Draw implements ebiten.Game: blit the last-presented ARGB frame,
// converting to ebiten's native RGBA byte order.
func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.img == nil {
		w.img = ebiten.NewImage(w.width, w.height)
	}
	if len(w.buf) == w.width*w.height*4 {
		rgba := make([]byte, len(w.buf))
		for i := 0; i+3 < len(w.buf); i += 4 {
			b, g, r, a := w.buf[i], w.buf[i+1], w.buf[i+2], w.buf[i+3]
			rgba[i], rgba[i+1], rgba[i+2], rgba[i+3] = r, g, b, a
		}
		w.img.WritePixels(rgba)
	}
	screen.DrawImage(w.img, nil)
}

// Layout implements ebiten.Game: fixed logical geometry, no scaling.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width, w.height
}
