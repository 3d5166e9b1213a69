// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// OLED geometry.
const (
	Width  = 128
	Height = 64
)

// Frame is the primary drawing surface: one full 1-bit OLED frame in the
// SSD1306 native page layout.
type Frame struct {
	img *image1bit.VerticalLSB
}

// NewFrame returns a blank Width x Height frame.
func NewFrame() *Frame {
	return &Frame{img: image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height))}
}

// Image exposes the frame for flushing to a device.
func (f *Frame) Image() image.Image {
	return f.img
}

// Clear blanks the whole frame.
func (f *Frame) Clear() {
	clear(f.img.Pix)
}

// Pixel reports whether (x, y) is lit.
func (f *Frame) Pixel(x, y int) bool {
	return f.img.BitAt(x, y) == image1bit.On
}

// Line draws a lit line from (x0, y0) to (x1, y1), end points included.
func (f *Frame) Line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		f.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Text draws s with its baseline at y.
func (f *Frame) Text(s string, x, y int) {
	drawer := &font.Drawer{
		Dst:  f.img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(s)
}

// Blit copies src onto the frame with its top-left corner at at, unlit
// source pixels included.
func (f *Frame) Blit(src image.Image, at image.Point) {
	b := src.Bounds()
	draw.Draw(f.img, b.Sub(b.Min).Add(at), src, b.Min, draw.Src)
}

func (f *Frame) set(x, y int) {
	if image.Pt(x, y).In(f.img.Rect) {
		f.img.SetBit(x, y, image1bit.On)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
