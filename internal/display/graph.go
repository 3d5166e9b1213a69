// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"image"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Graph area: the top half of the OLED.
const (
	GraphWidth  = Width
	GraphHeight = Height / 2
)

// Graph is a scrolling trend of the most recent GraphWidth joystick readings,
// newest on the right.
type Graph struct {
	img *image1bit.VerticalLSB
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{img: image1bit.NewVerticalLSB(image.Rect(0, 0, GraphWidth, GraphHeight))}
}

// GraphRow compresses a raw joystick reading into a graph row; larger
// readings plot nearer the top. GraphRow(0) == 31, GraphRow(65535) == 0.
func GraphRow(raw uint16) int {
	return GraphHeight - 1 - int(raw/2048)
}

// Plot scrolls the graph one column to the left, clears the rightmost column
// and plots raw in it.
//
// The raw joystick reading is plotted rather than the servo command: the two
// move together except under the idle override, where the servo holds still
// while the trace keeps following the stick.
func (g *Graph) Plot(raw uint16) {
	// VerticalLSB stores one byte per column per 8-row page, so shifting each
	// page left by one byte scrolls by one pixel.
	stride := g.img.Stride
	for page := 0; page < GraphHeight/8; page++ {
		row := g.img.Pix[page*stride : page*stride+GraphWidth]
		copy(row, row[1:])
		row[GraphWidth-1] = 0
	}
	g.img.SetBit(GraphWidth-1, GraphRow(raw), image1bit.On)
}

// Pixel reports whether (x, y) is lit.
func (g *Graph) Pixel(x, y int) bool {
	return g.img.BitAt(x, y) == image1bit.On
}

// CompositeOnto copies the graph onto the top-left of frame.
func (g *Graph) CompositeOnto(frame *Frame) {
	frame.Blit(g.img, image.Point{})
}
