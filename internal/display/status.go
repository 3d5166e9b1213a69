// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"strconv"

	"github.com/relabs-tech/robot_arm/internal/servo"
)

// Status panel layout, below the graph.
const (
	separatorY   = 38
	separatorX   = 85
	readoutX     = 0
	handLabelX   = 90
	handStateX   = 95
	textBaseline = 51
	nextBaseline = 62
)

// RenderStatus draws the readouts below the graph: joystick reading, mapped
// servo value and hand state. Call it after the graph composite.
func RenderStatus(f *Frame, raw, mapped uint16, hand servo.HandState) {
	f.Line(0, separatorY, 125, separatorY)
	f.Line(separatorX, separatorY, separatorX, Height-1)
	f.Text("Hand:", handLabelX, textBaseline)

	f.Text("PS2:"+strconv.Itoa(int(raw)), readoutX, textBaseline)
	f.Text("SG90:"+strconv.Itoa(int(mapped)), readoutX, nextBaseline)
	f.Text(hand.String(), handStateX, nextBaseline)
}
