// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"fmt"
	"image"
)

// Device is the display collaborator. *ssd1306.Dev satisfies it.
type Device interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// Screen pairs a device with the frame drawn onto it.
type Screen struct {
	dev   Device
	frame *Frame
}

// NewScreen returns a screen with a blank frame.
func NewScreen(dev Device) *Screen {
	return &Screen{dev: dev, frame: NewFrame()}
}

// Frame returns the frame renderers draw onto.
func (s *Screen) Frame() *Frame {
	return s.frame
}

// Show flushes the frame to the device.
func (s *Screen) Show() error {
	if err := s.dev.Draw(s.dev.Bounds(), s.frame.Image(), image.Point{}); err != nil {
		return fmt.Errorf("display: draw: %w", err)
	}
	return nil
}

// Clear blanks the frame for the next iteration. The device keeps showing the
// last flushed frame.
func (s *Screen) Clear() {
	s.frame.Clear()
}

// ShowSplash draws the start-up banner.
func (s *Screen) ShowSplash() error {
	s.frame.Clear()
	s.frame.Text("Robot Arm", 32, 26)
	s.frame.Text("Joystick", 36, 43)
	s.frame.Text("-> Servo", 36, 56)
	err := s.Show()
	s.frame.Clear()
	return err
}

// Discard is a Device that drops every frame, for running without an OLED.
type Discard struct{}

func (Discard) Bounds() image.Rectangle { return image.Rect(0, 0, Width, Height) }

func (Discard) Draw(image.Rectangle, image.Image, image.Point) error { return nil }
