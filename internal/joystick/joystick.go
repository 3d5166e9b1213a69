// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package joystick

// RawSample is one joystick read. X and Y span the full 16-bit range.
type RawSample struct {
	X      uint16 `json:"x"`
	Y      uint16 `json:"y"`
	Button bool   `json:"button"` // line level; true = released (pull-up high)
}

// Reader is the input collaborator: two analog axes and one digital button.
type Reader interface {
	ReadAxes() (x, y uint16, err error)
	ReadButton() (bool, error)
}

// Read takes one RawSample from r.
func Read(r Reader) (RawSample, error) {
	x, y, err := r.ReadAxes()
	if err != nil {
		return RawSample{}, err
	}
	b, err := r.ReadButton()
	if err != nil {
		return RawSample{}, err
	}
	return RawSample{X: x, Y: y, Button: b}, nil
}
