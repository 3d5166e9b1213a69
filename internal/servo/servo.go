// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package servo

import (
	"math"

	"periph.io/x/conn/v3/physic"
)

// Duty values are on the 16-bit scale (0..65535) at 50 Hz, as an SG-90 expects.
const (
	DutyMin = 500
	DutyMax = 7000

	// JitterThreshold is the mapped value under which the joint is parked at
	// IdleDuty instead of following the joystick, so a stick resting near its
	// noisy center does not make the servo buzz.
	JitterThreshold = 3900
	IdleDuty        = 3800

	HandShutDuty = 1250
	HandOpenDuty = 3800
	StartDuty    = 1250

	Frequency = 50 * physic.Hertz
)

// Map interpolates a 16-bit joystick reading into [lo, hi]:
// round(x / 65536 * (hi - lo) + lo), rounding half to even.
func Map(x, lo, hi uint16) uint16 {
	v := float64(x)/65536*(float64(hi)-float64(lo)) + float64(lo)
	return uint16(math.RoundToEven(v))
}

// MapJoint maps a joystick reading onto the joint servo range.
func MapJoint(x uint16) uint16 {
	return Map(x, DutyMin, DutyMax)
}

// JointCommand is the duty actually sent to the joint servo for a mapped value.
// Callers keep displaying and logging the mapped value itself.
func JointCommand(mapped uint16) uint16 {
	if mapped < JitterThreshold {
		return IdleDuty
	}
	return mapped
}

// HandState is the open/shut state of the gripper.
type HandState int

const (
	HandOpen HandState = iota
	HandShut
)

// HandFromButton derives the hand state from the current button level only.
// The button line idles high through its pull-up, which keeps the hand shut.
func HandFromButton(button bool) HandState {
	if button {
		return HandShut
	}
	return HandOpen
}

func (h HandState) String() string {
	if h == HandShut {
		return "Shut"
	}
	return "Open"
}

// Duty returns the hand servo duty for h.
func (h HandState) Duty() uint16 {
	if h == HandShut {
		return HandShutDuty
	}
	return HandOpenDuty
}
