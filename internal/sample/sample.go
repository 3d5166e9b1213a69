// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sample

// Sample is one control loop iteration as published over MQTT.
type Sample struct {
	Iteration int    `json:"iteration"`
	Timestamp int64  `json:"timestamp"`    // unix seconds
	Raw       uint16 `json:"joystick_pos"` // x axis
	Mapped    uint16 `json:"servo_pos"`    // before the idle override
	Command   uint16 `json:"servo_cmd"`    // duty sent to the joint
	Hand      string `json:"hand"`         // "Open" / "Shut"
	Recording bool   `json:"recording"`
}

// Overridden reports whether the joint was parked at the idle duty instead of
// following the mapped value.
func (s Sample) Overridden() bool {
	return s.Command != s.Mapped
}
