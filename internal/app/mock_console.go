// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"time"

	"github.com/relabs-tech/robot_arm/internal/joystick"
	"github.com/relabs-tech/robot_arm/internal/servo"
)

// RunMockConsole prints what the arm would do with the mock joystick,
// without touching any hardware.
func RunMockConsole() error {
	src := joystick.NewMockReader()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		raw, err := joystick.Read(src)
		if err != nil {
			return err
		}

		mapped := servo.MapJoint(raw.X)
		hand := servo.HandFromButton(raw.Button)
		fmt.Printf(
			"PS2=%5d  SG90=%4d  CMD=%4d  HAND=%s\n",
			raw.X,
			mapped,
			servo.JointCommand(mapped),
			hand,
		)
	}
	return nil
}
