// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// ./cmd/calibration/main.go
//
// Rest-position survey for the arm joystick. Reads CALIBRATION_SAMPLES
// samples with the stick released and reports the raw spread on both axes,
// the joint duty the rest position maps to and whether it stays inside the
// idle dead zone.
//
// Output:
//
//	Writes a JSON file in the working directory including the survey time.
//
// Run:
//
//	go run ./cmd/calibration -config arm_config.txt
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/relabs-tech/robot_arm/internal/app"
	"github.com/relabs-tech/robot_arm/internal/config"
)

func main() {
	configPath := flag.String("config", "arm_config.txt", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to load config from %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	if err := app.RunCalibration(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
