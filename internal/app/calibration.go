// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/relabs-tech/robot_arm/internal/config"
	"github.com/relabs-tech/robot_arm/internal/joystick"
	"github.com/relabs-tech/robot_arm/internal/servo"
)

const (
	// Stillness heuristics in raw 16-bit counts
	stillStdGood = 64.0
	stillStdBad  = 512.0

	confFloor = 0.05
)

// AxisStats summarizes one joystick axis over the survey.
type AxisStats struct {
	Min    uint16  `json:"min"`
	Max    uint16  `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// CalibrationResult is the outcome of a rest-position survey.
type CalibrationResult struct {
	SchemaVersion int    `json:"schema_version"`
	CalibrationAt string `json:"calibration_at"` // RFC3339
	Samples       int    `json:"samples"`

	X AxisStats `json:"x"`
	Y AxisStats `json:"y"`

	// Joint duty the rest position maps to
	MappedMin  uint16 `json:"mapped_min"`
	MappedMax  uint16 `json:"mapped_max"`
	MappedMean uint16 `json:"mapped_mean"`

	// InDeadZone is true when every rest sample maps under the jitter
	// threshold, so the joint stays parked at the idle duty.
	InDeadZone bool `json:"in_dead_zone"`

	ButtonPressed int     `json:"button_pressed"`
	Confidence    float64 `json:"confidence"`
}

// RunCalibration samples the joystick at rest and reports where the rest
// position lands relative to the joint dead zone.
func RunCalibration(cfg *config.Config) error {
	if cfg.CalibrationSamples <= 0 {
		return fmt.Errorf("CALIBRATION_SAMPLES must be positive")
	}

	// Only the input side is needed
	inputOnly := *cfg
	inputOnly.PWMDriver = config.DriverMock
	inputOnly.DisplayDriver = config.DriverMock
	hw, err := openHardware(&inputOnly)
	if err != nil {
		return err
	}
	defer hw.Close()

	fmt.Println("=== Joystick rest calibration ===")
	fmt.Printf("Leave the joystick centered. Reading %d samples every %d ms...\n",
		cfg.CalibrationSamples, cfg.CalibrationInterval)

	interval := time.Duration(cfg.CalibrationInterval) * time.Millisecond
	samples := make([]joystick.RawSample, 0, cfg.CalibrationSamples)
	for i := 0; i < cfg.CalibrationSamples; i++ {
		s, err := joystick.Read(hw.input)
		if err != nil {
			return fmt.Errorf("calibration: %w", err)
		}
		samples = append(samples, s)
		time.Sleep(interval)
	}

	res := computeCalibration(samples)
	res.CalibrationAt = time.Now().Format(time.RFC3339)

	fmt.Printf("  X: min=%5d max=%5d mean=%8.1f std=%6.1f\n", res.X.Min, res.X.Max, res.X.Mean, res.X.StdDev)
	fmt.Printf("  Y: min=%5d max=%5d mean=%8.1f std=%6.1f\n", res.Y.Min, res.Y.Max, res.Y.Mean, res.Y.StdDev)
	fmt.Printf("  joint duty at rest: min=%d max=%d mean=%d (idle below %d)\n",
		res.MappedMin, res.MappedMax, res.MappedMean, servo.JitterThreshold)
	fmt.Printf("  button pressed in %d/%d samples\n", res.ButtonPressed, res.Samples)
	if res.InDeadZone {
		fmt.Println("  rest position is inside the dead zone: the joint stays parked")
	} else {
		fmt.Println("  WARNING: rest position is outside the dead zone: the joint will follow the stick at rest")
	}
	fmt.Printf("  confidence=%.2f\n", res.Confidence)

	return writeCalibration(res)
}

// computeCalibration derives the rest statistics from samples.
func computeCalibration(samples []joystick.RawSample) CalibrationResult {
	res := CalibrationResult{SchemaVersion: 1, Samples: len(samples)}
	if len(samples) == 0 {
		return res
	}

	xs := make([]uint16, len(samples))
	ys := make([]uint16, len(samples))
	for i, s := range samples {
		xs[i] = s.X
		ys[i] = s.Y
		if s.Button {
			res.ButtonPressed++
		}
	}
	res.X = axisStats(xs)
	res.Y = axisStats(ys)

	res.MappedMin = servo.MapJoint(res.X.Min)
	res.MappedMax = servo.MapJoint(res.X.Max)
	res.MappedMean = servo.MapJoint(uint16(math.Round(res.X.Mean)))
	res.InDeadZone = res.MappedMax < servo.JitterThreshold
	res.Confidence = stillnessConfidence((res.X.StdDev + res.Y.StdDev) / 2)
	return res
}

func axisStats(values []uint16) AxisStats {
	st := AxisStats{Min: math.MaxUint16}
	var sum float64
	for _, v := range values {
		st.Min = min(st.Min, v)
		st.Max = max(st.Max, v)
		sum += float64(v)
	}
	n := float64(len(values))
	st.Mean = sum / n

	var vs float64
	for _, v := range values {
		d := float64(v) - st.Mean
		vs += d * d
	}
	st.StdDev = math.Sqrt(vs / n)
	return st
}

func stillnessConfidence(std float64) float64 {
	switch {
	case std <= stillStdGood:
		return 1.0
	case std >= stillStdBad:
		return confFloor
	default:
		// Linear interpolation between good and bad
		t := (std - stillStdGood) / (stillStdBad - stillStdGood)
		return 1.0 - 0.95*t
	}
}

func writeCalibration(res CalibrationResult) error {
	ts := time.Now().Format("2006-01-02T15-04-05Z07-00")
	name := fmt.Sprintf("%s_joystick_calibration.json", ts)

	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, b, 0o644); err != nil {
		return err
	}
	fmt.Printf("\nWrote: %s\n", name)
	return nil
}
