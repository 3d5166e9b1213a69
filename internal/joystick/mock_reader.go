// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package joystick

import (
	"math"
	"time"
)

type mockReader struct {
	start time.Time
	now   func() time.Time
}

// NewMockReader creates a mock joystick that sweeps the X axis smoothly
// across its range and toggles the button every three seconds.
func NewMockReader() Reader {
	return newMockReader(time.Now)
}

func newMockReader(now func() time.Time) *mockReader {
	return &mockReader{start: now(), now: now}
}

func (m *mockReader) ReadAxes() (uint16, uint16, error) {
	elapsed := m.now().Sub(m.start).Seconds()

	x := 32767.5 + 32767.5*math.Sin(elapsed*0.8)
	y := 32767.5 + 32767.5*math.Cos(elapsed*0.5)
	return uint16(math.Round(x)), uint16(math.Round(y)), nil
}

func (m *mockReader) ReadButton() (bool, error) {
	elapsed := m.now().Sub(m.start)
	return int(elapsed/(3*time.Second))%2 == 0, nil
}
