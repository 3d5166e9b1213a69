// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package joystick

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
)

type stubReader struct {
	x, y   uint16
	button bool
	err    error
}

func (s stubReader) ReadAxes() (uint16, uint16, error) { return s.x, s.y, s.err }
func (s stubReader) ReadButton() (bool, error)         { return s.button, nil }

func TestRead(t *testing.T) {
	got, err := Read(stubReader{x: 1234, y: 4321, button: true})
	require.NoError(t, err)
	assert.Equal(t, RawSample{X: 1234, Y: 4321, Button: true}, got)

	_, err = Read(stubReader{err: errors.New("i2c nack")})
	assert.EqualError(t, err, "i2c nack")
}

func TestScaleVoltage(t *testing.T) {
	full := 3300 * physic.MilliVolt

	assert.Equal(t, uint16(0), scaleVoltage(-5*physic.MilliVolt, full))
	assert.Equal(t, uint16(0), scaleVoltage(0, full))
	assert.Equal(t, uint16(32767), scaleVoltage(1650*physic.MilliVolt, full))
	assert.Equal(t, uint16(65535), scaleVoltage(full, full))
	assert.Equal(t, uint16(65535), scaleVoltage(4*physic.Volt, full))
}

func TestMockReaderSweepsAndToggles(t *testing.T) {
	now := time.Unix(1000, 0)
	m := newMockReader(func() time.Time { return now })

	x, _, err := m.ReadAxes()
	require.NoError(t, err)
	assert.InDelta(t, 32768, int(x), 1)

	b, err := m.ReadButton()
	require.NoError(t, err)
	assert.True(t, b)

	now = now.Add(4 * time.Second)
	b, _ = m.ReadButton()
	assert.False(t, b)

	var lo, hi uint16 = 65535, 0
	for i := 0; i < 200; i++ {
		now = now.Add(50 * time.Millisecond)
		x, _, _ := m.ReadAxes()
		lo = min(lo, x)
		hi = max(hi, x)
	}
	assert.Less(t, lo, uint16(1000))
	assert.Greater(t, hi, uint16(64500))
}
