// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package servo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/gpio"
)

func TestMapBoundaries(t *testing.T) {
	assert.Equal(t, uint16(500), Map(0, DutyMin, DutyMax))
	assert.Equal(t, uint16(7000), Map(65535, DutyMin, DutyMax))
	assert.Equal(t, uint16(0), Map(0, 0, 65535))
}

func TestMapMonotonic(t *testing.T) {
	prev := MapJoint(0)
	for x := 1; x <= 65535; x++ {
		got := MapJoint(uint16(x))
		if got < prev {
			t.Fatalf("MapJoint(%d) = %d, below MapJoint(%d) = %d", x, got, x-1, prev)
		}
		if got < DutyMin || got > DutyMax {
			t.Fatalf("MapJoint(%d) = %d out of [%d, %d]", x, got, DutyMin, DutyMax)
		}
		prev = got
	}
}

func TestMapKnownValues(t *testing.T) {
	tests := []struct {
		x    uint16
		want uint16
	}{
		{0, 500},
		{10000, 1492},
		{32768, 3750},
		{40000, 4467},
		{65535, 7000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapJoint(tt.x), "x=%d", tt.x)
	}
}

func TestJointCommandOverride(t *testing.T) {
	for x := 0; x <= 65535; x += 97 {
		mapped := MapJoint(uint16(x))
		cmd := JointCommand(mapped)
		if mapped < JitterThreshold {
			assert.Equal(t, uint16(IdleDuty), cmd, "x=%d mapped=%d", x, mapped)
		} else {
			assert.Equal(t, mapped, cmd, "x=%d", x)
		}
	}
	assert.Equal(t, uint16(IdleDuty), JointCommand(JitterThreshold-1))
	assert.Equal(t, uint16(JitterThreshold), JointCommand(JitterThreshold))
}

func TestHandState(t *testing.T) {
	assert.Equal(t, HandShut, HandFromButton(true))
	assert.Equal(t, HandOpen, HandFromButton(false))
	assert.Equal(t, "Shut", HandShut.String())
	assert.Equal(t, "Open", HandOpen.String())
	assert.Equal(t, uint16(1250), HandShut.Duty())
	assert.Equal(t, uint16(3800), HandOpen.Duty())
}

func TestToGPIODuty(t *testing.T) {
	assert.Equal(t, gpio.Duty(0), toGPIODuty(0))
	assert.Equal(t, gpio.DutyMax, toGPIODuty(65535))
	assert.InDelta(t, float64(gpio.DutyMax)*7000/65535, float64(toGPIODuty(7000)), 1)
}

func TestChannelString(t *testing.T) {
	assert.Equal(t, "joint", Joint.String())
	assert.Equal(t, "hand", Hand.String())
	assert.Equal(t, "channel(7)", Channel(7).String())
}
