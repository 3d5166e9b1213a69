// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package servo

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/pca9685"
)

// Channel identifies one of the two servos of the arm.
type Channel int

const (
	Joint Channel = iota
	Hand
)

func (c Channel) String() string {
	switch c {
	case Joint:
		return "joint"
	case Hand:
		return "hand"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// Driver is the actuation collaborator. Duties are on the 16-bit scale.
type Driver interface {
	SetDuty(ch Channel, duty uint16) error
}

// PCA9685Driver drives both servos from a PCA9685 PWM board.
type PCA9685Driver struct {
	dev   *pca9685.Dev
	joint int
	hand  int
}

// NewPCA9685Driver opens the board and sets its frequency to 50 Hz.
func NewPCA9685Driver(bus i2c.Bus, addr uint16, jointChannel, handChannel int) (*PCA9685Driver, error) {
	dev, err := pca9685.NewI2C(bus, addr)
	if err != nil {
		return nil, fmt.Errorf("servo: PCA9685 at 0x%02X: %w", addr, err)
	}
	if err := dev.SetPwmFreq(Frequency); err != nil {
		return nil, fmt.Errorf("servo: PCA9685 set frequency: %w", err)
	}
	return &PCA9685Driver{dev: dev, joint: jointChannel, hand: handChannel}, nil
}

// SetDuty scales the 16-bit duty to the board's 12-bit counter.
func (d *PCA9685Driver) SetDuty(ch Channel, duty uint16) error {
	n, err := d.channel(ch)
	if err != nil {
		return err
	}
	if err := d.dev.SetPwm(n, 0, gpio.Duty(duty>>4)); err != nil {
		return fmt.Errorf("servo: %s duty %d: %w", ch, duty, err)
	}
	return nil
}

func (d *PCA9685Driver) channel(ch Channel) (int, error) {
	switch ch {
	case Joint:
		return d.joint, nil
	case Hand:
		return d.hand, nil
	default:
		return 0, fmt.Errorf("servo: unknown %s", ch)
	}
}

// GPIODriver drives both servos from hardware PWM capable GPIO pins.
type GPIODriver struct {
	pins map[Channel]gpio.PinOut
}

// NewGPIODriver looks up both pins and parks them at StartDuty.
func NewGPIODriver(jointPin, handPin string) (*GPIODriver, error) {
	d := &GPIODriver{pins: map[Channel]gpio.PinOut{}}
	for ch, name := range map[Channel]string{Joint: jointPin, Hand: handPin} {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("servo: %s pin %q not found", ch, name)
		}
		d.pins[ch] = p
		if err := d.SetDuty(ch, StartDuty); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// SetDuty outputs the duty at 50 Hz on the channel's pin.
func (d *GPIODriver) SetDuty(ch Channel, duty uint16) error {
	p, ok := d.pins[ch]
	if !ok {
		return fmt.Errorf("servo: unknown %s", ch)
	}
	if err := p.PWM(toGPIODuty(duty), Frequency); err != nil {
		return fmt.Errorf("servo: %s duty %d: %w", ch, duty, err)
	}
	return nil
}

// Halt stops PWM output on both pins.
func (d *GPIODriver) Halt() error {
	for ch, p := range d.pins {
		if err := p.Halt(); err != nil {
			return fmt.Errorf("servo: halt %s: %w", ch, err)
		}
	}
	return nil
}

func toGPIODuty(duty uint16) gpio.Duty {
	return gpio.Duty(int64(duty) * int64(gpio.DutyMax) / 65535)
}

// NopDriver accepts every command. It stands in for the PWM board in mock mode.
type NopDriver struct{}

func (NopDriver) SetDuty(Channel, uint16) error { return nil }
