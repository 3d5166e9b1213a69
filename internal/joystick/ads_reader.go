// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package joystick

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// ADSOpts describes how the joystick is wired to an ADS1115 and a GPIO line.
type ADSOpts struct {
	Addr       uint16
	ChannelX   int
	ChannelY   int
	MaxVoltage physic.ElectricPotential // joystick supply; maps to 65535
	SampleRate physic.Frequency
	ButtonPin  string
}

// ADSReader reads the joystick axes through an ADS1115 and the push button
// through a GPIO input with pull-up.
type ADSReader struct {
	x, y       ads1x15.PinADC
	button     gpio.PinIO
	maxVoltage physic.ElectricPotential
}

var adsChannels = []ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

// NewADSReader opens the ADC channels and configures the button pin.
func NewADSReader(bus i2c.Bus, opts ADSOpts) (*ADSReader, error) {
	if opts.MaxVoltage <= 0 {
		return nil, fmt.Errorf("joystick: max voltage must be positive")
	}

	adc, err := ads1x15.NewADS1115(bus, &ads1x15.Opts{I2cAddress: opts.Addr})
	if err != nil {
		return nil, fmt.Errorf("joystick: ADS1115 at 0x%02X: %w", opts.Addr, err)
	}

	x, err := adc.PinForChannel(adsChannels[opts.ChannelX], opts.MaxVoltage, opts.SampleRate, ads1x15.BestQuality)
	if err != nil {
		return nil, fmt.Errorf("joystick: X channel %d: %w", opts.ChannelX, err)
	}
	y, err := adc.PinForChannel(adsChannels[opts.ChannelY], opts.MaxVoltage, opts.SampleRate, ads1x15.BestQuality)
	if err != nil {
		x.Halt()
		return nil, fmt.Errorf("joystick: Y channel %d: %w", opts.ChannelY, err)
	}

	button := gpioreg.ByName(opts.ButtonPin)
	if button == nil {
		x.Halt()
		y.Halt()
		return nil, fmt.Errorf("joystick: button pin %q not found", opts.ButtonPin)
	}
	if err := button.In(gpio.PullUp, gpio.NoEdge); err != nil {
		x.Halt()
		y.Halt()
		return nil, fmt.Errorf("joystick: button pin %q: %w", opts.ButtonPin, err)
	}

	return &ADSReader{x: x, y: y, button: button, maxVoltage: opts.MaxVoltage}, nil
}

// ReadAxes converts both channel voltages to the 16-bit joystick scale.
func (r *ADSReader) ReadAxes() (uint16, uint16, error) {
	sx, err := r.x.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("joystick: read X: %w", err)
	}
	sy, err := r.y.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("joystick: read Y: %w", err)
	}
	return scaleVoltage(sx.V, r.maxVoltage), scaleVoltage(sy.V, r.maxVoltage), nil
}

// ReadButton reports the button line level.
func (r *ADSReader) ReadButton() (bool, error) {
	return r.button.Read() == gpio.High, nil
}

// Halt stops both ADC channels.
func (r *ADSReader) Halt() error {
	errX := r.x.Halt()
	errY := r.y.Halt()
	if errX != nil {
		return errX
	}
	return errY
}

// scaleVoltage maps [0, full] onto [0, 65535], clamping readings outside it.
func scaleVoltage(v, full physic.ElectricPotential) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= full {
		return 65535
	}
	return uint16(int64(v) * 65535 / int64(full))
}
