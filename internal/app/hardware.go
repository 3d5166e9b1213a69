// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/robot_arm/internal/config"
	"github.com/relabs-tech/robot_arm/internal/display"
	"github.com/relabs-tech/robot_arm/internal/joystick"
	"github.com/relabs-tech/robot_arm/internal/servo"
)

// hardware holds the collaborators selected by the configuration.
type hardware struct {
	input  joystick.Reader
	servos servo.Driver
	dev    display.Device

	halts []func() error
}

// Close releases peripherals in reverse order of acquisition.
func (h *hardware) Close() {
	for i := len(h.halts) - 1; i >= 0; i-- {
		if err := h.halts[i](); err != nil {
			log.Printf("arm: release error: %v", err)
		}
	}
}

func needsBus(cfg *config.Config) bool {
	return cfg.InputDriver == config.DriverADS1115 ||
		cfg.PWMDriver == config.DriverPCA9685 ||
		cfg.DisplayDriver == config.DriverSSD1306
}

func needsHost(cfg *config.Config) bool {
	return needsBus(cfg) || cfg.PWMDriver == config.DriverGPIO
}

// openHardware initializes periph and builds the input, PWM and display
// collaborators. On error everything opened so far is released.
func openHardware(cfg *config.Config) (_ *hardware, err error) {
	hw := &hardware{}
	defer func() {
		if err != nil {
			hw.Close()
		}
	}()

	if needsHost(cfg) {
		if _, err := host.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize periph: %w", err)
		}
	}

	var bus i2c.BusCloser
	if needsBus(cfg) {
		bus, err = i2creg.Open(cfg.I2CBus)
		if err != nil {
			return nil, fmt.Errorf("failed to open I2C bus %q: %w", cfg.I2CBus, err)
		}
		hw.halts = append(hw.halts, bus.Close)
	}

	switch cfg.InputDriver {
	case config.DriverADS1115:
		r, err := joystick.NewADSReader(bus, joystick.ADSOpts{
			Addr:       cfg.ADCI2CAddr,
			ChannelX:   cfg.ADCChannelX,
			ChannelY:   cfg.ADCChannelY,
			MaxVoltage: physic.ElectricPotential(cfg.ADCMaxVoltageMV) * physic.MilliVolt,
			SampleRate: physic.Frequency(cfg.ADCSampleRateHz) * physic.Hertz,
			ButtonPin:  cfg.ButtonPin,
		})
		if err != nil {
			return nil, err
		}
		hw.halts = append(hw.halts, r.Halt)
		hw.input = r
		log.Printf("arm: joystick on ADS1115 0x%02X (X=A%d Y=A%d, button %s)",
			cfg.ADCI2CAddr, cfg.ADCChannelX, cfg.ADCChannelY, cfg.ButtonPin)
	default:
		hw.input = joystick.NewMockReader()
		log.Println("arm: using mock joystick")
	}

	switch cfg.PWMDriver {
	case config.DriverPCA9685:
		d, err := servo.NewPCA9685Driver(bus, cfg.PCA9685I2CAddr, cfg.JointChannel, cfg.HandChannel)
		if err != nil {
			return nil, err
		}
		hw.servos = d
		log.Printf("arm: servos on PCA9685 0x%02X (joint=%d hand=%d)",
			cfg.PCA9685I2CAddr, cfg.JointChannel, cfg.HandChannel)
	case config.DriverGPIO:
		d, err := servo.NewGPIODriver(cfg.JointPin, cfg.HandPin)
		if err != nil {
			return nil, err
		}
		hw.halts = append(hw.halts, d.Halt)
		hw.servos = d
		log.Printf("arm: servos on %s (joint) and %s (hand)", cfg.JointPin, cfg.HandPin)
	default:
		hw.servos = servo.NopDriver{}
		log.Println("arm: servo output disabled (mock driver)")
	}

	switch cfg.DisplayDriver {
	case config.DriverSSD1306:
		oled, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize display: %w", err)
		}
		hw.halts = append(hw.halts, oled.Halt)
		hw.dev = oled
		log.Println("display: SSD1306 initialized")
	default:
		hw.dev = display.Discard{}
		log.Println("display: output discarded (mock driver)")
	}

	return hw, nil
}
