// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Driver names accepted by the *_DRIVER keys.
const (
	DriverMock    = "mock"
	DriverADS1115 = "ads1115"
	DriverPCA9685 = "pca9685"
	DriverGPIO    = "gpio"
	DriverSSD1306 = "ssd1306"
)

// Config holds all application configuration values.
type Config struct {
	// I2C bus shared by the ADC, the PWM board and the OLED ("" = first bus)
	I2CBus string

	// Joystick input
	InputDriver     string // "ads1115" or "mock"
	ADCI2CAddr      uint16
	ADCChannelX     int // 0-3, single ended
	ADCChannelY     int
	ADCMaxVoltageMV int // full scale used to turn ADC volts into the 16-bit range
	ADCSampleRateHz int
	ButtonPin       string

	// Servo PWM
	PWMDriver      string // "pca9685", "gpio" or "mock"
	PCA9685I2CAddr uint16
	JointChannel   int
	HandChannel    int
	JointPin       string
	HandPin        string

	// Display
	DisplayDriver string // "ssd1306" or "mock"

	// Sample log
	LogPath     string
	LogCapacity int

	// Timing
	RenderDelay int // milliseconds
	RecordDelay int // milliseconds

	// Calibration
	CalibrationSamples  int
	CalibrationInterval int // milliseconds

	// MQTT telemetry (optional; empty broker disables publishing)
	MQTTBroker          string
	MQTTClientIDArm     string
	MQTTClientIDConsole string
	MQTTClientIDWeb     string
	TopicSample         string

	// Web Server
	WebServerPort int
}

// Default returns the configuration used when no file is given: the wiring of
// the reference build (ADS1115 at 0x48, PCA9685 at 0x40, SSD1306 on the same bus).
func Default() *Config {
	return &Config{
		InputDriver:         DriverADS1115,
		ADCI2CAddr:          0x48,
		ADCChannelX:         0,
		ADCChannelY:         1,
		ADCMaxVoltageMV:     3300,
		ADCSampleRateHz:     860,
		ButtonPin:           "GPIO17",
		PWMDriver:           DriverPCA9685,
		PCA9685I2CAddr:      0x40,
		JointChannel:        0,
		HandChannel:         1,
		JointPin:            "GPIO12",
		HandPin:             "GPIO13",
		DisplayDriver:       DriverSSD1306,
		LogPath:             "data.csv",
		LogCapacity:         500,
		RenderDelay:         50,
		RecordDelay:         100,
		CalibrationSamples:  200,
		CalibrationInterval: 10,
		MQTTClientIDArm:     "robot-arm",
		MQTTClientIDConsole: "robot-arm-console",
		MQTTClientIDWeb:     "robot-arm-web",
		TopicSample:         "arm/sample",
		WebServerPort:       8080,
	}
}

// Load reads the configuration file on top of Default and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	case "I2C_BUS":
		c.I2CBus = value

	// Joystick
	case "INPUT_DRIVER":
		c.InputDriver = value
	case "ADC_I2C_ADDR":
		addr, err := parseAddr(key, value)
		if err != nil {
			return err
		}
		c.ADCI2CAddr = addr
	case "ADC_CHANNEL_X":
		ch, err := parseRange(key, value, 0, 3)
		if err != nil {
			return err
		}
		c.ADCChannelX = ch
	case "ADC_CHANNEL_Y":
		ch, err := parseRange(key, value, 0, 3)
		if err != nil {
			return err
		}
		c.ADCChannelY = ch
	case "ADC_MAX_VOLTAGE_MV":
		mv, err := parseRange(key, value, 1, 6144)
		if err != nil {
			return err
		}
		c.ADCMaxVoltageMV = mv
	case "ADC_SAMPLE_RATE_HZ":
		hz, err := parseRange(key, value, 8, 860)
		if err != nil {
			return err
		}
		c.ADCSampleRateHz = hz
	case "BUTTON_PIN":
		c.ButtonPin = value

	// Servo PWM
	case "PWM_DRIVER":
		c.PWMDriver = value
	case "PCA9685_I2C_ADDR":
		addr, err := parseAddr(key, value)
		if err != nil {
			return err
		}
		c.PCA9685I2CAddr = addr
	case "JOINT_CHANNEL":
		ch, err := parseRange(key, value, 0, 15)
		if err != nil {
			return err
		}
		c.JointChannel = ch
	case "HAND_CHANNEL":
		ch, err := parseRange(key, value, 0, 15)
		if err != nil {
			return err
		}
		c.HandChannel = ch
	case "JOINT_PIN":
		c.JointPin = value
	case "HAND_PIN":
		c.HandPin = value

	// Display
	case "DISPLAY_DRIVER":
		c.DisplayDriver = value

	// Sample log
	case "LOG_PATH":
		c.LogPath = value
	case "LOG_CAPACITY":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid LOG_CAPACITY %q: %w", value, err)
		}
		c.LogCapacity = n

	// Timing
	case "RENDER_DELAY":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid RENDER_DELAY %q: %w", value, err)
		}
		c.RenderDelay = ms
	case "RECORD_DELAY":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid RECORD_DELAY %q: %w", value, err)
		}
		c.RecordDelay = ms

	// Calibration
	case "CALIBRATION_SAMPLES":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CALIBRATION_SAMPLES %q: %w", value, err)
		}
		c.CalibrationSamples = n
	case "CALIBRATION_INTERVAL":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CALIBRATION_INTERVAL %q: %w", value, err)
		}
		c.CalibrationInterval = ms

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_ARM":
		c.MQTTClientIDArm = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "TOPIC_SAMPLE":
		c.TopicSample = value

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

func parseAddr(key, value string) (uint16, error) {
	addr, err := strconv.ParseUint(value, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if addr > 0x7F {
		return 0, fmt.Errorf("%s must be a 7-bit I2C address, got 0x%X", key, addr)
	}
	return uint16(addr), nil
}

func parseRange(key, value string, lo, hi int) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s must be %d-%d, got %d", key, lo, hi, v)
	}
	return v, nil
}

// validate checks that all required fields are set and consistent.
func (c *Config) validate() error {
	switch c.InputDriver {
	case DriverADS1115:
		if c.ADCChannelX == c.ADCChannelY {
			return fmt.Errorf("ADC_CHANNEL_X and ADC_CHANNEL_Y must differ")
		}
		if c.ButtonPin == "" {
			return fmt.Errorf("BUTTON_PIN is required")
		}
	case DriverMock:
	default:
		return fmt.Errorf("unknown INPUT_DRIVER %q", c.InputDriver)
	}

	switch c.PWMDriver {
	case DriverPCA9685:
		if c.JointChannel == c.HandChannel {
			return fmt.Errorf("JOINT_CHANNEL and HAND_CHANNEL must differ")
		}
	case DriverGPIO:
		if c.JointPin == "" || c.HandPin == "" {
			return fmt.Errorf("JOINT_PIN and HAND_PIN are required for the gpio driver")
		}
	case DriverMock:
	default:
		return fmt.Errorf("unknown PWM_DRIVER %q", c.PWMDriver)
	}

	switch c.DisplayDriver {
	case DriverSSD1306, DriverMock:
	default:
		return fmt.Errorf("unknown DISPLAY_DRIVER %q", c.DisplayDriver)
	}

	if c.LogPath == "" {
		return fmt.Errorf("LOG_PATH is required")
	}
	if c.LogCapacity <= 0 {
		return fmt.Errorf("LOG_CAPACITY must be positive")
	}
	if c.RenderDelay < 0 || c.RecordDelay < 0 {
		return fmt.Errorf("RENDER_DELAY and RECORD_DELAY must not be negative")
	}
	if c.MQTTBroker != "" && c.TopicSample == "" {
		return fmt.Errorf("TOPIC_SAMPLE is required when MQTT_BROKER is set")
	}
	return nil
}
