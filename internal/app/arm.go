// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/robot_arm/internal/config"
	"github.com/relabs-tech/robot_arm/internal/control"
	"github.com/relabs-tech/robot_arm/internal/display"
	"github.com/relabs-tech/robot_arm/internal/recorder"
	"github.com/relabs-tech/robot_arm/internal/telemetry"
)

// RunArm opens the peripherals, then runs the control loop until a
// peripheral fails or the process receives SIGINT/SIGTERM.
func RunArm(cfg *config.Config) error {
	hw, err := openHardware(cfg)
	if err != nil {
		return err
	}
	defer hw.Close()

	screen := display.NewScreen(hw.dev)
	if err := screen.ShowSplash(); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	rec, err := recorder.Create(cfg.LogPath, cfg.LogCapacity)
	if err != nil {
		return err
	}
	log.Printf("recorder: logging %d rows to %s", cfg.LogCapacity, cfg.LogPath)

	opts := control.Options{
		RenderDelay: time.Duration(cfg.RenderDelay) * time.Millisecond,
		RecordDelay: time.Duration(cfg.RecordDelay) * time.Millisecond,
	}
	if cfg.MQTTBroker != "" {
		client, err := telemetry.Connect(cfg.MQTTBroker, cfg.MQTTClientIDArm)
		if err != nil {
			return fmt.Errorf("failed to connect to MQTT broker: %w", err)
		}
		pub := telemetry.NewPublisher(client, cfg.TopicSample)
		defer pub.Close()
		opts.Publisher = pub
		log.Printf("arm: publishing samples to %s on %s", cfg.TopicSample, cfg.MQTTBroker)
	}

	loop, err := control.NewLoop(hw.input, hw.servos, screen, rec, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Println("arm: shutting down")
		return nil
	}
	return err
}
