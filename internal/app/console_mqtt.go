// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/relabs-tech/robot_arm/internal/config"
	"github.com/relabs-tech/robot_arm/internal/sample"
	"github.com/relabs-tech/robot_arm/internal/telemetry"
)

// RunConsoleMQTT prints every sample the arm publishes until Ctrl+C.
func RunConsoleMQTT(cfg *config.Config) error {
	if cfg.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is not configured")
	}

	client, err := telemetry.Connect(cfg.MQTTBroker, cfg.MQTTClientIDConsole)
	if err != nil {
		return err
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	if err := telemetry.Subscribe(client, cfg.TopicSample, func(s sample.Sample) {
		printSample(os.Stdout, s)
	}); err != nil {
		return err
	}
	log.Printf("console: subscribed to %s", cfg.TopicSample)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}

func printSample(w io.Writer, s sample.Sample) {
	flag := ""
	if s.Overridden() {
		flag = " idle"
	}
	rec := ""
	if s.Recording {
		rec = " rec"
	}
	fmt.Fprintf(w, "[ARM %6d] PS2=%5d  SG90=%4d  CMD=%4d%s  HAND=%s%s\n",
		s.Iteration, s.Raw, s.Mapped, s.Command, flag, s.Hand, rec)
}
