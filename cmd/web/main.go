// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/robot_arm/internal/app"
	"github.com/relabs-tech/robot_arm/internal/config"
)

func main() {
	configPath := flag.String("config", "arm_config.txt", "Path to configuration file")
	flag.Parse()

	log.Println("starting robot-arm web server (MQTT subscriber)")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	log.Println("Note: samples appear once the arm controller publishes (MQTT_BROKER set in its config)")

	if err := app.RunWeb(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
