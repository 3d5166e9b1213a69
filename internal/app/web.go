// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/relabs-tech/robot_arm/internal/config"
	"github.com/relabs-tech/robot_arm/internal/sample"
	"github.com/relabs-tech/robot_arm/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// sampleHub keeps the latest arm sample and fans it out to websocket clients.
type sampleHub struct {
	mu      sync.Mutex
	last    sample.Sample
	have    bool
	clients map[*websocket.Conn]struct{}
}

func newSampleHub() *sampleHub {
	return &sampleHub{clients: make(map[*websocket.Conn]struct{})}
}

// Update stores s and pushes it to every connected client. Clients that
// fail to receive it are dropped.
func (h *sampleHub) Update(s sample.Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = s
	h.have = true
	for conn := range h.clients {
		if err := conn.WriteJSON(s); err != nil {
			log.Printf("web: websocket write error: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *sampleHub) latest() (sample.Sample, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.have
}

func (h *sampleHub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sample", h.serveSample)
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

// serveSample returns the latest sample as JSON.
func (h *sampleHub) serveSample(w http.ResponseWriter, r *http.Request) {
	s, ok := h.latest()
	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s); err != nil {
		log.Printf("web: json encode error: %v", err)
	}
}

// serveWS streams samples to the client, starting with the latest one.
func (h *sampleHub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade error: %v", err)
		return
	}

	h.mu.Lock()
	if h.have {
		if err := conn.WriteJSON(h.last); err != nil {
			h.mu.Unlock()
			conn.Close()
			return
		}
	}
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	// Drain until the client goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// RunWeb serves the arm's samples received over MQTT on /api/sample and /ws.
func RunWeb(cfg *config.Config) error {
	if cfg.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is not configured")
	}

	hub := newSampleHub()

	client, err := telemetry.Connect(cfg.MQTTBroker, cfg.MQTTClientIDWeb)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	if err := telemetry.Subscribe(client, cfg.TopicSample, hub.Update); err != nil {
		return err
	}
	log.Printf("web: subscribed to %s", cfg.TopicSample)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: server listening on %s", addr)
	return http.ListenAndServe(addr, hub.handler())
}
