// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/robot_arm/internal/sample"
)

func TestServeSample(t *testing.T) {
	hub := newSampleHub()
	srv := httptest.NewServer(hub.handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/sample")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	want := sample.Sample{Iteration: 7, Timestamp: 1700000000, Raw: 40000, Mapped: 4467, Command: 4467, Hand: "Open"}
	hub.Update(want)

	resp, err = http.Get(srv.URL + "/api/sample")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got sample.Sample
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, want, got)
}

func TestServeWSStreamsSamples(t *testing.T) {
	hub := newSampleHub()
	srv := httptest.NewServer(hub.handler())
	defer srv.Close()

	first := sample.Sample{Iteration: 1, Raw: 10000, Mapped: 1492, Command: 3800, Hand: "Shut"}
	hub.Update(first)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var got sample.Sample
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, first, got)

	// the client is registered once the latest sample has been sent
	second := sample.Sample{Iteration: 2, Raw: 65535, Mapped: 7000, Command: 7000, Hand: "Open", Recording: true}
	hub.Update(second)
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, second, got)
}

func TestPrintSample(t *testing.T) {
	var buf bytes.Buffer
	printSample(&buf, sample.Sample{Iteration: 3, Raw: 10000, Mapped: 1492, Command: 3800, Hand: "Shut", Recording: true})
	assert.Equal(t, "[ARM      3] PS2=10000  SG90=1492  CMD=3800 idle  HAND=Shut rec\n", buf.String())

	buf.Reset()
	printSample(&buf, sample.Sample{Iteration: 4, Raw: 65535, Mapped: 7000, Command: 7000, Hand: "Open"})
	assert.Equal(t, "[ARM      4] PS2=65535  SG90=7000  CMD=7000  HAND=Open\n", buf.String())
}
