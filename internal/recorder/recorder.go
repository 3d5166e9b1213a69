// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package recorder

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
)

// DefaultCapacity is the number of data rows a log holds.
const DefaultCapacity = 500

// Header is the first line of every log. The offline viewer relies on it.
var Header = []string{"timestamp", "servo_pos", "joystick_pos"}

// State is the lifecycle stage of a Recorder.
type State int

const (
	// StateWarmup is the state before the first Record call, which writes nothing.
	StateWarmup State = iota
	// StateRecording appends one row per call until the log is full.
	StateRecording
	// StateClosed is terminal: the file is closed and Record is a no-op.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateWarmup:
		return "warmup"
	case StateRecording:
		return "recording"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Recorder appends (timestamp, mapped, raw) rows to a CSV log.
//
// The first call is skipped, the next capacity calls write one row each, and
// the call after that closes the file. With the default capacity that is 500
// rows from calls 1..500 and a close on call 501.
type Recorder struct {
	file     io.WriteCloser
	w        *csv.Writer
	state    State
	rows     int
	capacity int
}

// Create creates (or truncates) the log at path and writes the header.
func Create(path string, capacity int) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("recorder: create %s: %w", path, err)
	}
	r, err := New(f, capacity)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// New writes the header to wc and returns a recorder in StateWarmup.
func New(wc io.WriteCloser, capacity int) (*Recorder, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("recorder: capacity must be positive, got %d", capacity)
	}
	r := &Recorder{file: wc, w: csv.NewWriter(wc), capacity: capacity}
	if err := r.write(Header); err != nil {
		return nil, fmt.Errorf("recorder: write header: %w", err)
	}
	return r, nil
}

// Record handles one loop iteration and reports whether a row was written.
// Once the recorder is closed it always returns false, nil.
func (r *Recorder) Record(timestamp int64, mapped, raw uint16) (bool, error) {
	switch r.state {
	case StateClosed:
		return false, nil
	case StateWarmup:
		r.state = StateRecording
		return false, nil
	}

	if r.rows >= r.capacity {
		r.state = StateClosed
		if err := r.file.Close(); err != nil {
			return false, fmt.Errorf("recorder: close: %w", err)
		}
		log.Printf("recorder: data collected (%d rows)", r.rows)
		return false, nil
	}

	row := []string{
		strconv.FormatInt(timestamp, 10),
		strconv.Itoa(int(mapped)),
		strconv.Itoa(int(raw)),
	}
	if err := r.write(row); err != nil {
		return false, fmt.Errorf("recorder: write row %d: %w", r.rows+1, err)
	}
	r.rows++
	return true, nil
}

// State returns the current lifecycle stage.
func (r *Recorder) State() State {
	return r.state
}

// Rows returns the number of data rows written so far.
func (r *Recorder) Rows() int {
	return r.rows
}

// Recording reports whether the next Record call may still write a row.
func (r *Recorder) Recording() bool {
	return r.state != StateClosed
}

// write flushes every row so the log survives a power cut mid-run.
func (r *Recorder) write(rec []string) error {
	if err := r.w.Write(rec); err != nil {
		return err
	}
	r.w.Flush()
	return r.w.Error()
}
