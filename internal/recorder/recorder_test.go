// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package recorder

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	bytes.Buffer
	closes   int
	writeErr error
}

func (m *memFile) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	return m.Buffer.Write(p)
}

func (m *memFile) Close() error {
	m.closes++
	return nil
}

func TestCreateWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	r, err := Create(path, DefaultCapacity)
	require.NoError(t, err)
	assert.Equal(t, StateWarmup, r.State())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,servo_pos,joystick_pos\n", string(b))
}

func TestFirstCallIsSkipped(t *testing.T) {
	f := &memFile{}
	r, err := New(f, DefaultCapacity)
	require.NoError(t, err)

	wrote, err := r.Record(100, 500, 0)
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, StateRecording, r.State())
	assert.Equal(t, 0, r.Rows())

	wrote, err = r.Record(101, 1492, 10000)
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Equal(t, "timestamp,servo_pos,joystick_pos\n101,1492,10000\n", f.String())
}

func TestLifecycleCapsAt500Rows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	r, err := Create(path, DefaultCapacity)
	require.NoError(t, err)

	written := 0
	for call := 0; call < 502; call++ {
		wrote, err := r.Record(int64(1700000000+call), uint16(500+call), uint16(call*100))
		require.NoError(t, err)
		if wrote {
			written++
		}
		switch {
		case call == 0:
			assert.False(t, wrote, "call 0 is skipped")
		case call <= 500:
			assert.True(t, wrote, "call %d writes", call)
			assert.Equal(t, StateRecording, r.State())
		default:
			assert.False(t, wrote)
			assert.Equal(t, StateClosed, r.State())
		}
	}
	assert.Equal(t, DefaultCapacity, written)
	assert.False(t, r.Recording())

	// closed is terminal and silent
	for i := 0; i < 10; i++ {
		wrote, err := r.Record(0, 0, 0)
		require.NoError(t, err)
		assert.False(t, wrote)
	}

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, DefaultCapacity+1)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{"1700000001", "501", "100"}, records[1])
	assert.Equal(t, []string{"1700000500", "1000", "50000"}, records[500])
}

func TestCloseHappensOnce(t *testing.T) {
	f := &memFile{}
	r, err := New(f, 3)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := r.Record(int64(i), 1, 2)
		require.NoError(t, err)
	}
	assert.Equal(t, StateRecording, r.State())
	assert.Zero(t, f.closes)

	_, err = r.Record(4, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, StateClosed, r.State())

	for i := 0; i < 5; i++ {
		_, err = r.Record(5, 1, 2)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, f.closes)
	assert.Equal(t, 3, r.Rows())
}

func TestWriteErrorIsReturned(t *testing.T) {
	f := &memFile{}
	r, err := New(f, DefaultCapacity)
	require.NoError(t, err)
	_, err = r.Record(0, 0, 0)
	require.NoError(t, err)

	f.writeErr = errors.New("no space left on device")
	_, err = r.Record(1, 2, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recorder: write row 1")
	assert.Equal(t, 0, r.Rows())
}

func TestNewRejectsBadCapacity(t *testing.T) {
	_, err := New(&memFile{}, 0)
	assert.Error(t, err)
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateWarmup:    "warmup",
		StateRecording: "recording",
		StateClosed:    "closed",
		State(9):       "unknown",
	} {
		assert.Equal(t, want, s.String(), strconv.Itoa(int(s)))
	}
}
