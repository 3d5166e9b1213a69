// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package control

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/relabs-tech/robot_arm/internal/display"
	"github.com/relabs-tech/robot_arm/internal/joystick"
	"github.com/relabs-tech/robot_arm/internal/recorder"
	"github.com/relabs-tech/robot_arm/internal/sample"
	"github.com/relabs-tech/robot_arm/internal/servo"
)

// Default delays of one iteration.
const (
	DefaultRenderDelay = 50 * time.Millisecond
	DefaultRecordDelay = 100 * time.Millisecond
)

// Publisher receives every iteration's sample. Publish errors are logged, not fatal.
type Publisher interface {
	Publish(sample.Sample) error
}

// Options tune a Loop. Zero values select the defaults.
type Options struct {
	RenderDelay time.Duration
	RecordDelay time.Duration
	Publisher   Publisher
	Sleep       func(time.Duration)
	Now         func() time.Time
}

// Loop is the arm's single control loop. All of its state is owned by the
// goroutine calling Step or Run.
type Loop struct {
	input  joystick.Reader
	servos servo.Driver
	screen *display.Screen
	graph  *display.Graph
	rec    *recorder.Recorder
	pub    Publisher

	renderDelay time.Duration
	recordDelay time.Duration
	sleep       func(time.Duration)
	now         func() time.Time

	iteration int
}

// NewLoop parks both servos at their start position and returns the loop.
func NewLoop(input joystick.Reader, servos servo.Driver, screen *display.Screen, rec *recorder.Recorder, opts Options) (*Loop, error) {
	l := &Loop{
		input:       input,
		servos:      servos,
		screen:      screen,
		graph:       display.NewGraph(),
		rec:         rec,
		pub:         opts.Publisher,
		renderDelay: opts.RenderDelay,
		recordDelay: opts.RecordDelay,
		sleep:       opts.Sleep,
		now:         opts.Now,
	}
	if l.renderDelay == 0 {
		l.renderDelay = DefaultRenderDelay
	}
	if l.recordDelay == 0 {
		l.recordDelay = DefaultRecordDelay
	}
	if l.sleep == nil {
		l.sleep = time.Sleep
	}
	if l.now == nil {
		l.now = time.Now
	}

	for _, ch := range []servo.Channel{servo.Joint, servo.Hand} {
		if err := servos.SetDuty(ch, servo.StartDuty); err != nil {
			return nil, fmt.Errorf("arm: park %s servo: %w", ch, err)
		}
	}
	screen.Clear()
	return l, nil
}

// Iteration returns the number of completed iterations.
func (l *Loop) Iteration() int {
	return l.iteration
}

// Step runs one iteration: read the joystick, drive both servos, draw the
// graph and status, then log the sample while the recorder is open.
//
// The joint receives the idle duty under the jitter threshold, but the
// display, the log and the published sample all carry the mapped value.
func (l *Loop) Step() (sample.Sample, error) {
	raw, err := joystick.Read(l.input)
	if err != nil {
		return sample.Sample{}, fmt.Errorf("arm: read joystick: %w", err)
	}

	mapped := servo.MapJoint(raw.X)
	cmd := servo.JointCommand(mapped)
	hand := servo.HandFromButton(raw.Button)

	if err := l.servos.SetDuty(servo.Joint, cmd); err != nil {
		return sample.Sample{}, fmt.Errorf("arm: drive joint: %w", err)
	}
	if err := l.servos.SetDuty(servo.Hand, hand.Duty()); err != nil {
		return sample.Sample{}, fmt.Errorf("arm: drive hand: %w", err)
	}

	if err := l.render(raw.X, mapped, hand); err != nil {
		return sample.Sample{}, err
	}

	ts := l.now().Unix()
	wrote, err := l.rec.Record(ts, mapped, raw.X)
	if err != nil {
		return sample.Sample{}, fmt.Errorf("arm: %w", err)
	}
	if wrote {
		// the loop runs faster once the log is full
		l.sleep(l.recordDelay)
	}

	s := sample.Sample{
		Iteration: l.iteration,
		Timestamp: ts,
		Raw:       raw.X,
		Mapped:    mapped,
		Command:   cmd,
		Hand:      hand.String(),
		Recording: wrote,
	}
	if l.pub != nil {
		if err := l.pub.Publish(s); err != nil {
			log.Printf("arm: publish error: %v", err)
		}
	}

	l.iteration++
	return s, nil
}

// render draws graph first and status second onto the shared frame, shows
// it, waits the render delay and blanks the frame for the next iteration.
func (l *Loop) render(raw, mapped uint16, hand servo.HandState) error {
	frame := l.screen.Frame()
	l.graph.Plot(raw)
	l.graph.CompositeOnto(frame)
	display.RenderStatus(frame, raw, mapped, hand)

	if err := l.screen.Show(); err != nil {
		return fmt.Errorf("arm: %w", err)
	}
	l.sleep(l.renderDelay)
	l.screen.Clear()
	return nil
}

// Run steps until a peripheral fails or ctx is cancelled. Cancelling does
// not close the recorder; rows already written are on disk.
func (l *Loop) Run(ctx context.Context) error {
	log.Println("arm: starting control loop")
	for {
		select {
		case <-ctx.Done():
			log.Printf("arm: stopped after %d iterations (log %s, %d rows)", l.iteration, l.rec.State(), l.rec.Rows())
			return ctx.Err()
		default:
		}
		if _, err := l.Step(); err != nil {
			return err
		}
	}
}
