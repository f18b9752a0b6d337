// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package terminal drives a STUM-M1 terminal over a Transport: it pumps
// received bytes through the protocol parser into an event queue, runs the
// session and transaction engine on the SEP acknowledgements, and writes
// text, attributes and semi-graphics back to the device.
//
// A Terminal is single-threaded. Every method must be called from the same
// goroutine, or the caller must serialize calls itself.
package terminal

import (
	"math"
	"time"

	"github.com/Thermoquad/teletel/pkg/link"
	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/golang/glog"
)

// Config holds the boundaries of a Terminal. Any of them may be nil.
type Config struct {
	Transport link.Transport
	Wake      link.OutputLine
	Power     link.InputLine
	Clock     link.Clock
	Stats     *stum.Statistics

	// Capture, when set, records every event with its arrival time
	Capture *stum.CaptureWriter
}

// Terminal is the driver for one device
type Terminal struct {
	tr      link.Transport
	wake    link.OutputLine
	power   link.InputLine
	clock   link.Clock
	stats   *stum.Statistics
	capture *stum.CaptureWriter

	parser stum.Parser
	queue  stum.EventQueue

	session SessionState
	tx      transaction
	last    TxResult

	charset stum.Charset
	scratch []byte
}

// New creates a Terminal. A nil clock selects the system clock and nil stats
// allocates a fresh tracker.
func New(cfg Config) *Terminal {
	t := &Terminal{
		tr:      cfg.Transport,
		wake:    cfg.Wake,
		power:   cfg.Power,
		clock:   cfg.Clock,
		stats:   cfg.Stats,
		capture: cfg.Capture,
		charset: stum.G0,
	}
	if t.clock == nil {
		t.clock = link.NewSystemClock()
	}
	if t.stats == nil {
		t.stats = stum.NewStatistics()
	}
	return t
}

// Stats returns the statistics tracker
func (t *Terminal) Stats() *stum.Statistics {
	return t.stats
}

// Now returns the terminal clock in milliseconds
func (t *Terminal) Now() uint32 {
	return t.clock.Millis()
}

// Pump drains every available byte through the parser, routes SEP events to
// the session and transaction engines, queues all events, then services the
// transaction timeout. It never blocks.
func (t *Terminal) Pump() {
	if t.tr != nil {
		for t.tr.Available() > 0 {
			b, ok := t.tr.Recv()
			if !ok {
				break
			}
			ev, out := t.parser.Feed(b)
			t.stats.Update(ev, out)
			switch out {
			case stum.OutcomeEvent:
				t.dispatch(ev)
			case stum.OutcomeMalformed:
				glog.V(2).Infof("discarded malformed ESC continuation 0x%02X", b&stum.DataMask)
			}
		}
	}
	t.serviceTimeout()
}

func (t *Terminal) dispatch(ev stum.Event) {
	glog.V(2).Infof("event %s", stum.FormatEvent(ev))

	if ev.Type == stum.EventSep {
		t.sessionSep(ev)
		t.transactionSep(ev)
	}

	if t.queue.Push(ev) {
		t.stats.Dropped++
		glog.V(2).Info("event queue full, dropped oldest event")
	}

	if t.capture != nil {
		if err := t.capture.Write(t.clock.Millis(), ev); err != nil {
			glog.Errorf("capture disabled: %v", err)
			t.capture = nil
		}
	}
}

// millis converts a timeout to clock milliseconds. Non-positive durations
// mean no timeout; positive ones round up to at least 1ms.
func millis(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	ms := d.Milliseconds()
	if ms == 0 {
		return 1
	}
	if ms > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(ms)
}
