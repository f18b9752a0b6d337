// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package terminal

import (
	"time"

	"github.com/Thermoquad/teletel/pkg/link"
	"github.com/Thermoquad/teletel/pkg/stum"
)

// EventAvailable reports whether an event is queued
func (t *Terminal) EventAvailable() bool {
	return t.queue.Len() > 0
}

// ReadEvent dequeues the oldest event without pumping
func (t *Terminal) ReadEvent() (stum.Event, bool) {
	return t.queue.Pop()
}

// WaitEvent pumps until an event is queued or timeout elapses; zero waits
// forever. On expiry it returns a Timeout event and false.
func (t *Terminal) WaitEvent(timeout time.Duration) (stum.Event, bool) {
	ms := millis(timeout)
	start := t.clock.Millis()
	for {
		t.Pump()
		if ev, ok := t.queue.Pop(); ok {
			return ev, true
		}
		if link.Expired(t.clock.Millis(), start, ms) {
			return stum.TimeoutEvent(), false
		}
		t.clock.Sleep(1)
	}
}

// ReadChar waits for the next character event, discarding any other event
// received meanwhile
func (t *Terminal) ReadChar(timeout time.Duration) (byte, bool) {
	ms := millis(timeout)
	start := t.clock.Millis()
	for {
		t.Pump()
		for {
			ev, ok := t.queue.Pop()
			if !ok {
				break
			}
			if ev.Type == stum.EventChar {
				return ev.Code, true
			}
		}
		if link.Expired(t.clock.Millis(), start, ms) {
			return 0, false
		}
		t.clock.Sleep(1)
	}
}

// LineOptions controls ReadLine
type LineOptions struct {
	MaxLen      int           // maximum characters kept, 0 for no limit
	Timeout     time.Duration // whole-line timeout, 0 waits forever
	StopOnEnvoi bool          // the ENVOI key (SEP 4/13) ends the line
	Echo        bool          // echo typed characters back to the screen
}

// ReadLine collects printable characters until CR, LF or (optionally) ENVOI.
// BS deletes the last character. On timeout it returns what was typed so far
// and false.
func (t *Terminal) ReadLine(opts LineOptions) (string, bool) {
	ms := millis(opts.Timeout)
	start := t.clock.Millis()
	line := make([]byte, 0, 40)

	for {
		t.Pump()
		for {
			ev, ok := t.queue.Pop()
			if !ok {
				break
			}
			switch ev.Type {
			case stum.EventChar:
				switch c := ev.Code; {
				case c == stum.CR || c == stum.LF:
					if opts.Echo {
						t.Print("\r\n")
					}
					return string(line), true
				case c == stum.BS:
					if len(line) > 0 {
						line = line[:len(line)-1]
						if opts.Echo {
							t.Print("\b \b")
						}
					}
				case c >= 0x20 && c <= 0x7E:
					if opts.MaxLen > 0 && len(line) >= opts.MaxLen {
						continue
					}
					line = append(line, c)
					if opts.Echo {
						t.PutChar(c)
					}
				}
			case stum.EventSep:
				if opts.StopOnEnvoi && ev.IsSep(stum.EnvoiRow, stum.EnvoiCol) {
					if opts.Echo {
						t.Print("\r\n")
					}
					return string(line), true
				}
			}
		}
		if link.Expired(t.clock.Millis(), start, ms) {
			return string(line), false
		}
		t.clock.Sleep(1)
	}
}
