// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package terminal

import (
	"time"

	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/golang/glog"
)

// SessionState is the wake/acknowledge state of the terminal
type SessionState uint8

const (
	SessionClosed SessionState = iota
	SessionOpening
	SessionOpen
	SessionClosing
)

func (s SessionState) String() string {
	switch s {
	case SessionClosed:
		return "CLOSED"
	case SessionOpening:
		return "OPENING"
	case SessionOpen:
		return "OPEN"
	case SessionClosing:
		return "CLOSING"
	}
	return "UNKNOWN"
}

// Session returns the current session state
func (t *Terminal) Session() SessionState {
	return t.session
}

// StartSession asserts the wake line and moves to Opening. With a positive
// timeout it also registers a wait for the SEP 5/4 acknowledgement; if that
// times out the session reverts to Closed and the wake line is released
// before onTimeout runs. It fails with ErrTransactionActive when another
// wait is pending, leaving the session untouched.
func (t *Terminal) StartSession(timeout time.Duration, onSuccess, onTimeout func()) error {
	if ms := millis(timeout); ms > 0 {
		if err := t.beginWait(stum.AckRow, stum.AckCol, ms, true, onSuccess, onTimeout); err != nil {
			return err
		}
	}
	t.setWake(true)
	t.setSession(SessionOpening)
	return nil
}

// OpenSession starts a session and pumps until it is acknowledged. It
// returns ErrTimeout when no acknowledgement arrived within timeout; zero
// waits forever.
func (t *Terminal) OpenSession(timeout time.Duration) error {
	if err := t.StartSession(timeout, nil, nil); err != nil {
		return err
	}
	for {
		t.Pump()
		switch t.session {
		case SessionOpen:
			t.stats.SessionsOpen++
			return nil
		case SessionClosed:
			t.stats.SessionsFail++
			return ErrTimeout
		}
		t.clock.Sleep(1)
	}
}

// EndSession releases the wake line. With confirm the session stays Closing
// until the terminal acknowledges with SEP 5/4; otherwise it is Closed at
// once. A pending session-open wait is cancelled.
func (t *Terminal) EndSession(confirm bool) {
	if t.tx.active && t.tx.session {
		t.CancelTransaction()
	}
	t.setWake(false)
	if confirm {
		t.setSession(SessionClosing)
	} else {
		t.setSession(SessionClosed)
	}
}

// IsPowered reads the power-sense line. Without one the terminal is assumed on.
func (t *Terminal) IsPowered() bool {
	if t.power == nil {
		return true
	}
	return t.power.Active()
}

func (t *Terminal) sessionSep(ev stum.Event) {
	if !ev.IsSep(stum.AckRow, stum.AckCol) {
		return
	}
	switch t.session {
	case SessionOpening:
		t.setSession(SessionOpen)
	case SessionClosing:
		t.setSession(SessionClosed)
	}
}

func (t *Terminal) sessionTimeout() {
	if t.session != SessionOpening {
		return
	}
	t.setWake(false)
	t.setSession(SessionClosed)
}

func (t *Terminal) setSession(s SessionState) {
	if s != t.session {
		glog.V(1).Infof("session %s -> %s", t.session, s)
	}
	t.session = s
}

func (t *Terminal) setWake(active bool) {
	if t.wake == nil {
		return
	}
	if err := t.wake.Set(active); err != nil {
		glog.Warningf("wake line: %v", err)
	}
}
