// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package terminal

import (
	"time"

	"github.com/Thermoquad/teletel/pkg/link"
	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/golang/glog"
)

// TxResult is the outcome of the most recent transaction
type TxResult uint8

const (
	TxNone TxResult = iota
	TxSucceeded
	TxTimedOut
	TxCancelled
)

func (r TxResult) String() string {
	switch r {
	case TxNone:
		return "NONE"
	case TxSucceeded:
		return "SUCCEEDED"
	case TxTimedOut:
		return "TIMED_OUT"
	case TxCancelled:
		return "CANCELLED"
	}
	return "UNKNOWN"
}

// transaction is a single pending wait for a SEP row/col
type transaction struct {
	active    bool
	session   bool // registered by StartSession
	row, col  uint8
	start     uint32
	timeout   uint32 // 0 = no timeout
	onSuccess func()
	onTimeout func()
}

// BeginWait registers a wait for SEP(row, col). The wait succeeds when the
// matching event is pumped and fails once timeout has elapsed; zero waits
// forever. Callbacks may be nil and run from Pump after the transaction has
// been cleared, so they may start a new one. A second request while one is
// pending is rejected with ErrTransactionActive.
func (t *Terminal) BeginWait(row, col uint8, timeout time.Duration, onSuccess, onTimeout func()) error {
	return t.beginWait(row, col, millis(timeout), false, onSuccess, onTimeout)
}

func (t *Terminal) beginWait(row, col uint8, timeout uint32, session bool, onSuccess, onTimeout func()) error {
	if t.tx.active {
		t.stats.TxRejected++
		glog.V(1).Infof("transaction for SEP %d/%d rejected: SEP %d/%d pending", row, col, t.tx.row, t.tx.col)
		return ErrTransactionActive
	}
	t.tx = transaction{
		active:    true,
		session:   session,
		row:       row,
		col:       col,
		start:     t.clock.Millis(),
		timeout:   timeout,
		onSuccess: onSuccess,
		onTimeout: onTimeout,
	}
	t.last = TxNone
	glog.V(1).Infof("transaction started: SEP %d/%d timeout=%dms", row, col, timeout)
	return nil
}

// CancelTransaction clears the pending wait without invoking its callbacks
func (t *Terminal) CancelTransaction() {
	if !t.tx.active {
		return
	}
	glog.V(1).Infof("transaction cancelled: SEP %d/%d", t.tx.row, t.tx.col)
	t.tx = transaction{}
	t.last = TxCancelled
	t.stats.TxCancelled++
}

// TransactionActive reports whether a wait is pending
func (t *Terminal) TransactionActive() bool {
	return t.tx.active
}

// LastResult returns the outcome of the most recent transaction
func (t *Terminal) LastResult() TxResult {
	return t.last
}

// AwaitTransaction pumps until the pending transaction resolves and returns
// its result. It returns TxNone at once when nothing is pending.
func (t *Terminal) AwaitTransaction() TxResult {
	if !t.tx.active {
		return TxNone
	}
	for {
		t.Pump()
		if !t.tx.active {
			return t.last
		}
		t.clock.Sleep(1)
	}
}

func (t *Terminal) transactionSep(ev stum.Event) {
	if !t.tx.active || !ev.IsSep(t.tx.row, t.tx.col) {
		return
	}
	cb := t.tx.onSuccess
	glog.V(1).Infof("transaction succeeded: SEP %d/%d", t.tx.row, t.tx.col)
	t.tx = transaction{}
	t.last = TxSucceeded
	t.stats.TxSucceeded++
	if cb != nil {
		cb()
	}
}

func (t *Terminal) serviceTimeout() {
	if !t.tx.active || !link.Expired(t.clock.Millis(), t.tx.start, t.tx.timeout) {
		return
	}
	tx := t.tx
	glog.V(1).Infof("transaction timed out: SEP %d/%d after %dms", tx.row, tx.col, tx.timeout)
	t.tx = transaction{}
	t.last = TxTimedOut
	t.stats.TxTimedOut++
	if tx.session {
		t.sessionTimeout()
	}
	if tx.onTimeout != nil {
		tx.onTimeout()
	}
}
