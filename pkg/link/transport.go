// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package link holds the external boundaries of the terminal driver: the byte
// transport to the device, the wake and power-sense lines, and the
// millisecond clock. Each boundary is a small interface with a hardware
// adapter and an in-memory fake.
package link

import "errors"

// Transport is a non-blocking byte pipe to the terminal
type Transport interface {
	// Available returns the number of bytes ready to Recv
	Available() int
	// Recv returns the next received byte, false when none is pending
	Recv() (byte, bool)
	// Send queues one byte for the terminal, false when the link is down
	Send(b byte) bool
}

// BulkSender is implemented by transports that can send a buffer in one
// operation. Callers fall back to Send per byte when it is absent.
type BulkSender interface {
	SendAll(p []byte) int
}

// OutputLine is a digital output driven by the host
type OutputLine interface {
	Set(active bool) error
}

// InputLine is a digital input sampled by the host
type InputLine interface {
	Active() bool
}

var (
	// ErrConnectionClosed is returned when reading from a closed WebSocket connection
	ErrConnectionClosed = errors.New("websocket connection closed")

	// ErrUnknownPin is returned when a GPIO name does not resolve
	ErrUnknownPin = errors.New("unknown GPIO pin")
)

// SendAll sends p through t, using BulkSender when available. It returns the
// number of bytes accepted.
func SendAll(t Transport, p []byte) int {
	if t == nil || len(p) == 0 {
		return 0
	}
	if bs, ok := t.(BulkSender); ok {
		return bs.SendAll(p)
	}
	for i, b := range p {
		if !t.Send(b) {
			return i
		}
	}
	return len(p)
}
