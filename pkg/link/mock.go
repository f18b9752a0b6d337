// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package link

import "sync"

// MemTransport is an in-memory Transport. Tests inject received bytes and
// inspect what was sent.
type MemTransport struct {
	mu   sync.Mutex
	in   []byte
	out  []byte
	down bool
}

// NewMemTransport creates an empty transport
func NewMemTransport() *MemTransport {
	return &MemTransport{}
}

// Inject queues bytes as if the terminal had sent them
func (m *MemTransport) Inject(p ...byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.in = append(m.in, p...)
}

// Written returns a copy of everything sent so far
func (m *MemTransport) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.out...)
}

// TakeWritten returns everything sent so far and clears it
func (m *MemTransport) TakeWritten() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.out
	m.out = nil
	return out
}

// SetDown makes Send fail, as a disconnected link would
func (m *MemTransport) SetDown(down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.down = down
}

// Reset drops pending input and recorded output
func (m *MemTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.in, m.out = nil, nil
}

func (m *MemTransport) Available() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.in)
}

func (m *MemTransport) Recv() (byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.in) == 0 {
		return 0, false
	}
	b := m.in[0]
	m.in = m.in[1:]
	return b, true
}

func (m *MemTransport) Send(b byte) bool {
	return m.SendAll([]byte{b}) == 1
}

func (m *MemTransport) SendAll(p []byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return 0
	}
	m.out = append(m.out, p...)
	return len(p)
}

// ManualClock is a Clock under test control. Every Millis call advances it
// by Step so polling loops make progress; Sleep advances by the requested
// amount.
type ManualClock struct {
	mu   sync.Mutex
	now  uint32
	Step uint32
}

// NewManualClock creates a clock at start advancing step per read
func NewManualClock(start, step uint32) *ManualClock {
	return &ManualClock{now: start, Step: step}
}

func (c *ManualClock) Millis() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.now
	c.now += c.Step
	return n
}

func (c *ManualClock) Sleep(ms uint32) {
	c.Advance(ms)
}

// Advance moves the clock forward
func (c *ManualClock) Advance(ms uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += ms
}

// Now returns the current reading without stepping
func (c *ManualClock) Now() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// FakeLine is an OutputLine and InputLine backed by a bool. It records every
// Set call.
type FakeLine struct {
	mu     sync.Mutex
	active bool
	sets   []bool
}

func (l *FakeLine) Set(active bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.active = active
	l.sets = append(l.sets, active)
	return nil
}

func (l *FakeLine) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Sets returns the history of Set calls
func (l *FakeLine) Sets() []bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]bool(nil), l.sets...)
}
