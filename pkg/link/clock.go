// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package link

import "time"

// Clock is a monotonically increasing millisecond counter that wraps at 2^32
type Clock interface {
	Millis() uint32
	Sleep(ms uint32)
}

// SystemClock counts milliseconds since it was created
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock starting at zero
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Millis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

func (c *SystemClock) Sleep(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// Elapsed returns the milliseconds from start to now, correct across one
// counter wrap
func Elapsed(now, start uint32) uint32 {
	return now - start
}

// Expired reports whether timeout milliseconds have passed since start. A
// zero timeout never expires.
func Expired(now, start, timeout uint32) bool {
	return timeout != 0 && Elapsed(now, start) >= timeout
}
