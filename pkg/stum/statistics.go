// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package stum

import (
	"fmt"
	"time"
)

// Statistics tracks link traffic, parser outcomes and transaction results
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	BytesIn      uint64
	BytesOut     uint64
	TotalEvents  uint64
	Chars        uint64
	Seps         uint64
	EscSeqs      uint64
	Controls     uint64
	Consumed     uint64
	Malformed    uint64
	Dropped      uint64
	TxSucceeded  uint64
	TxTimedOut   uint64
	TxCancelled  uint64
	TxRejected   uint64
	SessionsOpen uint64
	SessionsFail uint64

	// Rates (calculated)
	ByteRate  float64 // bytes/sec received
	EventRate float64 // events/sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Update records the outcome of one parsed byte
func (s *Statistics) Update(ev Event, out Outcome) {
	s.BytesIn++
	switch out {
	case OutcomeConsumed:
		s.Consumed++
	case OutcomeMalformed:
		s.Malformed++
	case OutcomeEvent:
		s.TotalEvents++
		switch ev.Type {
		case EventChar:
			s.Chars++
		case EventSep:
			s.Seps++
		case EventEsc:
			s.EscSeqs++
		case EventControl:
			s.Controls++
		}
	}
	s.LastUpdateTime = time.Now()
}

// CalculateRates calculates byte and event rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.ByteRate = float64(s.BytesIn) / elapsed
		s.EventRate = float64(s.TotalEvents) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Bytes In/Out:    %8d / %d\n", s.BytesIn, s.BytesOut)
	result += fmt.Sprintf("Events:          %8d\n", s.TotalEvents)
	result += fmt.Sprintf("  Chars:            %5d\n", s.Chars)
	result += fmt.Sprintf("  SEP:              %5d\n", s.Seps)
	result += fmt.Sprintf("  ESC:              %5d\n", s.EscSeqs)
	result += fmt.Sprintf("  Controls:         %5d\n", s.Controls)

	if s.Consumed > 0 {
		result += fmt.Sprintf("Consumed Ctrls:  %8d\n", s.Consumed)
	}
	if s.Malformed > 0 {
		result += fmt.Sprintf("Malformed ESC:   %8d\n", s.Malformed)
	}
	if s.Dropped > 0 {
		result += fmt.Sprintf("Queue Drops:     %8d\n", s.Dropped)
	}
	if s.TxSucceeded+s.TxTimedOut+s.TxCancelled+s.TxRejected > 0 {
		result += fmt.Sprintf("Transactions:    %8d ok, %d timeout, %d cancelled, %d rejected\n",
			s.TxSucceeded, s.TxTimedOut, s.TxCancelled, s.TxRejected)
	}
	if s.SessionsOpen+s.SessionsFail > 0 {
		result += fmt.Sprintf("Sessions:        %8d opened, %d failed\n", s.SessionsOpen, s.SessionsFail)
	}

	result += fmt.Sprintf("Byte Rate:       %8.1f bytes/sec\n", s.ByteRate)
	result += fmt.Sprintf("Event Rate:      %8.1f events/sec\n", s.EventRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	*s = *NewStatistics()
}
