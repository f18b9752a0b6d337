// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package stum

import (
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"
)

// getFuzzRounds returns the number of fuzz rounds from FUZZ_ROUNDS env var, default 1000
func getFuzzRounds() int {
	if envRounds := os.Getenv("FUZZ_ROUNDS"); envRounds != "" {
		if rounds, err := strconv.Atoi(envRounds); err == nil && rounds > 0 {
			return rounds
		}
	}
	return 1000
}

// getFuzzSeed returns the seed from FUZZ_SEED env var, or generates one from current time
func getFuzzSeed() int64 {
	if envSeed := os.Getenv("FUZZ_SEED"); envSeed != "" {
		if seed, err := strconv.ParseInt(envSeed, 10, 64); err == nil {
			return seed
		}
	}
	return time.Now().UnixNano()
}

// newFuzzRng creates a new random number generator and logs the seed for reproducibility
func newFuzzRng(t *testing.T) *rand.Rand {
	seed := getFuzzSeed()
	t.Logf("Seed: %d (reproduce with FUZZ_SEED=%d)", seed, seed)
	return rand.New(rand.NewSource(seed))
}

// randomEvent builds an event the terminal could plausibly send
func randomEvent(rng *rand.Rand) Event {
	switch rng.Intn(4) {
	case 0:
		return CharEvent(byte(0x20 + rng.Intn(0x5F)))
	case 1:
		return SepEvent(byte(rng.Intn(0x80)))
	case 2:
		return EscEvent(byte(0x40 + rng.Intn(0x40)))
	default:
		return EscEvent(EscPRO3, byte(rng.Intn(0x80)), byte(rng.Intn(0x80)), byte(rng.Intn(0x80)))
	}
}

// encodeEvent returns the bytes the terminal sends for an event
func encodeEvent(ev Event) []byte {
	switch ev.Type {
	case EventSep:
		return []byte{SEP, ev.Code}
	case EventEsc:
		return append([]byte{ESC, ev.Code}, ev.Payload()...)
	}
	return []byte{ev.Code}
}

// ============================================================
// Parser Fuzz Tests
// ============================================================

// TestFuzzParser_RandomBytes feeds random bytes to the parser and verifies
// it never panics and always returns to idle after a printable byte
func TestFuzzParser_RandomBytes(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		p := NewParser()

		length := rng.Intn(256) + 1
		data := make([]byte, length)
		rng.Read(data)

		for _, b := range data {
			ev, out := p.Feed(b)
			if out == OutcomeEvent && ev.Len > PRO3PayloadSize {
				t.Fatalf("Round %d: payload length %d", i, ev.Len)
			}
		}

		// Four printable bytes are enough to flush any pending sequence
		for j := 0; j < 4; j++ {
			p.Feed('a')
		}
		if !p.Idle() {
			t.Errorf("Round %d: parser not idle after printable bytes", i)
		}
	}
}

// TestFuzzParser_EventStream encodes random event sequences and verifies the
// parser recovers exactly the same events
func TestFuzzParser_EventStream(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)
	t.Logf("Running %d fuzz rounds", rounds)

	for i := 0; i < rounds; i++ {
		p := NewParser()

		count := rng.Intn(20) + 1
		expected := make([]Event, count)
		var wire []byte
		for j := range expected {
			expected[j] = randomEvent(rng)
			wire = append(wire, encodeEvent(expected[j])...)
		}

		var got []Event
		for _, b := range wire {
			if ev, out := p.Feed(b); out == OutcomeEvent {
				got = append(got, ev)
			}
		}

		if len(got) != len(expected) {
			t.Fatalf("Round %d: expected %d events, got %d (wire % X)", i, len(expected), len(got), wire)
		}
		for j := range expected {
			if got[j] != expected[j] {
				t.Errorf("Round %d event %d: expected %+v, got %+v", i, j, expected[j], got[j])
			}
		}
	}
}

// TestFuzzQueue_Overflow pushes random bursts and checks the newest events survive
func TestFuzzQueue_Overflow(t *testing.T) {
	rounds := getFuzzRounds()
	rng := newFuzzRng(t)

	for i := 0; i < rounds; i++ {
		var q EventQueue
		n := rng.Intn(EventQueueSize * 3)
		for j := 0; j < n; j++ {
			q.Push(ControlEvent(byte(j)))
		}

		keep := n
		if keep > EventQueueSize {
			keep = EventQueueSize
		}
		if q.Len() != keep {
			t.Fatalf("Round %d: expected %d queued, got %d", i, keep, q.Len())
		}
		for j := n - keep; j < n; j++ {
			ev, _ := q.Pop()
			if ev.Code != byte(j) {
				t.Fatalf("Round %d: expected code %d, got %d", i, byte(j), ev.Code)
			}
		}
	}
}
