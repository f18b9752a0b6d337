// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package terminal

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/stretchr/testify/require"
)

func TestPump_QueuesEvents(t *testing.T) {
	r := newTestRig(0, 0)
	r.tr.Inject('H', stum.HT, stum.ESC, 0x20, stum.SEP, stum.SepSend, 0x07, stum.ESC, 0x41)
	r.term.Pump()

	var got []stum.Event
	for r.term.EventAvailable() {
		ev, _ := r.term.ReadEvent()
		got = append(got, ev)
	}
	require.Equal(t, []stum.Event{
		stum.CharEvent('H'),
		stum.SepEvent(stum.SepSend),
		stum.ControlEvent(0x07),
		stum.EscEvent(0x41),
	}, got)

	stats := r.term.Stats()
	require.Equal(t, uint64(9), stats.BytesIn)
	require.Equal(t, uint64(1), stats.Consumed)
	require.Equal(t, uint64(1), stats.Malformed)
}

func TestPump_PartialSequenceAcrossCalls(t *testing.T) {
	r := newTestRig(0, 0)
	r.tr.Inject(stum.ESC, stum.EscPRO3, 0x61)
	r.term.Pump()
	require.False(t, r.term.EventAvailable())

	r.tr.Inject(0x5B, 0x51)
	r.term.Pump()
	ev, ok := r.term.ReadEvent()
	require.True(t, ok)
	require.Equal(t, stum.EscEvent(stum.EscPRO3, 0x61, 0x5B, 0x51), ev)
}

func TestPump_OverflowDropsOldest(t *testing.T) {
	r := newTestRig(0, 0)
	for i := 0; i < stum.EventQueueSize+8; i++ {
		r.tr.Inject(byte('0' + i%64))
	}
	r.term.Pump()

	require.Equal(t, uint64(8), r.term.Stats().Dropped)
	ev, _ := r.term.ReadEvent()
	require.Equal(t, byte('0'+8), ev.Code)
}

func TestPump_Capture(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRig(500, 0)
	r.term = New(Config{Transport: r.tr, Clock: r.clock, Capture: stum.NewCaptureWriter(&buf)})

	r.tr.Inject('a', stum.SEP, stum.SepPTStatus)
	r.term.Pump()

	cr := stum.NewCaptureReader(&buf)
	rec, err := cr.Next()
	require.NoError(t, err)
	require.Equal(t, uint32(500), rec.At)
	ev, err := rec.Event()
	require.NoError(t, err)
	require.Equal(t, stum.CharEvent('a'), ev)

	rec, err = cr.Next()
	require.NoError(t, err)
	ev, _ = rec.Event()
	require.True(t, ev.IsSep(5, 4))

	_, err = cr.Next()
	require.True(t, errors.Is(err, io.EOF))
}

func TestNoTransport(t *testing.T) {
	term := New(Config{})
	term.Pump()
	term.Print("nothing")
	term.StartSession(0, nil, nil)
	require.Equal(t, SessionOpening, term.Session())

	ev, ok := term.WaitEvent(5 * time.Millisecond)
	require.False(t, ok)
	require.Equal(t, stum.EventTimeout, ev.Type)
	require.Equal(t, uint64(0), term.Stats().BytesOut)
}

func TestWaitEvent(t *testing.T) {
	r := newTestRig(0, 1)
	r.tr.Inject('k')
	ev, ok := r.term.WaitEvent(100 * time.Millisecond)
	require.True(t, ok)
	require.Equal(t, stum.CharEvent('k'), ev)

	ev, ok = r.term.WaitEvent(100 * time.Millisecond)
	require.False(t, ok)
	require.Equal(t, stum.TimeoutEvent(), ev)
	require.GreaterOrEqual(t, r.clock.Now(), uint32(100))
}

func TestReadChar_SkipsOtherEvents(t *testing.T) {
	r := newTestRig(0, 1)
	r.tr.Inject(stum.SEP, stum.SepGuide, stum.ESC, 0x41, 'x')
	c, ok := r.term.ReadChar(time.Second)
	require.True(t, ok)
	require.Equal(t, byte('x'), c)

	_, ok = r.term.ReadChar(10 * time.Millisecond)
	require.False(t, ok)
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		opts     LineOptions
		expected string
		ok       bool
		echo     []byte
	}{
		{
			name:     "carriage return ends line",
			input:    []byte("AB\bC\r"),
			opts:     LineOptions{Echo: true},
			expected: "AC",
			ok:       true,
			echo:     []byte("AB\b \bC\r\n"),
		},
		{
			name:     "line feed ends line",
			input:    []byte("hi\n"),
			expected: "hi",
			ok:       true,
		},
		{
			name:     "envoi ends line",
			input:    []byte{'O', 'K', stum.SEP, stum.SepEnvoi},
			opts:     LineOptions{StopOnEnvoi: true},
			expected: "OK",
			ok:       true,
		},
		{
			name:     "envoi ignored unless requested",
			input:    []byte{'O', 'K', stum.SEP, stum.SepEnvoi},
			opts:     LineOptions{Timeout: 20 * time.Millisecond},
			expected: "OK",
			ok:       false,
		},
		{
			name:     "max length",
			input:    []byte("ABCDE\r"),
			opts:     LineOptions{MaxLen: 3, Echo: true},
			expected: "ABC",
			ok:       true,
			echo:     []byte("ABC\r\n"),
		},
		{
			name:     "backspace on empty line",
			input:    []byte("\b\bz\r"),
			opts:     LineOptions{Echo: true},
			expected: "z",
			ok:       true,
			echo:     []byte("z\r\n"),
		},
		{
			name:     "timeout returns partial line",
			input:    []byte("par"),
			opts:     LineOptions{Timeout: 50 * time.Millisecond},
			expected: "par",
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRig(0, 1)
			r.tr.Inject(tt.input...)

			line, ok := r.term.ReadLine(tt.opts)
			require.Equal(t, tt.expected, line)
			require.Equal(t, tt.ok, ok)
			if tt.echo != nil {
				require.Equal(t, tt.echo, r.tr.Written())
			}
			if !tt.opts.Echo {
				require.Empty(t, r.tr.Written())
			}
		})
	}
}
