// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package stum

import (
	"strings"
	"testing"
)

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		ev       Event
		contains []string
	}{
		{CharEvent('A'), []string{"CHAR", "'A'", "0x41"}},
		{CharEvent(CR), []string{"CHAR", "CR"}},
		{SepEvent(SepEnvoi), []string{"SEP", "4/13", "MODEM_NORMAL_REQ"}},
		{SepEvent(SepPTStatus), []string{"SEP", "5/4", "PT_STATUS"}},
		{EscEvent(0x41), []string{"ESC", "FG_RED"}},
		{EscEvent(EscPRO3, 0x61, 0x5B, 0x51), []string{"PRO3", "61 5B 51"}},
		{ControlEvent(0x07), []string{"CONTROL", "BEL"}},
		{TimeoutEvent(), []string{"TIMEOUT"}},
	}

	for _, tt := range tests {
		got := FormatEvent(tt.ev)
		for _, s := range tt.contains {
			if !strings.Contains(got, s) {
				t.Errorf("FormatEvent(%+v) = %q, missing %q", tt.ev, got, s)
			}
		}
	}
}

func TestFormatByte(t *testing.T) {
	tests := map[byte]string{
		0x00: "NUL",
		SEP:  "SEP",
		ESC:  "ESC",
		US:   "US",
		DEL:  "DEL",
		'z':  "'z'",
		0xC1: "'A'",
	}
	for b, expected := range tests {
		if got := FormatByte(b); got != expected {
			t.Errorf("FormatByte(0x%02X) = %q, expected %q", b, got, expected)
		}
	}

	if got := FormatBytes([]byte{ESC, 0x41, 'x'}); got != "ESC 'A' 'x'" {
		t.Errorf("unexpected FormatBytes output %q", got)
	}
}

func TestEscName(t *testing.T) {
	tests := map[byte]string{
		EscPRO3:         "PRO3",
		EscForeground:   "FG_BLACK",
		EscForeground+7: "FG_WHITE",
		EscBackground+4: "BG_BLUE",
		EscFlash:        "FLASH",
		EscDoubleSize:   "DOUBLE_SIZE",
		EscReveal:       "REVEAL",
		0x7E:            "UNKNOWN",
	}
	for code, expected := range tests {
		if got := EscName(code); got != expected {
			t.Errorf("EscName(0x%02X) = %q, expected %q", code, got, expected)
		}
	}
}

func TestStatistics_Update(t *testing.T) {
	s := NewStatistics()
	p := NewParser()

	for _, b := range []byte{'a', HT, ESC, 0x20, SEP, SepSend, 0x07, ESC, 0x41} {
		ev, out := p.Feed(b)
		s.Update(ev, out)
	}

	if s.BytesIn != 9 {
		t.Errorf("expected 9 bytes, got %d", s.BytesIn)
	}
	if s.TotalEvents != 4 {
		t.Errorf("expected 4 events, got %d", s.TotalEvents)
	}
	if s.Chars != 1 || s.Seps != 1 || s.Controls != 1 || s.EscSeqs != 1 {
		t.Errorf("unexpected breakdown %+v", s)
	}
	if s.Consumed != 1 || s.Malformed != 1 {
		t.Errorf("expected 1 consumed and 1 malformed, got %d and %d", s.Consumed, s.Malformed)
	}
	if !strings.Contains(s.String(), "Malformed ESC") {
		t.Error("summary should report malformed sequences")
	}

	s.Reset()
	if s.BytesIn != 0 || s.TotalEvents != 0 {
		t.Error("Reset should clear counters")
	}
}
