// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package stum

// EventType tags the variant carried by an Event
type EventType uint8

const (
	EventChar    EventType = iota // printable character, or CR/LF/BS
	EventSep                      // two-byte SEP row/col code
	EventEsc                      // ESC sequence, optional payload
	EventControl                  // other C0 control
	EventTimeout                  // synthesized by blocking readers
)

// Event is one fully recognized input sequence.
//
// For EventSep, Code holds the second byte and Row/Col its nibbles. For
// EventEsc, Code holds the opcode and Data[:Len] the payload.
type Event struct {
	Type EventType
	Code byte
	Row  uint8
	Col  uint8
	Len  uint8
	Data [4]byte
}

// CharEvent creates an EventChar
func CharEvent(c byte) Event {
	return Event{Type: EventChar, Code: c}
}

// ControlEvent creates an EventControl
func ControlEvent(c byte) Event {
	return Event{Type: EventControl, Code: c}
}

// SepEvent creates an EventSep from the byte following the SEP introducer
func SepEvent(second byte) Event {
	second &= DataMask
	return Event{
		Type: EventSep,
		Code: second,
		Row:  (second >> 4) & 0x07,
		Col:  second & 0x0F,
	}
}

// EscEvent creates an EventEsc. Payload beyond four bytes is truncated.
func EscEvent(opcode byte, payload ...byte) Event {
	ev := Event{Type: EventEsc, Code: opcode}
	ev.Len = uint8(copy(ev.Data[:], payload))
	return ev
}

// TimeoutEvent creates an EventTimeout
func TimeoutEvent() Event {
	return Event{Type: EventTimeout}
}

// Payload returns the ESC payload bytes
func (e Event) Payload() []byte {
	return e.Data[:e.Len]
}

// IsSep reports whether the event is the SEP with the given coordinates
func (e Event) IsSep(row, col uint8) bool {
	return e.Type == EventSep && e.Row == row && e.Col == col
}
