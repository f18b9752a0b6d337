// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package stum

// Outcome describes what one parser step did with its byte
type Outcome uint8

const (
	OutcomeNone      Outcome = iota // absorbed into a pending sequence
	OutcomeEvent                    // an event was completed
	OutcomeConsumed                 // line-editing control swallowed
	OutcomeMalformed                // unrecognized ESC continuation discarded
)

type parseKind uint8

const (
	stateIdle parseKind = iota
	stateSepSecond
	stateGotEsc
	stateEscPayload
)

// parserState is the whole recognizer state. It is a plain value so that
// step can be tested transition by transition.
type parserState struct {
	kind      parseKind
	count     uint8
	collected [PRO3PayloadSize]byte
}

// step is the pure transition function of the input recognizer
func step(s parserState, b byte) (parserState, Event, Outcome) {
	b &= DataMask

	switch s.kind {
	case stateSepSecond:
		return parserState{}, SepEvent(b), OutcomeEvent

	case stateGotEsc:
		if b == EscPRO3 {
			return parserState{kind: stateEscPayload}, Event{}, OutcomeNone
		}
		if b >= 0x40 {
			return parserState{}, EscEvent(b), OutcomeEvent
		}
		return parserState{}, Event{}, OutcomeMalformed

	case stateEscPayload:
		s.collected[s.count] = b
		s.count++
		if int(s.count) < PRO3PayloadSize {
			return s, Event{}, OutcomeNone
		}
		return parserState{}, EscEvent(EscPRO3, s.collected[:]...), OutcomeEvent
	}

	// Idle
	switch b {
	case HT, VT, RS, US, CAN, DEL:
		return s, Event{}, OutcomeConsumed
	case ESC:
		return parserState{kind: stateGotEsc}, Event{}, OutcomeNone
	case SEP:
		return parserState{kind: stateSepSecond}, Event{}, OutcomeNone
	case CR, LF, BS:
		return s, CharEvent(b), OutcomeEvent
	}
	if b < 0x20 {
		return s, ControlEvent(b), OutcomeEvent
	}
	return s, CharEvent(b), OutcomeEvent
}

// Parser recognizes input events one byte at a time. It never blocks and
// never reports errors: malformed continuations return it to idle.
type Parser struct {
	state parserState
}

// NewParser creates an idle parser
func NewParser() *Parser {
	return &Parser{}
}

// Feed consumes one byte. The event is valid only when the outcome is
// OutcomeEvent.
func (p *Parser) Feed(b byte) (Event, Outcome) {
	var ev Event
	var out Outcome
	p.state, ev, out = step(p.state, b)
	return ev, out
}

// Reset drops any partially received sequence
func (p *Parser) Reset() {
	p.state = parserState{}
}

// Idle reports whether no sequence is in progress
func (p *Parser) Idle() bool {
	return p.state.kind == stateIdle
}
