// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package stum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type parserTestStep struct {
	in      []byte
	events  []Event
	outcome []Outcome // outcome of the last byte, optional
}

type parserTestSequenceBuilder struct {
	seq []parserTestStep
}

func parserTestSequences() *parserTestSequenceBuilder {
	return &parserTestSequenceBuilder{}
}

func (b *parserTestSequenceBuilder) on(in ...byte) *parserTestSequenceBuilder {
	b.seq = append(b.seq, parserTestStep{in: in})
	return b
}

func (b *parserTestSequenceBuilder) expect(events ...Event) *parserTestSequenceBuilder {
	b.seq[len(b.seq)-1].events = events
	return b
}

func (b *parserTestSequenceBuilder) last(out Outcome) *parserTestSequenceBuilder {
	b.seq[len(b.seq)-1].outcome = []Outcome{out}
	return b
}

func (b *parserTestSequenceBuilder) build() []parserTestStep {
	return b.seq
}

func TestParser(t *testing.T) {
	testCases := []struct {
		name string
		seq  []parserTestStep
	}{
		{
			name: "printable chars",
			seq: parserTestSequences().
				on('A', 'z', ' ', '~').expect(CharEvent('A'), CharEvent('z'), CharEvent(' '), CharEvent('~')).
				build(),
		},
		{
			name: "parity bit stripped",
			seq: parserTestSequences().
				on(0xC1).expect(CharEvent('A')).
				on(0x93, 0xD4).expect(SepEvent(0x54)).
				build(),
		},
		{
			name: "line endings surface as chars",
			seq: parserTestSequences().
				on(CR, LF, BS).expect(CharEvent(CR), CharEvent(LF), CharEvent(BS)).
				build(),
		},
		{
			name: "line editing controls consumed",
			seq: parserTestSequences().
				on(HT).expect().last(OutcomeConsumed).
				on(VT, RS, US, CAN).expect().last(OutcomeConsumed).
				on(DEL).expect().last(OutcomeConsumed).
				build(),
		},
		{
			name: "other controls",
			seq: parserTestSequences().
				on(NUL, 0x07, FF, SO, SI).
				expect(ControlEvent(NUL), ControlEvent(0x07), ControlEvent(FF), ControlEvent(SO), ControlEvent(SI)).
				build(),
		},
		{
			name: "sep key",
			seq: parserTestSequences().
				on(SEP).expect().last(OutcomeNone).
				on(SepEnvoi).expect(Event{Type: EventSep, Code: 0x4D, Row: 4, Col: 13}).
				build(),
		},
		{
			name: "sep second byte is never reinterpreted",
			seq: parserTestSequences().
				on(SEP, ESC).expect(Event{Type: EventSep, Code: ESC, Row: 1, Col: 11}).
				on('a').expect(CharEvent('a')).
				build(),
		},
		{
			name: "single byte esc",
			seq: parserTestSequences().
				on(ESC, 0x61).expect(EscEvent(0x61)).
				on(ESC, 0x40).expect(EscEvent(0x40)).
				on(ESC, 0x7F).expect(EscEvent(0x7F)).
				build(),
		},
		{
			name: "pro3 acknowledgement",
			seq: parserTestSequences().
				on(ESC, EscPRO3, PRO3CtrlOn, ModSocketRx).expect().last(OutcomeNone).
				on(ModKeyboardTx).expect(EscEvent(EscPRO3, PRO3CtrlOn, ModSocketRx, ModKeyboardTx)).
				build(),
		},
		{
			name: "pro3 payload takes any byte",
			seq: parserTestSequences().
				on(ESC, EscPRO3, SEP, ESC, 0x01).expect(EscEvent(EscPRO3, SEP, ESC, 0x01)).
				build(),
		},
		{
			name: "malformed esc discarded",
			seq: parserTestSequences().
				on(ESC, 0x20).expect().last(OutcomeMalformed).
				on('B').expect(CharEvent('B')).
				on(ESC, ESC).expect().last(OutcomeMalformed).
				on(ESC, 0x41).expect(EscEvent(0x41)).
				build(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParser()
			for _, s := range tc.seq {
				var events []Event
				var out Outcome
				for _, b := range s.in {
					var ev Event
					ev, out = p.Feed(b)
					if out == OutcomeEvent {
						events = append(events, ev)
					}
				}
				if len(s.events) == 0 {
					require.Empty(t, events, "input % X", s.in)
				} else {
					require.Equal(t, s.events, events, "input % X", s.in)
				}
				if len(s.outcome) > 0 {
					require.Equal(t, s.outcome[0], out, "input % X", s.in)
				}
			}
			require.True(t, p.Idle())
		})
	}
}

func TestStep_EveryTransition(t *testing.T) {
	idle := parserState{}

	s, _, out := step(idle, ESC)
	require.Equal(t, stateGotEsc, s.kind)
	require.Equal(t, OutcomeNone, out)

	s, _, out = step(idle, SEP)
	require.Equal(t, stateSepSecond, s.kind)
	require.Equal(t, OutcomeNone, out)

	s, _, _ = step(parserState{kind: stateGotEsc}, EscPRO3)
	require.Equal(t, stateEscPayload, s.kind)
	require.Equal(t, uint8(0), s.count)

	s, _, _ = step(s, 'x')
	require.Equal(t, stateEscPayload, s.kind)
	require.Equal(t, uint8(1), s.count)

	// step is pure: the input state value is unchanged
	before := parserState{kind: stateEscPayload, count: 1}
	_, _, _ = step(before, 'y')
	require.Equal(t, uint8(1), before.count)
}

func TestParser_SepCoordinates(t *testing.T) {
	for b := 0; b < 0x80; b++ {
		p := NewParser()
		_, out := p.Feed(SEP)
		require.Equal(t, OutcomeNone, out)
		ev, out := p.Feed(byte(b))
		require.Equal(t, OutcomeEvent, out)
		require.Equal(t, EventSep, ev.Type)
		require.Equal(t, uint8(b>>4)&7, ev.Row, "byte 0x%02X", b)
		require.Equal(t, uint8(b)&0x0F, ev.Col, "byte 0x%02X", b)
	}
}

func TestParser_Reset(t *testing.T) {
	p := NewParser()
	p.Feed(ESC)
	p.Feed(EscPRO3)
	require.False(t, p.Idle())
	p.Reset()
	require.True(t, p.Idle())
	ev, out := p.Feed('Q')
	require.Equal(t, OutcomeEvent, out)
	require.Equal(t, CharEvent('Q'), ev)
}
