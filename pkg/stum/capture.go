// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package stum

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Record is one captured event with its arrival time, serialized as the
// CBOR array [at, type, code, row, col, payload].
type Record struct {
	_       struct{} `cbor:",toarray"`
	At      uint32   // link clock, milliseconds
	Type    uint8
	Code    uint8
	Row     uint8
	Col     uint8
	Payload []byte
}

// NewRecord creates a record for an event
func NewRecord(at uint32, ev Event) Record {
	r := Record{
		At:   at,
		Type: uint8(ev.Type),
		Code: ev.Code,
		Row:  ev.Row,
		Col:  ev.Col,
	}
	if ev.Len > 0 {
		r.Payload = append([]byte(nil), ev.Payload()...)
	}
	return r
}

// Event rebuilds the captured event
func (r Record) Event() (Event, error) {
	if r.Type > uint8(EventTimeout) {
		return Event{}, fmt.Errorf("invalid event type %d", r.Type)
	}
	if len(r.Payload) > 4 {
		return Event{}, fmt.Errorf("payload too large: %d bytes (max 4)", len(r.Payload))
	}
	ev := Event{
		Type: EventType(r.Type),
		Code: r.Code,
		Row:  r.Row,
		Col:  r.Col,
	}
	ev.Len = uint8(copy(ev.Data[:], r.Payload))
	return ev, nil
}

// CaptureWriter streams records to a writer
type CaptureWriter struct {
	enc *cbor.Encoder
}

// NewCaptureWriter creates a capture writer
func NewCaptureWriter(w io.Writer) *CaptureWriter {
	return &CaptureWriter{enc: cbor.NewEncoder(w)}
}

// Write records one event
func (c *CaptureWriter) Write(at uint32, ev Event) error {
	if err := c.enc.Encode(NewRecord(at, ev)); err != nil {
		return fmt.Errorf("failed to encode capture record: %w", err)
	}
	return nil
}

// CaptureReader reads records back from a capture stream
type CaptureReader struct {
	dec *cbor.Decoder
}

// NewCaptureReader creates a capture reader
func NewCaptureReader(r io.Reader) *CaptureReader {
	return &CaptureReader{dec: cbor.NewDecoder(r)}
}

// Next returns the next record, or io.EOF at the end of the stream
func (c *CaptureReader) Next() (Record, error) {
	var r Record
	if err := c.dec.Decode(&r); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("failed to decode capture record: %w", err)
	}
	return r, nil
}
