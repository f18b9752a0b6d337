// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package terminal

import (
	"fmt"

	"github.com/Thermoquad/teletel/pkg/link"
	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/golang/glog"
)

// WriteRaw sends bytes masked to 7 bits. Without a transport the bytes are
// dropped. Character set switches in p are tracked so the print helpers only
// shift when needed.
func (t *Terminal) WriteRaw(p ...byte) {
	if len(p) == 0 {
		return
	}
	out := t.scratch[:0]
	for _, b := range p {
		b &= stum.DataMask
		switch b {
		case stum.SO:
			t.charset = stum.G1
		case stum.SI, stum.US, stum.FF, stum.RS:
			t.charset = stum.G0
		}
		out = append(out, b)
	}
	t.scratch = out[:0]

	if t.tr == nil {
		return
	}
	n := link.SendAll(t.tr, out)
	t.stats.BytesOut += uint64(n)
	if n < len(out) {
		glog.V(2).Infof("transport accepted %d of %d bytes", n, len(out))
	}
}

func (t *Terminal) useCharset(cs stum.Charset) {
	if t.charset == cs {
		return
	}
	if cs == stum.G1 {
		t.WriteRaw(stum.SO)
	} else {
		t.WriteRaw(stum.SI)
	}
}

// Charset returns the character set the device is believed to be in
func (t *Terminal) Charset() stum.Charset {
	return t.charset
}

// ClearScreen clears the page and homes the cursor
func (t *Terminal) ClearScreen() {
	t.WriteRaw(stum.FF)
}

// Home moves the cursor to row 1 column 1
func (t *Terminal) Home() {
	t.WriteRaw(stum.RS)
}

// SetCursor moves the cursor to a 1-based position, clamped to the screen.
// The device returns to G0 with default attributes.
func (t *Terminal) SetCursor(row, col int) {
	t.WriteRaw(stum.AppendCursorTo(nil, row, col)...)
}

// MoveCursor steps the cursor relative to its position
func (t *Terminal) MoveCursor(dRow, dCol int) {
	var out []byte
	for ; dRow > 0; dRow-- {
		out = append(out, stum.LF)
	}
	for ; dRow < 0; dRow++ {
		out = append(out, stum.VT)
	}
	for ; dCol > 0; dCol-- {
		out = append(out, stum.HT)
	}
	for ; dCol < 0; dCol++ {
		out = append(out, stum.BS)
	}
	t.WriteRaw(out...)
}

// ShowCursor turns the visible cursor on or off
func (t *Terminal) ShowCursor(on bool) {
	if on {
		t.WriteRaw(stum.CON)
	} else {
		t.WriteRaw(stum.COFF)
	}
}

// ClearLine clears from the cursor to the end of the row
func (t *Terminal) ClearLine() {
	t.WriteRaw(stum.CAN)
}

// PutChar prints one alphanumeric character
func (t *Terminal) PutChar(c byte) {
	t.useCharset(stum.G0)
	t.WriteRaw(c)
}

// Print prints text in G0 with repeated characters compressed
func (t *Terminal) Print(s string) {
	if s == "" {
		return
	}
	t.useCharset(stum.G0)
	t.WriteRaw(stum.AppendText(nil, []byte(s))...)
}

// Println prints text followed by CR LF
func (t *Terminal) Println(s string) {
	t.Print(s + "\r\n")
}

// Printf prints formatted text
func (t *Terminal) Printf(format string, args ...any) {
	t.Print(fmt.Sprintf(format, args...))
}

// BeginSemiGraphics switches to the G1 mosaic set
func (t *Terminal) BeginSemiGraphics() {
	t.useCharset(stum.G1)
}

// EndSemiGraphics switches back to the G0 alphanumeric set
func (t *Terminal) EndSemiGraphics() {
	t.useCharset(stum.G0)
}

// PutSemiGraphic prints one mosaic glyph
func (t *Terminal) PutSemiGraphic(code byte) {
	t.useCharset(stum.G1)
	t.WriteRaw(code)
}

// PutSemiGraphicAt prints one mosaic glyph at a position and returns to G0
func (t *Terminal) PutSemiGraphicAt(row, col int, code byte) {
	t.SetCursor(row, col)
	t.PutSemiGraphic(code)
	t.EndSemiGraphics()
}

// PrintSemiGraphics prints mosaic glyphs with runs compressed
func (t *Terminal) PrintSemiGraphics(codes []byte) {
	if len(codes) == 0 {
		return
	}
	t.useCharset(stum.G1)
	t.WriteRaw(stum.AppendText(nil, codes)...)
}

// SetForeground selects the character (or mosaic) color
func (t *Terminal) SetForeground(c stum.Color) {
	t.WriteRaw(stum.AppendForeground(nil, c)...)
}

// SetBackground selects the background color
func (t *Terminal) SetBackground(c stum.Color) {
	t.WriteRaw(stum.AppendBackground(nil, c)...)
}

// SetFlash turns flashing on or off
func (t *Terminal) SetFlash(on bool) {
	t.WriteRaw(stum.AppendFlash(nil, on)...)
}

// SetConceal hides or reveals following characters
func (t *Terminal) SetConceal(on bool) {
	t.WriteRaw(stum.AppendConceal(nil, on)...)
}

// SetSize selects the character size
func (t *Terminal) SetSize(s stum.Size) {
	t.WriteRaw(stum.AppendSize(nil, s)...)
}

// WriteStatus writes text on the status row (row 0) starting at col. The
// device restores the previous position and character set afterwards.
func (t *Terminal) WriteStatus(col int, text string) {
	saved := t.charset
	out := stum.AppendStatusRow(nil, col)
	out = stum.AppendText(out, []byte(text))
	out = append(out, stum.LF)
	t.WriteRaw(out...)
	t.charset = saved
}
