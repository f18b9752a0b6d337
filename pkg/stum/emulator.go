// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package stum

// ScreenCell is one character position as the emulated device shows it
type ScreenCell struct {
	Code    byte
	Graphic bool // Code is from the G1 mosaic set
	Fg      Color
}

type emuState uint8

const (
	emuGround emuState = iota
	emuUSRow
	emuUSCol
	emuEsc
	emuEscArgs
	emuRep
)

// Emulator decodes an output byte stream the way the terminal would and
// keeps the resulting screen. It follows the simplified cursor model used
// by the flush engine: printing past the last column wraps to the next row
// and the bottom row never scrolls.
type Emulator struct {
	rows, cols int
	cells      []ScreenCell
	status     []ScreenCell

	Row, Col int // 1-based; Row 0 is the status row
	Charset  Charset
	Fg, Bg   Color
	Flash    bool
	Conceal  bool
	Size     Size
	CursorOn bool

	// PRO3 commands seen, in order
	PRO3 [][3]byte

	state    emuState
	usRow    byte
	escArgs  []byte
	escWant  int
	last     ScreenCell
	haveLast bool

	saved struct {
		row, col int
		charset  Charset
		fg       Color
	}
}

// NewEmulator creates an emulator for a rows x cols screen, cleared
func NewEmulator(rows, cols int) *Emulator {
	e := &Emulator{
		rows:   rows,
		cols:   cols,
		cells:  make([]ScreenCell, rows*cols),
		status: make([]ScreenCell, cols),
	}
	e.clear()
	return e
}

func (e *Emulator) clear() {
	blank := ScreenCell{Code: GlyphBlank, Fg: White}
	for i := range e.cells {
		e.cells[i] = blank
	}
	e.Row, e.Col = 1, 1
	e.resetAttributes()
}

func (e *Emulator) resetAttributes() {
	e.Charset = G0
	e.Fg, e.Bg = White, Black
	e.Flash, e.Conceal = false, false
	e.Size = SizeNormal
}

// Cell returns the cell at a 1-based position
func (e *Emulator) Cell(row, col int) ScreenCell {
	if row < 1 || row > e.rows || col < 1 || col > e.cols {
		return ScreenCell{}
	}
	return e.cells[(row-1)*e.cols+col-1]
}

// StatusText returns the printable content of the status row
func (e *Emulator) StatusText() string {
	out := make([]byte, 0, e.cols)
	for _, c := range e.status {
		if c.Code == 0 {
			out = append(out, ' ')
		} else {
			out = append(out, c.Code)
		}
	}
	return string(out)
}

// Write feeds output bytes to the emulator. It never fails.
func (e *Emulator) Write(p []byte) (int, error) {
	for _, b := range p {
		e.WriteByte(b)
	}
	return len(p), nil
}

// WriteByte feeds one output byte
func (e *Emulator) WriteByte(b byte) error {
	b &= DataMask

	switch e.state {
	case emuUSRow:
		e.usRow = b
		e.state = emuUSCol
		return nil
	case emuUSCol:
		e.state = emuGround
		e.position(e.usRow, b)
		return nil
	case emuEsc:
		e.state = emuGround
		e.escape(b)
		return nil
	case emuEscArgs:
		e.escArgs = append(e.escArgs, b)
		if len(e.escArgs) >= e.escWant {
			e.state = emuGround
			if e.escWant == PRO3PayloadSize {
				e.PRO3 = append(e.PRO3, [3]byte{e.escArgs[0], e.escArgs[1], e.escArgs[2]})
			}
		}
		return nil
	case emuRep:
		e.state = emuGround
		if e.haveLast {
			for n := int(b) - SetOffset; n > 0; n-- {
				e.put(e.last)
			}
		}
		return nil
	}

	switch b {
	case FF:
		e.clear()
	case RS:
		e.Row, e.Col = 1, 1
		e.resetAttributes()
	case US:
		e.state = emuUSRow
	case ESC:
		e.state = emuEsc
	case REP:
		e.state = emuRep
	case SO:
		e.Charset = G1
	case SI:
		e.Charset = G0
	case CON:
		e.CursorOn = true
	case COFF:
		e.CursorOn = false
	case CR:
		e.Col = 1
	case LF:
		if e.Row == 0 {
			e.Row, e.Col = e.saved.row, e.saved.col
			e.Charset, e.Fg = e.saved.charset, e.saved.fg
		} else if e.Row < e.rows {
			e.Row++
		}
	case VT:
		if e.Row > 1 {
			e.Row--
		}
	case BS:
		if e.Col > 1 {
			e.Col--
		}
	case HT:
		e.advance()
	case CAN:
		e.clearLine()
	default:
		if b >= 0x20 {
			cell := ScreenCell{Code: b, Graphic: e.Charset == G1, Fg: e.Fg}
			e.last, e.haveLast = cell, true
			e.put(cell)
		}
	}
	return nil
}

func (e *Emulator) position(row, col byte) {
	if row == SetOffset {
		e.saved.row, e.saved.col = e.Row, e.Col
		e.saved.charset, e.saved.fg = e.Charset, e.Fg
		e.Row = 0
		e.Col = clamp(int(col&0x3F), 1, e.cols)
		e.resetAttributes()
		return
	}
	e.Row = clamp(int(row&0x3F), 1, e.rows)
	e.Col = clamp(int(col&0x3F), 1, e.cols)
	e.resetAttributes()
}

func (e *Emulator) escape(b byte) {
	switch {
	case b == EscPRO1, b == EscPRO2, b == EscPRO3:
		e.escArgs = e.escArgs[:0]
		e.escWant = int(b-EscPRO1) + 1
		e.state = emuEscArgs
	case b >= EscForeground && b <= EscForeground+7:
		e.Fg = Color(b - EscForeground)
	case b >= EscBackground && b <= EscBackground+7:
		e.Bg = Color(b - EscBackground)
	case b == EscFlash:
		e.Flash = true
	case b == EscSteady:
		e.Flash = false
	case b == EscConceal:
		e.Conceal = true
	case b == EscReveal:
		e.Conceal = false
	case b >= EscNormalSize && b <= EscDoubleSize:
		e.Size = Size(b - EscNormalSize)
	}
}

func (e *Emulator) put(c ScreenCell) {
	if e.Row == 0 {
		e.status[e.Col-1] = c
		if e.Col < e.cols {
			e.Col++
		}
		return
	}
	e.cells[(e.Row-1)*e.cols+e.Col-1] = c
	e.advance()
}

func (e *Emulator) advance() {
	e.Col++
	if e.Col > e.cols {
		e.Col = 1
		if e.Row < e.rows {
			e.Row++
		}
	}
}

func (e *Emulator) clearLine() {
	if e.Row == 0 {
		for i := e.Col - 1; i < e.cols; i++ {
			e.status[i] = ScreenCell{}
		}
		return
	}
	base := (e.Row - 1) * e.cols
	for i := e.Col - 1; i < e.cols; i++ {
		e.cells[base+i] = ScreenCell{Code: GlyphBlank, Fg: e.Fg}
	}
}
