// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package stum implements the STUM-M1 videotex wire protocol used by Minitel
// class terminals on their peripheral (DIN) serial port.
//
// The link runs at 1200 baud, 7 data bits with even parity. Incoming bytes are
// decoded into Events (characters, SEP key/status codes, ESC sequences and C0
// controls). Outgoing requests are built from single C0 controls plus a small
// set of multi-byte sequences for positioning, repetition and attributes.
package stum

// C0 control codes
const (
	NUL  = 0x00
	BS   = 0x08 // cursor left
	HT   = 0x09 // cursor right
	LF   = 0x0A // cursor down
	VT   = 0x0B // cursor up
	FF   = 0x0C // clear screen
	CR   = 0x0D
	SO   = 0x0E // shift out, G1 semi-graphics
	SI   = 0x0F // shift in, G0 alphanumeric
	CON  = 0x11 // cursor visible
	REP  = 0x12 // repeat previous glyph
	SEP  = 0x13
	COFF = 0x14 // cursor hidden
	CAN  = 0x18 // clear to end of line
	ESC  = 0x1B
	RS   = 0x1E // home
	US   = 0x1F // absolute position
	DEL  = 0x7F
)

// Link parameters
const (
	BaudRate  = 1200
	DataMask  = 0x7F
	SetOffset = 0x40 // base for position, repeat and attribute argument bytes
)

// Screen geometry
const (
	Rows = 24
	Cols = 40
)

// Repetition limits. One glyph followed by REP 0x40+n prints n+1 glyphs.
const (
	MaxRepeat    = 63
	MaxRun       = MaxRepeat + 1
	RepThreshold = 4
)

// ESC opcodes
const (
	EscPRO1 = 0x39
	EscPRO2 = 0x3A
	EscPRO3 = 0x3B

	EscForeground = 0x40 // + color
	EscFlash      = 0x48
	EscSteady     = 0x49
	EscNormalSize = 0x4C
	EscDoubleH    = 0x4D
	EscDoubleW    = 0x4E
	EscDoubleSize = 0x4F
	EscBackground = 0x50 // + color
	EscConceal    = 0x58
	EscReveal     = 0x5F
)

// PRO3 payload length (ctrl, receiver, transmitter)
const PRO3PayloadSize = 3

// SEP second bytes - keyboard function keys (row 4)
const (
	SepSend     = 0x41 // 4/1 ENVOI
	SepPrevious = 0x42 // 4/2 RETOUR
	SepRepeat   = 0x43 // 4/3 REPETITION
	SepGuide    = 0x44 // 4/4 GUIDE
	SepCancel   = 0x45 // 4/5 ANNULATION
	SepIndex    = 0x46 // 4/6 SOMMAIRE
	SepErase    = 0x47 // 4/7 CORRECTION
	SepNext     = 0x48 // 4/8 SUITE
	SepConnect  = 0x49 // 4/9 CONNEXION/FIN
	SepEcpOn    = 0x4A // 4/10
	SepEcpOff   = 0x4B // 4/11
	SepModemInv = 0x4C // 4/12
	SepEnvoi    = 0x4D // 4/13 modem return to normal, used as line submit
)

// SEP second bytes - status (row 5)
const (
	SepConnStatus = 0x50 // 5/0
	SepPTStatus   = 0x54 // 5/4 PT line change acknowledgement
)

// Acknowledgement coordinates for session changes (SEP 5/4)
const (
	AckRow = 5
	AckCol = 4
)

// Envoi coordinates (SEP 4/13)
const (
	EnvoiRow = 4
	EnvoiCol = 13
)

// PRO3 module codes
const (
	ModScreenTx   = 0x50
	ModKeyboardTx = 0x51
	ModModemTx    = 0x52
	ModSocketTx   = 0x53

	ModScreenRx   = 0x58
	ModKeyboardRx = 0x59
	ModModemRx    = 0x5A
	ModSocketRx   = 0x5B

	PRO3CtrlOff = 0x60
	PRO3CtrlOn  = 0x61
)

// Color is a foreground/background color index.
type Color uint8

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// Size selects the character size attribute.
type Size uint8

const (
	SizeNormal Size = iota
	SizeDoubleHeight
	SizeDoubleWidth
	SizeDouble
)

// Charset identifies the active character set.
type Charset uint8

const (
	G0 Charset = iota // alphanumeric
	G1                // semi-graphics mosaic
)

// Glyph codes at the edges of the mosaic table
const (
	GlyphBlank = 0x20 // all background
	GlyphFull  = 0x5F // all foreground, reserved position in the G1 table
)
