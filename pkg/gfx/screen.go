// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package gfx keeps a sub-pixel bitmap of the terminal screen and sends it
// to the device as G1 mosaic glyphs, either as a full redraw or as a
// minimal diff against what was last flushed.
//
// Each character cell holds 2x3 sub-pixels. Pixel (x, y) belongs to cell
// row y/3, column x/2, at bit (y%3)*2 + x%2 of the cell mask. A cell also
// carries the color of the last pixel turned on in it; turning pixels off
// never changes that color.
package gfx

import (
	"errors"
	"fmt"

	"github.com/Thermoquad/teletel/pkg/stum"
)

// ErrInvalidGeometry is returned for a screen larger than the device or empty
var ErrInvalidGeometry = errors.New("invalid screen geometry")

// Sink receives the output bytes, usually a *terminal.Terminal
type Sink interface {
	WriteRaw(p ...byte)
}

// FlushMode selects the flush strategy
type FlushMode uint8

const (
	OptimizedDiff FlushMode = iota // only cells changed since the last flush
	FullRedraw                     // every cell
)

// DrawMode selects when drawing reaches the device
type DrawMode uint8

const (
	BitmapOnly DrawMode = iota // drawing changes the bitmap, Flush sends it
	Immediate                  // each changed cell is sent as it is drawn
)

// invalidMask marks a last-flushed cell as unknown so it always differs
const invalidMask = 0xFF

const fullMask = 0x3F

// cursor is the flush engine's model of the device cursor (1-based)
type cursor struct {
	row, col int
	known    bool
}

// Screen is the bitmap and flush engine for one device. It mirrors the
// device's character set, color and cursor itself, so several screens can
// drive independent sinks.
type Screen struct {
	sink       Sink
	rows, cols int

	mask      []uint8
	color     []stum.Color
	lastMask  []uint8
	lastColor []stum.Color

	drawColor stum.Color
	drawMode  DrawMode

	// device mirror
	charset stum.Charset
	fg      stum.Color
	cur     cursor

	out  []byte
	sent uint64
}

// NewScreen creates a full 24x40 screen
func NewScreen(sink Sink) *Screen {
	s, _ := NewScreenSize(sink, stum.Rows, stum.Cols)
	return s
}

// NewScreenSize creates a screen covering the top-left rows x cols cells
func NewScreenSize(sink Sink, rows, cols int) (*Screen, error) {
	if rows < 1 || rows > stum.Rows || cols < 1 || cols > stum.Cols {
		return nil, fmt.Errorf("%w: %dx%d (max %dx%d)", ErrInvalidGeometry, rows, cols, stum.Rows, stum.Cols)
	}
	n := rows * cols
	s := &Screen{
		sink:      sink,
		rows:      rows,
		cols:      cols,
		mask:      make([]uint8, n),
		color:     make([]stum.Color, n),
		lastMask:  make([]uint8, n),
		lastColor: make([]stum.Color, n),
		drawColor: stum.White,
		fg:        stum.White,
	}
	for i := range s.color {
		s.color[i] = stum.White
		s.lastColor[i] = stum.White
	}
	s.Invalidate()
	return s, nil
}

// Rows returns the number of cell rows
func (s *Screen) Rows() int { return s.rows }

// Cols returns the number of cell columns
func (s *Screen) Cols() int { return s.cols }

// PixelSize returns the sub-pixel resolution
func (s *Screen) PixelSize() (w, h int) {
	return s.cols * 2, s.rows * 3
}

// SetDrawColor selects the color stamped on cells by pixels turned on
func (s *Screen) SetDrawColor(c stum.Color) { s.drawColor = c & 7 }

// DrawColor returns the current draw color
func (s *Screen) DrawColor() stum.Color { return s.drawColor }

// SetDrawMode selects bitmap-only or immediate drawing
func (s *Screen) SetDrawMode(m DrawMode) { s.drawMode = m }

// Mode returns the current draw mode
func (s *Screen) Mode() DrawMode { return s.drawMode }

// BytesSent returns the number of bytes written to the sink
func (s *Screen) BytesSent() uint64 { return s.sent }

// CellMask returns the sub-pixel mask of a cell (0-based)
func (s *Screen) CellMask(row, col int) uint8 {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return 0
	}
	return s.mask[row*s.cols+col]
}

// CellColor returns the stored color of a cell (0-based)
func (s *Screen) CellColor(row, col int) stum.Color {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return stum.White
	}
	return s.color[row*s.cols+col]
}

// Pixel reports whether a sub-pixel is on
func (s *Screen) Pixel(x, y int) bool {
	w, h := s.PixelSize()
	if x < 0 || x >= w || y < 0 || y >= h {
		return false
	}
	return s.mask[(y/3)*s.cols+x/2]&subBit(x, y) != 0
}

func subBit(x, y int) uint8 {
	return 1 << uint((y%3)*2+x%2)
}

// DrawPixel turns a sub-pixel on or off. On stamps the cell with the draw
// color. Coordinates outside the screen are ignored.
func (s *Screen) DrawPixel(x, y int, on bool) {
	w, h := s.PixelSize()
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	row, col := y/3, x/2
	k := row*s.cols + col
	if on {
		s.mask[k] |= subBit(x, y)
		s.color[k] = s.drawColor
	} else {
		s.mask[k] &^= subBit(x, y)
	}

	if s.drawMode == Immediate {
		s.updateCell(row, col)
		s.send()
	}
}

// Clear turns every pixel off and resets cell colors to white. With
// updateScreen the device is cleared too and the screen is considered in
// sync; otherwise the next diff erases what was drawn.
func (s *Screen) Clear(updateScreen bool) {
	for i := range s.mask {
		s.mask[i] = 0
		s.color[i] = stum.White
	}
	if !updateScreen {
		return
	}
	for i := range s.lastMask {
		s.lastMask[i] = 0
		s.lastColor[i] = stum.White
	}
	s.out = append(s.out, stum.FF, stum.RS)
	s.charset = stum.G0
	s.fg = stum.White
	s.cur = cursor{row: 1, col: 1, known: true}
	s.send()
}

// Invalidate marks every cell as unknown on the device, so the next diff
// repaints the whole screen, and forgets the device mirror
func (s *Screen) Invalidate() {
	for i := range s.lastMask {
		s.lastMask[i] = invalidMask
	}
	s.ForgetDevice()
}

// ForgetDevice drops the cursor and mode mirror. Call it after writing to
// the device other than through this screen.
func (s *Screen) ForgetDevice() {
	s.cur.known = false
	s.charset = stum.G0
	s.fg = stum.White
}

// Release returns the device to the G0 character set
func (s *Screen) Release() {
	if s.charset == stum.G1 {
		s.out = append(s.out, stum.SI)
		s.charset = stum.G0
	}
	s.send()
}

func (s *Screen) send() {
	if len(s.out) == 0 {
		return
	}
	if s.sink != nil {
		s.sink.WriteRaw(s.out...)
	}
	s.sent += uint64(len(s.out))
	s.out = s.out[:0]
}
