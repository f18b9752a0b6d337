// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package gfx

import (
	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/golang/glog"
)

// absoluteCost is the price of US row col plus the SO needed after it
const absoluteCost = 4

// MaskToGlyph returns the G1 code showing a 6-bit sub-pixel mask. The all-on
// mask uses 0x5F, which the device reserves for the full block; the other
// masks map onto 0x20..0x3F and 0x60..0x7E.
func MaskToGlyph(mask uint8) byte {
	mask &= fullMask
	switch {
	case mask == 0:
		return stum.GlyphBlank
	case mask == fullMask:
		return stum.GlyphFull
	case mask < 0x20:
		return 0x20 + mask
	}
	return 0x60 + (mask - 0x20)
}

// Flush sends the bitmap to the device and records it as last flushed
func (s *Screen) Flush(mode FlushMode) {
	s.cur.known = false

	if mode == FullRedraw {
		s.fullRedraw()
	} else {
		s.diff()
	}

	if s.charset == stum.G1 {
		s.out = append(s.out, stum.SI)
		s.charset = stum.G0
	}

	copy(s.lastMask, s.mask)
	copy(s.lastColor, s.color)

	n := len(s.out)
	s.send()
	glog.V(2).Infof("flush mode=%d sent %d bytes", mode, n)
}

func (s *Screen) fullRedraw() {
	for row := 0; row < s.rows; row++ {
		s.absolute(row+1, 1)
		s.emitRuns(row, 0, s.cols)
	}
}

func (s *Screen) diff() {
	for row := 0; row < s.rows; row++ {
		col := 0
		for col < s.cols {
			if !s.changed(row*s.cols + col) {
				col++
				continue
			}
			start := col
			for col < s.cols && s.changed(row*s.cols+col) {
				col++
			}
			s.moveTo(row+1, start+1)
			s.emitRuns(row, start, col)
		}
	}
}

func (s *Screen) changed(k int) bool {
	return s.mask[k] != s.lastMask[k] || s.color[k] != s.lastColor[k]
}

// emitRuns sends cells [from, to) of a row, the cursor being at from
func (s *Screen) emitRuns(row, from, to int) {
	base := row * s.cols
	for col := from; col < to; {
		k := base + col
		glyph, color := MaskToGlyph(s.mask[k]), s.color[k]
		end := col + 1
		for end < to && MaskToGlyph(s.mask[base+end]) == glyph && s.color[base+end] == color {
			end++
		}
		s.emitRun(glyph, color, end-col)
		col = end
	}
}

func (s *Screen) emitRun(glyph byte, color stum.Color, n int) {
	if s.charset != stum.G1 {
		s.out = append(s.out, stum.SO)
		s.charset = stum.G1
	}
	if color != s.fg {
		s.out = stum.AppendForeground(s.out, color)
		s.fg = color
	}
	s.out = stum.AppendRun(s.out, glyph, n)
	s.advance(n)
}

// updateCell pushes a single cell in immediate mode
func (s *Screen) updateCell(row, col int) {
	k := row*s.cols + col
	if !s.changed(k) {
		return
	}
	s.moveTo(row+1, col+1)
	s.emitRun(MaskToGlyph(s.mask[k]), s.color[k], 1)
	s.lastMask[k] = s.mask[k]
	s.lastColor[k] = s.color[k]
}

// moveTo relocates the cursor by relative steps when that costs no more than
// an absolute position command
func (s *Screen) moveTo(row, col int) {
	if s.cur.known {
		dr, dc := row-s.cur.row, col-s.cur.col
		if abs(dr)+abs(dc) <= absoluteCost {
			for ; dr > 0; dr-- {
				s.out = append(s.out, stum.LF)
			}
			for ; dr < 0; dr++ {
				s.out = append(s.out, stum.VT)
			}
			for ; dc > 0; dc-- {
				s.out = append(s.out, stum.HT)
			}
			for ; dc < 0; dc++ {
				s.out = append(s.out, stum.BS)
			}
			s.cur.row, s.cur.col = row, col
			return
		}
	}
	s.absolute(row, col)
}

// absolute positions the cursor; the device resets to G0 and white
func (s *Screen) absolute(row, col int) {
	s.out = stum.AppendCursorTo(s.out, row, col)
	s.charset = stum.G0
	s.fg = stum.White
	s.cur = cursor{row: row, col: col, known: true}
}

// advance moves the cursor model past n printed glyphs. Printing past the
// last device column wraps to the next row; the bottom row does not scroll.
func (s *Screen) advance(n int) {
	for ; n > 0; n-- {
		s.cur.col++
		if s.cur.col > stum.Cols {
			s.cur.col = 1
			if s.cur.row < stum.Rows {
				s.cur.row++
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
