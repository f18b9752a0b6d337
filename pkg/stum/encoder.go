// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package stum

// Encoders append output sequences to dst and return the extended slice,
// in the manner of strconv.Append*. None of them allocate when dst has room.

// clamp limits v to [lo, hi]
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AppendCursorTo appends an absolute position command (1-based row/col).
// The device resets its serial attributes and returns to G0 on receipt.
func AppendCursorTo(dst []byte, row, col int) []byte {
	row = clamp(row, 1, Rows)
	col = clamp(col, 1, Cols)
	return append(dst, US, SetOffset|byte(row), SetOffset|byte(col))
}

// AppendStatusRow appends the command addressing row 0 at the given column.
// Leave the status row with LF to restore the previous position and set.
func AppendStatusRow(dst []byte, col int) []byte {
	col = clamp(col, 1, Cols)
	return append(dst, US, SetOffset, SetOffset|byte(col))
}

// AppendRepeat appends a REP directive repeating the previous glyph n more
// times. n is clamped to [1, MaxRepeat].
func AppendRepeat(dst []byte, n int) []byte {
	n = clamp(n, 1, MaxRepeat)
	return append(dst, REP, SetOffset+byte(n))
}

// AppendForeground appends a foreground color attribute
func AppendForeground(dst []byte, c Color) []byte {
	return append(dst, ESC, EscForeground+byte(c&7))
}

// AppendBackground appends a background color attribute
func AppendBackground(dst []byte, c Color) []byte {
	return append(dst, ESC, EscBackground+byte(c&7))
}

// AppendFlash appends the flashing or steady attribute
func AppendFlash(dst []byte, on bool) []byte {
	if on {
		return append(dst, ESC, EscFlash)
	}
	return append(dst, ESC, EscSteady)
}

// AppendConceal appends the conceal or reveal attribute
func AppendConceal(dst []byte, on bool) []byte {
	if on {
		return append(dst, ESC, EscConceal)
	}
	return append(dst, ESC, EscReveal)
}

// AppendSize appends a character size attribute
func AppendSize(dst []byte, s Size) []byte {
	switch s {
	case SizeDoubleHeight:
		return append(dst, ESC, EscDoubleH)
	case SizeDoubleWidth:
		return append(dst, ESC, EscDoubleW)
	case SizeDouble:
		return append(dst, ESC, EscDoubleSize)
	}
	return append(dst, ESC, EscNormalSize)
}

// AppendPRO3 appends a PRO3 routing command
func AppendPRO3(dst []byte, ctrl, rx, tx byte) []byte {
	return append(dst, ESC, EscPRO3, ctrl, rx, tx)
}

// AppendRun appends n copies of glyph using REP compression. Runs are split
// into chunks of at most MaxRun; a chunk of RepThreshold or more becomes the
// glyph followed by a REP directive, shorter chunks are sent literally.
func AppendRun(dst []byte, glyph byte, n int) []byte {
	for n > 0 {
		chunk := n
		if chunk > MaxRun {
			chunk = MaxRun
		}
		if chunk < RepThreshold {
			for i := 0; i < chunk; i++ {
				dst = append(dst, glyph)
			}
		} else {
			dst = append(dst, glyph)
			dst = AppendRepeat(dst, chunk-1)
		}
		n -= chunk
	}
	return dst
}

// AppendText appends s masked to 7 bits with every run of identical
// printable bytes compressed. Control bytes are copied as they are since REP
// only repeats glyphs.
func AppendText(dst []byte, s []byte) []byte {
	for i := 0; i < len(s); {
		c := s[i] & DataMask
		if c < 0x20 {
			dst = append(dst, c)
			i++
			continue
		}
		j := i + 1
		for j < len(s) && s[j]&DataMask == c {
			j++
		}
		dst = AppendRun(dst, c, j-i)
		i = j
	}
	return dst
}

// RunCost returns the number of bytes AppendRun would emit
func RunCost(n int) int {
	cost := 0
	for n > 0 {
		chunk := n
		if chunk > MaxRun {
			chunk = MaxRun
		}
		if chunk < RepThreshold {
			cost += chunk
		} else {
			cost += 3
		}
		n -= chunk
	}
	return cost
}
