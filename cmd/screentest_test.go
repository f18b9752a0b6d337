// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"testing"

	"github.com/Thermoquad/teletel/pkg/gfx"
	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/stretchr/testify/require"
)

func TestDrawTestPattern(t *testing.T) {
	t.Run("bars", func(t *testing.T) {
		s := gfx.NewScreen(nil)
		require.True(t, drawTestPattern(s, "bars"))
		for c := 0; c < 8; c++ {
			require.Equal(t, uint8(0x3F), s.CellMask(0, c*5), "bar %d", c)
			require.Equal(t, stum.Color(c), s.CellColor(0, c*5), "bar %d", c)
		}
	})

	t.Run("shapes", func(t *testing.T) {
		s := gfx.NewScreen(nil)
		require.True(t, drawTestPattern(s, "shapes"))
		_, h := s.PixelSize()

		// Every polygon vertex lies on its outline
		for _, p := range []gfx.Point{
			{X: 8, Y: h - 20},
			{X: 20, Y: h - 30},
			{X: 32, Y: h - 20},
			{X: 26, Y: h - 8},
			{X: 14, Y: h - 8},
		} {
			require.True(t, s.Pixel(p.X, p.Y), "vertex %v", p)
			require.Equal(t, stum.Red, s.CellColor(p.Y/3, p.X/2), "vertex %v", p)
		}
	})

	t.Run("glyphs", func(t *testing.T) {
		s := gfx.NewScreen(nil)
		require.True(t, drawTestPattern(s, "glyphs"))
		require.Equal(t, uint8(0), s.CellMask(2, 4))
		require.Equal(t, uint8(1), s.CellMask(2, 6))
		require.Equal(t, uint8(63), s.CellMask(8, 34))
	})

	t.Run("unknown", func(t *testing.T) {
		s := gfx.NewScreen(nil)
		require.False(t, drawTestPattern(s, "plaid"))
	})
}
