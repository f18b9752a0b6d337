// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package gfx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func countPixels(s *Screen) int {
	n := 0
	w, h := s.PixelSize()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if s.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		expected       int
	}{
		{"horizontal", 2, 5, 12, 5, 11},
		{"vertical", 7, 1, 7, 20, 20},
		{"diagonal", 0, 0, 9, 9, 10},
		{"reversed", 9, 9, 0, 0, 10},
		{"single point", 4, 4, 4, 4, 1},
		{"clipped", -10, 3, 5, 3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(nil)
			s.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1, true)
			require.Equal(t, tt.expected, countPixels(s))
			if tt.x0 >= 0 {
				require.True(t, s.Pixel(tt.x0, tt.y0))
			}
			require.True(t, s.Pixel(tt.x1, tt.y1))
		})
	}
}

func TestDrawThickLine(t *testing.T) {
	s := NewScreen(nil)
	s.DrawThickLine(10, 10, 20, 10, 3, true)
	for x := 10; x <= 20; x++ {
		require.True(t, s.Pixel(x, 9))
		require.True(t, s.Pixel(x, 10))
		require.True(t, s.Pixel(x, 11))
	}
	require.Equal(t, 33, countPixels(s))

	// Mostly vertical lines thicken sideways
	s.Clear(false)
	s.DrawThickLine(10, 10, 10, 20, 3, true)
	require.True(t, s.Pixel(9, 15))
	require.True(t, s.Pixel(11, 15))
	require.False(t, s.Pixel(10, 9))

	s.Clear(false)
	s.DrawThickLine(0, 0, 5, 0, 1, true)
	require.Equal(t, 6, countPixels(s))
}

func TestDrawRect(t *testing.T) {
	s := NewScreen(nil)
	s.DrawRect(4, 4, 10, 6, false, true)
	require.Equal(t, 2*10+2*4, countPixels(s))
	require.False(t, s.Pixel(8, 7))

	s.DrawRect(4, 4, 10, 6, true, true)
	require.Equal(t, 60, countPixels(s))

	s.DrawRect(5, 5, 8, 4, true, false)
	require.Equal(t, 60-32, countPixels(s))

	s.Clear(false)
	s.DrawRect(4, 4, 0, 6, true, true)
	s.DrawRect(4, 4, 6, -1, true, true)
	require.Equal(t, 0, countPixels(s))
}

func TestDrawPolygon(t *testing.T) {
	square := []Point{{0, 0}, {9, 0}, {9, 9}, {0, 9}}

	s := NewScreen(nil)
	s.DrawPolygon(square, true, 1, true)
	require.Equal(t, 100, countPixels(s))
	require.False(t, s.Pixel(10, 5))

	s.Clear(false)
	s.DrawPolygon(square, false, 1, true)
	require.Equal(t, 36, countPixels(s))
	require.False(t, s.Pixel(5, 5))

	// A polyline is not closed
	s.Clear(false)
	s.DrawPolyline(square, 1, true)
	require.False(t, s.Pixel(0, 5))
	require.True(t, s.Pixel(9, 5))
}

func TestDrawPolygon_EvenOdd(t *testing.T) {
	// A pentagram leaves its center unfilled under the even-odd rule
	star := []Point{{30, 2}, {42, 38}, {12, 16}, {48, 16}, {18, 38}}
	s := NewScreen(nil)
	s.DrawPolygon(star, true, 1, true)
	require.False(t, s.Pixel(30, 22))
	// A point tip is filled
	require.True(t, s.Pixel(30, 8))
}

func TestDrawTriangle(t *testing.T) {
	s := NewScreen(nil)
	s.DrawTriangle(10, 10, 30, 10, 20, 30, true, 1, true)
	require.True(t, s.Pixel(20, 15))
	require.True(t, s.Pixel(20, 30))
	require.False(t, s.Pixel(11, 29))

	s.Clear(false)
	s.DrawTriangle(10, 10, 30, 10, 20, 30, false, 1, true)
	require.False(t, s.Pixel(20, 15))
	require.True(t, s.Pixel(20, 10))
}

func TestDrawCircle(t *testing.T) {
	s := NewScreen(nil)
	s.DrawCircle(20, 20, 5, false, 1, true)
	require.True(t, s.Pixel(25, 20))
	require.True(t, s.Pixel(20, 15))
	require.False(t, s.Pixel(20, 20))

	s.Clear(false)
	s.DrawCircle(20, 20, 3, true, 1, true)
	require.True(t, s.Pixel(20, 20))
	require.True(t, s.Pixel(23, 20))
	require.True(t, s.Pixel(20, 17))
	require.False(t, s.Pixel(23, 23))

	// Thick outlines grow inwards
	s.Clear(false)
	s.DrawCircle(20, 20, 5, false, 2, true)
	require.True(t, s.Pixel(25, 20))
	require.True(t, s.Pixel(24, 20))
	require.False(t, s.Pixel(23, 20))
	require.False(t, s.Pixel(20, 20))
	require.False(t, s.Pixel(26, 20))

	s.Clear(false)
	s.DrawCircle(20, 20, 0, false, 1, true)
	s.DrawCircle(30, 30, -1, true, 1, true)
	require.Equal(t, 1, countPixels(s))
}

func TestDrawCircle_Symmetric(t *testing.T) {
	s := NewScreen(nil)
	s.DrawCircle(30, 30, 9, false, 1, true)
	for dy := -9; dy <= 9; dy++ {
		for dx := -9; dx <= 9; dx++ {
			on := s.Pixel(30+dx, 30+dy)
			require.Equal(t, on, s.Pixel(30-dx, 30+dy))
			require.Equal(t, on, s.Pixel(30+dx, 30-dy))
			require.Equal(t, on, s.Pixel(30+dy, 30+dx))
		}
	}
}
