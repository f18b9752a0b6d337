// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package gfx

import (
	"math"
	"sort"
)

// Point is a sub-pixel coordinate
type Point struct {
	X, Y int
}

// DrawLine draws a one pixel line with Bresenham's algorithm
func (s *Screen) DrawLine(x0, y0, x1, y1 int, on bool) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		s.DrawPixel(x0, y0, on)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawThickLine draws parallel lines offset across the main axis.
// A thickness of one or less is a plain line.
func (s *Screen) DrawThickLine(x0, y0, x1, y1, thickness int, on bool) {
	if thickness <= 1 {
		s.DrawLine(x0, y0, x1, y1, on)
		return
	}
	half := thickness / 2
	// Mostly horizontal lines are thickened vertically and vice versa
	vertical := abs(x1-x0) >= abs(y1-y0)
	for o := -half; o <= half; o++ {
		if vertical {
			s.DrawLine(x0, y0+o, x1, y1+o, on)
		} else {
			s.DrawLine(x0+o, y0, x1+o, y1, on)
		}
	}
}

// DrawRect draws a rectangle with its top-left corner at (x, y)
func (s *Screen) DrawRect(x, y, w, h int, filled, on bool) {
	if w <= 0 || h <= 0 {
		return
	}
	x1, y1 := x+w-1, y+h-1
	if filled {
		for yy := y; yy <= y1; yy++ {
			s.DrawLine(x, yy, x1, yy, on)
		}
		return
	}
	s.DrawLine(x, y, x1, y, on)
	s.DrawLine(x, y1, x1, y1, on)
	s.DrawLine(x, y, x, y1, on)
	s.DrawLine(x1, y, x1, y1, on)
}

// DrawPolyline joins consecutive points
func (s *Screen) DrawPolyline(pts []Point, thickness int, on bool) {
	if len(pts) == 1 {
		s.DrawPixel(pts[0].X, pts[0].Y, on)
		return
	}
	for i := 1; i < len(pts); i++ {
		s.DrawThickLine(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, thickness, on)
	}
}

// DrawPolygon draws a closed polygon. Filled polygons use the even-odd rule
// and include their outline.
func (s *Screen) DrawPolygon(pts []Point, filled bool, thickness int, on bool) {
	if len(pts) == 0 {
		return
	}
	if filled && len(pts) >= 3 {
		s.fillPolygon(pts, on)
	}
	s.DrawPolyline(pts, thickness, on)
	if len(pts) > 2 {
		last := pts[len(pts)-1]
		s.DrawThickLine(last.X, last.Y, pts[0].X, pts[0].Y, thickness, on)
	}
}

func (s *Screen) fillPolygon(pts []Point, on bool) {
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	_, h := s.PixelSize()
	minY = max(minY, 0)
	maxY = min(maxY, h-1)

	xs := make([]float64, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		// sample the scanline at the pixel center
		fy := float64(y) + 0.5
		xs = xs[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			ay, by := float64(a.Y), float64(b.Y)
			if (ay <= fy) == (by <= fy) {
				continue
			}
			t := (fy - ay) / (by - ay)
			xs = append(xs, float64(a.X)+t*float64(b.X-a.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			from := int(math.Ceil(xs[i] - 0.5))
			to := int(math.Floor(xs[i+1] - 0.5))
			if from <= to {
				s.DrawLine(from, y, to, y, on)
			}
		}
	}
}

// DrawCircle draws a circle of the given radius. Outlines thicker than one
// pixel grow inwards.
func (s *Screen) DrawCircle(cx, cy, radius int, filled bool, thickness int, on bool) {
	switch {
	case radius < 0:
		return
	case radius == 0:
		s.DrawPixel(cx, cy, on)
		return
	case filled:
		s.fillAnnulus(cx, cy, radius, -1, on)
	case thickness <= 1:
		s.circleOutline(cx, cy, radius, on)
	default:
		s.fillAnnulus(cx, cy, radius, radius-thickness, on)
	}
}

// circleOutline is the midpoint circle algorithm
func (s *Screen) circleOutline(cx, cy, r int, on bool) {
	x, y := r, 0
	d := 1 - r
	for x >= y {
		s.DrawPixel(cx+x, cy+y, on)
		s.DrawPixel(cx+y, cy+x, on)
		s.DrawPixel(cx-y, cy+x, on)
		s.DrawPixel(cx-x, cy+y, on)
		s.DrawPixel(cx-x, cy-y, on)
		s.DrawPixel(cx-y, cy-x, on)
		s.DrawPixel(cx+y, cy-x, on)
		s.DrawPixel(cx+x, cy-y, on)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// fillAnnulus fills the pixels with inner < distance <= outer. A negative
// inner radius fills the whole disc.
func (s *Screen) fillAnnulus(cx, cy, outer, inner int, on bool) {
	for dy := -outer; dy <= outer; dy++ {
		xo := isqrt(outer*outer - dy*dy)
		if inner < 0 || abs(dy) > inner {
			s.DrawLine(cx-xo, cy+dy, cx+xo, cy+dy, on)
			continue
		}
		xi := isqrt(inner*inner - dy*dy)
		if xi+1 <= xo {
			s.DrawLine(cx-xo, cy+dy, cx-xi-1, cy+dy, on)
			s.DrawLine(cx+xi+1, cy+dy, cx+xo, cy+dy, on)
		}
	}
}

// DrawTriangle draws a triangle through three points
func (s *Screen) DrawTriangle(x1, y1, x2, y2, x3, y3 int, filled bool, thickness int, on bool) {
	s.DrawPolygon([]Point{{x1, y1}, {x2, y2}, {x3, y3}}, filled, thickness, on)
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
