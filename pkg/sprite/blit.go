// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package sprite

import "math"

// blit sets or clears the canvas pixels under the opaque sprite pixels of
// one transform
func (s *Sprite) blit(c Canvas, t Transform, on bool) {
	if c == nil {
		return
	}
	scale := clampScale(t.Scale)
	frame := t.Frame % s.count
	if frame < 0 {
		frame += s.count
	}
	base := s.frames[frame*s.width*s.height:]
	angle := normalizeAngle(t.Angle)

	cw, ch := c.PixelSize()
	outW, outH := s.width*scale, s.height*scale

	opaque := func(sx, sy int) bool {
		if t.FlipX {
			sx = s.width - 1 - sx
		}
		if t.FlipY {
			sy = s.height - 1 - sy
		}
		if sx < 0 || sy < 0 || sx >= s.width || sy >= s.height {
			return false
		}
		return base[sy*s.width+sx] != 0
	}

	if angle == 0 {
		for oy := 0; oy < outH; oy++ {
			y := t.Y + oy
			if y < 0 || y >= ch {
				continue
			}
			for ox := 0; ox < outW; ox++ {
				x := t.X + ox
				if x < 0 || x >= cw {
					continue
				}
				if opaque(ox/scale, oy/scale) {
					c.DrawPixel(x, y, on)
				}
			}
		}
		return
	}

	// Rotate about the center of the scaled box, sampling each canvas pixel
	// in the bounding circle through the inverse rotation
	rad := float64(angle) * math.Pi / 180
	ca, sa := math.Cos(rad), math.Sin(rad)
	cx, cy := float64(outW)/2, float64(outH)/2
	centerX, centerY := float64(t.X)+cx, float64(t.Y)+cy
	r := math.Sqrt(cx*cx + cy*cy)

	minX := max(int(math.Floor(centerX-r)), 0)
	maxX := min(int(math.Ceil(centerX+r)), cw-1)
	minY := max(int(math.Floor(centerY-r)), 0)
	maxY := min(int(math.Ceil(centerY+r)), ch-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) - centerX
			dy := float64(y) - centerY
			ox := ca*dx + sa*dy + cx
			oy := -sa*dx + ca*dy + cy
			if ox < 0 || oy < 0 || ox >= float64(outW) || oy >= float64(outH) {
				continue
			}
			sx := int(math.Floor(ox / float64(scale)))
			sy := int(math.Floor(oy / float64(scale)))
			if opaque(sx, sy) {
				c.DrawPixel(x, y, on)
			}
		}
	}
}
