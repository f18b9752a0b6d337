// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package sprite draws animated 1-bit sprites onto a pixel canvas with
// integer scaling, flips and rotation. A sprite remembers where it was last
// drawn so each Draw erases the previous rendering first.
package sprite

import (
	"errors"
	"fmt"
)

// MaxScale is the largest integer magnification
const MaxScale = 6

// ErrInvalidSprite is returned for empty dimensions or short frame data
var ErrInvalidSprite = errors.New("invalid sprite")

// Canvas is a pixel surface, typically a *gfx.Screen
type Canvas interface {
	DrawPixel(x, y int, on bool)
	PixelSize() (w, h int)
}

// Transform places one rendering of a sprite
type Transform struct {
	X, Y  int // top-left pixel of the unrotated, scaled box
	Frame int
	Angle int // degrees in [0, 360)
	Scale int // 1..MaxScale
	FlipX bool
	FlipY bool
}

// Sprite is a set of equally sized frames plus the transform it is drawn
// with now and the one it was last drawn with
type Sprite struct {
	frames        []byte
	width, height int
	count         int

	cur, prev Transform
	visible   bool
	firstDraw bool
}

// New creates a sprite over frames, which holds frameCount frames of
// width*height bytes in row order. A zero byte is transparent. The slice is
// referenced, not copied.
func New(frames []byte, width, height, frameCount int) (*Sprite, error) {
	if width <= 0 || height <= 0 || frameCount <= 0 {
		return nil, fmt.Errorf("%w: %dx%d with %d frames", ErrInvalidSprite, width, height, frameCount)
	}
	if need := width * height * frameCount; len(frames) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrInvalidSprite, len(frames), need)
	}
	return &Sprite{
		frames:    frames,
		width:     width,
		height:    height,
		count:     frameCount,
		cur:       Transform{Scale: 1},
		prev:      Transform{Scale: 1},
		visible:   true,
		firstDraw: true,
	}, nil
}

// Size returns the unscaled frame size
func (s *Sprite) Size() (w, h int) { return s.width, s.height }

// FrameCount returns the number of frames
func (s *Sprite) FrameCount() int { return s.count }

// Transform returns the transform the next Draw will use
func (s *Sprite) Transform() Transform { return s.cur }

// Visible reports whether Draw renders the sprite
func (s *Sprite) Visible() bool { return s.visible }

func (s *Sprite) SetPosition(x, y int) {
	s.cur.X, s.cur.Y = x, y
}

// SetFrame selects a frame, clamped to the last one
func (s *Sprite) SetFrame(frame int) {
	s.cur.Frame = min(max(frame, 0), s.count-1)
}

// NextFrame advances to the next frame, wrapping to the first
func (s *Sprite) NextFrame() {
	s.cur.Frame = (s.cur.Frame + 1) % s.count
}

func (s *Sprite) SetAngle(deg int) {
	s.cur.Angle = normalizeAngle(deg)
}

func (s *Sprite) RotateBy(deg int) {
	s.cur.Angle = normalizeAngle(s.cur.Angle + deg)
}

// SetScale sets the magnification, clamped to 1..MaxScale
func (s *Sprite) SetScale(scale int) {
	s.cur.Scale = clampScale(scale)
}

func (s *Sprite) SetFlip(flipX, flipY bool) {
	s.cur.FlipX, s.cur.FlipY = flipX, flipY
}

// Show sets visibility. A hidden sprite is erased by its next Draw.
func (s *Sprite) Show(visible bool) {
	s.visible = visible
}

// Draw erases the previous rendering and renders the current transform.
// Drawing changes only the canvas bitmap; flushing is up to the caller.
func (s *Sprite) Draw(c Canvas) {
	if !s.visible {
		s.Erase(c)
		return
	}
	if !s.firstDraw {
		s.blit(c, s.prev, false)
	}
	s.blit(c, s.cur, true)
	s.prev = s.cur
	s.firstDraw = false
}

// Erase removes the last rendering, if any
func (s *Sprite) Erase(c Canvas) {
	if s.firstDraw {
		return
	}
	s.blit(c, s.prev, false)
	s.firstDraw = true
}

func normalizeAngle(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

func clampScale(scale int) int {
	return min(max(scale, 1), MaxScale)
}
