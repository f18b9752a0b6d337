// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/teletel/pkg/gfx"
	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/spf13/cobra"
)

var (
	screenTestPattern string
	screenTestDelay   time.Duration
)

var screenTestCmd = &cobra.Command{
	Use:   "screentest",
	Short: "Draw a semi-graphics test pattern",
	Long: `Draw a test pattern with the mosaic graphics engine, send it as a full
redraw, then change part of it and send only the difference.

Patterns:
  bars    - the eight foreground colors as vertical bars
  shapes  - lines, rectangles, circles, a triangle and a polygon
  glyphs  - every mosaic sub-pixel combination, one per cell

The byte count of each flush is reported, showing what the diff saves.

Exit codes:
  0 - Pattern sent
  1 - Unknown pattern
  2 - Connection error`,
	RunE: runScreenTest,
}

func init() {
	rootCmd.AddCommand(screenTestCmd)
	screenTestCmd.Flags().StringVar(&screenTestPattern, "pattern", "shapes", "Test pattern (bars, shapes, glyphs)")
	screenTestCmd.Flags().DurationVar(&screenTestDelay, "delay", 2*time.Second, "Pause between the redraw and the diff")
}

// drawTestPattern draws a named pattern, reporting false for an unknown name
func drawTestPattern(s *gfx.Screen, pattern string) bool {
	w, h := s.PixelSize()

	switch pattern {
	case "bars":
		bar := w / 8
		for c := 0; c < 8; c++ {
			s.SetDrawColor(stum.Color(c))
			s.DrawRect(c*bar, 0, bar, h, true, true)
		}

	case "shapes":
		s.SetDrawColor(stum.White)
		s.DrawRect(0, 0, w, h, false, true)
		s.SetDrawColor(stum.Yellow)
		s.DrawThickLine(4, 4, w-5, h-5, 3, true)
		s.SetDrawColor(stum.Cyan)
		s.DrawCircle(w/4, h/2, 14, false, 2, true)
		s.SetDrawColor(stum.Green)
		s.DrawCircle(3*w/4, h/2, 10, true, 1, true)
		s.SetDrawColor(stum.Magenta)
		s.DrawTriangle(w/2, 6, w/2-12, 26, w/2+12, 26, true, 1, true)
		s.SetDrawColor(stum.Red)
		s.DrawPolygon([]gfx.Point{
			{X: 8, Y: h - 20},
			{X: 20, Y: h - 30},
			{X: 32, Y: h - 20},
			{X: 26, Y: h - 8},
			{X: 14, Y: h - 8},
		}, false, 1, true)

	case "glyphs":
		for m := 0; m < 64; m++ {
			row, col := 2+(m/16)*2, 4+(m%16)*2
			s.SetDrawColor(stum.Color(1 + m%7))
			for bit := 0; bit < 6; bit++ {
				if m&(1<<bit) != 0 {
					s.DrawPixel(col*2+bit%2, row*3+bit/2, true)
				}
			}
		}

	default:
		return false
	}
	return true
}

func runScreenTest(cmd *cobra.Command, args []string) error {
	conn, err := OpenConnection(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	t := conn.Terminal
	screen := gfx.NewScreen(t)
	if !drawTestPattern(screen, screenTestPattern) {
		fmt.Fprintf(os.Stderr, "Unknown pattern: %s\n", screenTestPattern)
		os.Exit(1)
	}

	fmt.Printf("Teletel - Screen Test\n")
	fmt.Printf("Connection: %s\n", conn.Info)
	fmt.Printf("Pattern: %s\n\n", screenTestPattern)

	t.ClearScreen()
	screen.Invalidate()
	sent := screen.BytesSent()
	screen.Flush(gfx.FullRedraw)
	fmt.Printf("Full redraw: %d bytes\n", screen.BytesSent()-sent)

	time.Sleep(screenTestDelay)

	// Invert a band across the middle and send only what changed
	w, h := screen.PixelSize()
	screen.SetDrawColor(stum.White)
	for y := h/2 - 4; y < h/2+4; y++ {
		for x := 0; x < w; x++ {
			screen.DrawPixel(x, y, !screen.Pixel(x, y))
		}
	}
	sent = screen.BytesSent()
	screen.Flush(gfx.OptimizedDiff)
	fmt.Printf("Diff update: %d bytes\n", screen.BytesSent()-sent)

	sent = screen.BytesSent()
	screen.Flush(gfx.OptimizedDiff)
	fmt.Printf("Idle diff:   %d bytes\n", screen.BytesSent()-sent)

	screen.Release()
	fmt.Printf("Link total:  %d bytes out\n", t.Stats().BytesOut)
	return nil
}
