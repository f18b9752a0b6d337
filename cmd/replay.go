// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Display a recorded event capture",
	Long: `Read a CBOR capture file written by raw_log --capture and display each
event with its offset from the first record.

No connection is needed.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open capture: %w", err)
	}
	defer f.Close()

	fmt.Printf("Teletel - Capture Replay\n")
	fmt.Printf("File: %s\n\n", args[0])

	r := stum.NewCaptureReader(f)
	counts := map[stum.EventType]int{}
	var first uint32
	total := 0

	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		ev, err := rec.Event()
		if err != nil {
			fmt.Printf("\033[1;31m[INVALID]\033[0m record %d: %v\n", total, err)
			continue
		}
		if total == 0 {
			first = rec.At
		}
		total++
		counts[ev.Type]++

		// uint32 subtraction stays correct across a clock wrap
		fmt.Printf("[+%8d ms] %s\n", rec.At-first, stum.FormatEvent(ev))
	}

	fmt.Printf("\n--- Replay Summary ---\n")
	fmt.Printf("Events: %d\n", total)
	for _, t := range []stum.EventType{stum.EventChar, stum.EventSep, stum.EventEsc, stum.EventControl} {
		if counts[t] > 0 {
			fmt.Printf("  %-8s %d\n", stum.FormatEventType(t)+":", counts[t])
		}
	}
	return nil
}
