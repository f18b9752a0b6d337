// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

var rawLogCapture string

var rawLogCmd = &cobra.Command{
	Use:   "raw_log",
	Short: "Display raw event log in human-readable format",
	Long: `Continuously decode and display terminal events as they arrive.

Each keystroke, SEP key or status code, escape sequence and control character
is shown with a timestamp. Line-editing controls the parser swallows and
malformed escape sequences are counted in the statistics, not displayed.

With --capture, every event is also recorded to a CBOR file that the replay
command can read back.

Supports both serial and WebSocket connections.`,
	RunE: runRawLog,
}

func init() {
	rootCmd.AddCommand(rawLogCmd)
	rawLogCmd.Flags().StringVar(&rawLogCapture, "capture", "", "Record events to a CBOR capture file")
}

func runRawLog(cmd *cobra.Command, args []string) error {
	var capture *stum.CaptureWriter
	if rawLogCapture != "" {
		f, err := os.Create(rawLogCapture)
		if err != nil {
			return fmt.Errorf("failed to create capture file: %w", err)
		}
		defer f.Close()
		capture = stum.NewCaptureWriter(f)
	}

	// Open connection (serial or WebSocket)
	conn, err := OpenConnection(capture)
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("Teletel - Raw Event Log\n")
	fmt.Printf("Connection: %s\n", conn.Info)
	if capture != nil {
		fmt.Printf("Capture: %s\n", rawLogCapture)
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	t := conn.Terminal
	for {
		// Sample before pumping so bytes received just before the link
		// closed are still shown
		closed := conn.Closed()
		t.Pump()
		for {
			ev, ok := t.ReadEvent()
			if !ok {
				break
			}
			fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), stum.FormatEvent(ev))
		}

		if closed {
			// For WebSocket connections, a read error usually means
			// the connection is permanently closed - exit gracefully
			glog.Errorf("Connection closed: %v", conn.Transport.Err())
			fmt.Println()
			fmt.Print(t.Stats().String())
			return nil
		}
		time.Sleep(pumpInterval)
	}
}
