// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/teletel/pkg/terminal"
	"github.com/spf13/cobra"
)

var (
	pingTimeout time.Duration
	pingCount   int
	pingGap     time.Duration
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Measure terminal wake acknowledgement round trip",
	Long: `Repeatedly open and close a session, timing how long the terminal takes to
acknowledge the wake line with SEP 5/4.

This is useful for verifying:
  - The wake line (--wake-pin) reaches the terminal
  - The terminal is powered and its socket is in STUM-M1 mode
  - Bidirectional traffic flows over the serial port or WebSocket bridge

Exit codes:
  0 - All pings acknowledged
  1 - One or more pings timed out
  2 - Connection error`,
	RunE: runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 2*time.Second, "Timeout for each acknowledgement")
	pingCmd.Flags().IntVar(&pingCount, "count", 3, "Number of pings to send")
	pingCmd.Flags().DurationVar(&pingGap, "gap", 500*time.Millisecond, "Delay between pings")
}

// closeSession ends the session and waits for the terminal to confirm,
// forcing it closed when no confirmation arrives in time
func closeSession(t *terminal.Terminal, timeout time.Duration) {
	t.EndSession(true)
	deadline := time.Now().Add(timeout)
	for t.Session() != terminal.SessionClosed && time.Now().Before(deadline) {
		t.Pump()
		time.Sleep(pumpInterval)
	}
	if t.Session() != terminal.SessionClosed {
		t.EndSession(false)
	}
}

func runPing(cmd *cobra.Command, args []string) error {
	if pingCount < 1 {
		pingCount = 1
	}

	conn, err := OpenConnection(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Teletel - Wake Ping\n")
	fmt.Printf("Connection: %s\n", conn.Info)
	fmt.Printf("Timeout: %v per ping\n", pingTimeout)
	fmt.Printf("Count: %d pings\n\n", pingCount)

	t := conn.Terminal
	if !t.IsPowered() {
		fmt.Printf("Warning: power sense reports the terminal is off\n\n")
	}

	successCount := 0
	failCount := 0
	var minRTT, maxRTT, total time.Duration

	for i := 1; i <= pingCount; i++ {
		fmt.Printf("Ping %d/%d: ", i, pingCount)

		start := time.Now()
		err := t.OpenSession(pingTimeout)
		rtt := time.Since(start)

		switch {
		case err == nil:
			fmt.Printf("ACK, rtt=%v\n", rtt.Round(time.Millisecond))
			successCount++
			total += rtt
			if minRTT == 0 || rtt < minRTT {
				minRTT = rtt
			}
			if rtt > maxRTT {
				maxRTT = rtt
			}
		default:
			fmt.Printf("TIMEOUT (no acknowledgement in %v)\n", pingTimeout)
			failCount++
		}

		closeSession(t, pingTimeout)

		if conn.Closed() {
			fmt.Printf("Connection lost: %v\n", conn.Transport.Err())
			failCount += pingCount - i
			break
		}

		// Let the terminal settle between pings
		if i < pingCount {
			time.Sleep(pingGap)
		}
	}

	// Summary
	fmt.Printf("\n--- Ping statistics ---\n")
	fmt.Printf("%d pings sent, %d acknowledged, %.0f%% loss\n",
		pingCount, successCount, float64(failCount)/float64(pingCount)*100)
	if successCount > 0 {
		fmt.Printf("rtt min/avg/max = %v/%v/%v\n",
			minRTT.Round(time.Millisecond),
			(total / time.Duration(successCount)).Round(time.Millisecond),
			maxRTT.Round(time.Millisecond))
	}

	if failCount > 0 {
		os.Exit(1)
	}
	return nil
}
