// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/teletel/pkg/link"
	"github.com/spf13/cobra"
)

var (
	probeDuration int
	probeList     bool
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test raw link stability",
	Long: `Open the serial port or WebSocket and just listen, logging any bytes
received or errors encountered. Nothing is parsed or sent. Useful for checking
line settings (1200 baud 7E1) and WebSocket bridge stability.

With --list, print the available serial ports and exit.

Exit codes:
  0 - Test completed normally
  1 - Test failed
  2 - Connection error`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeDuration, "duration", 30, "Test duration in seconds")
	probeCmd.Flags().BoolVar(&probeList, "list", false, "List serial ports and exit")
}

func runProbe(cmd *cobra.Command, args []string) error {
	if probeList {
		ports, err := link.SerialPorts()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Printf("No serial ports found\n")
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return nil
	}

	tr, connInfo, err := OpenTransport()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer tr.Close()

	fmt.Printf("Link Stability Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Duration: %d seconds\n\n", probeDuration)

	// Run for the specified duration
	startTime := time.Now()
	endTime := startTime.Add(time.Duration(probeDuration) * time.Second)
	heartbeat := time.NewTicker(time.Second)
	defer heartbeat.Stop()
	poll := time.NewTicker(pumpInterval)
	defer poll.Stop()

	bytesReceived := 0
	chunksReceived := 0
	buf := make([]byte, 0, 256)

	fmt.Printf("Listening for data...\n\n")

	for time.Now().Before(endTime) {
		select {
		case <-poll.C:
			buf = buf[:0]
			for {
				b, ok := tr.Recv()
				if !ok {
					break
				}
				buf = append(buf, b)
			}
			if len(buf) > 0 {
				bytesReceived += len(buf)
				chunksReceived++
				fmt.Printf("[%s] Received %d bytes: % X\n",
					time.Now().Format("15:04:05.000"), len(buf), buf)
			}

		case <-tr.Done():
			fmt.Printf("\n[%s] Connection error: %v\n",
				time.Now().Format("15:04:05.000"), tr.Err())
			fmt.Printf("\n--- Test Results ---\n")
			fmt.Printf("Duration: %v\n", time.Since(startTime).Round(time.Millisecond))
			fmt.Printf("Chunks received: %d\n", chunksReceived)
			fmt.Printf("Bytes received: %d\n", bytesReceived)
			fmt.Printf("Result: FAILED (connection error)\n")
			os.Exit(1)

		case <-heartbeat.C:
			// Just a heartbeat to show the test is running
			remaining := time.Until(endTime).Seconds()
			fmt.Printf("[%s] Still connected... (%.0fs remaining)\n",
				time.Now().Format("15:04:05.000"), remaining)
		}
	}

	fmt.Printf("\n--- Test Results ---\n")
	fmt.Printf("Duration: %d seconds\n", probeDuration)
	fmt.Printf("Chunks received: %d\n", chunksReceived)
	fmt.Printf("Bytes received: %d\n", bytesReceived)
	if dropped := tr.Dropped(); dropped > 0 {
		fmt.Printf("Bytes dropped: %d\n", dropped)
	}
	fmt.Printf("Result: PASSED (connection stable)\n")

	return nil
}
