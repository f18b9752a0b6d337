// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"flag"

	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// GPIO flags
	wakePin  string
	powerPin string
)

var rootCmd = &cobra.Command{
	Use:   "teletel",
	Short: "STUM-M1 Videotex Terminal Driver",
	Long: `Teletel - A CLI tool for driving and monitoring videotex terminals that
speak the STUM-M1 protocol over their peripheral socket.

Provides commands for raw event logging, session control, line input,
semi-graphics test patterns and sprite animation.

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 1200]
  WebSocket: --url ws://host/path [--username user]

The serial link always runs 7 data bits, even parity, one stop bit.

Optional GPIO lines (periph.io names, e.g. GPIO17):
  --wake-pin   drives the terminal's wake input
  --power-pin  senses terminal power (active low)

For WebSocket authentication, the password is read from the TELETEL_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell history.

Diagnostics go through glog; raise verbosity with -v=1 (sessions), -v=2
(events and flushes) or -v=3 (raw bytes) and add --logtostderr.`,
	Version: "1.0.0",
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 1200, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// GPIO flags
	rootCmd.PersistentFlags().StringVar(&wakePin, "wake-pin", "", "GPIO driving the terminal wake line")
	rootCmd.PersistentFlags().StringVar(&powerPin, "power-pin", "", "GPIO sensing terminal power")

	// glog flags (-v, --logtostderr, ...)
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
