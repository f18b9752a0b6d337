// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/teletel/pkg/terminal"
	"github.com/spf13/cobra"
)

var (
	sessionTimeout time.Duration
	sessionConfirm bool
	sessionHold    bool
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Open or close a terminal session over the wake line",
	Long: `Drive the terminal's wake line and wait for the SEP 5/4 status the
terminal sends when it has switched its peripheral socket on or off.

Exit codes:
  0 - Session state reached
  1 - Timeout waiting for the terminal
  2 - Connection error`,
}

var sessionOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Assert the wake line and wait for the acknowledgement",
	RunE:  runSessionOpen,
}

var sessionCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Release the wake line",
	RunE:  runSessionClose,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionOpenCmd)
	sessionCmd.AddCommand(sessionCloseCmd)

	sessionCmd.PersistentFlags().DurationVar(&sessionTimeout, "timeout", 2*time.Second, "Time to wait for the terminal")
	sessionOpenCmd.Flags().BoolVar(&sessionHold, "hold", false, "Keep the session open until the link closes")
	sessionCloseCmd.Flags().BoolVar(&sessionConfirm, "confirm", true, "Wait for the terminal to acknowledge")
}

func openForSession() *Connection {
	conn, err := OpenConnection(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	return conn
}

func runSessionOpen(cmd *cobra.Command, args []string) error {
	conn := openForSession()
	defer conn.Close()

	t := conn.Terminal
	fmt.Printf("Connection: %s\n", conn.Info)
	if !t.IsPowered() {
		fmt.Printf("\033[1;33mWARNING:\033[0m terminal power not sensed\n")
	}
	fmt.Printf("Opening session (timeout %v)...\n", sessionTimeout)

	start := time.Now()
	err := t.OpenSession(sessionTimeout)
	if errors.Is(err, terminal.ErrTimeout) {
		fmt.Fprintf(os.Stderr, "TIMEOUT: terminal did not acknowledge within %v\n", sessionTimeout)
		os.Exit(1)
	}
	if err != nil {
		return err
	}
	fmt.Printf("SUCCESS: session %s after %v\n", t.Session(), time.Since(start).Round(time.Millisecond))

	if !sessionHold {
		return nil
	}

	fmt.Printf("Holding session, press Ctrl+C to exit\n")
	for !conn.Closed() {
		t.Pump()
		time.Sleep(pumpInterval)
	}
	return nil
}

func runSessionClose(cmd *cobra.Command, args []string) error {
	conn := openForSession()
	defer conn.Close()

	t := conn.Terminal
	fmt.Printf("Connection: %s\n", conn.Info)

	t.EndSession(sessionConfirm)
	if !sessionConfirm {
		fmt.Printf("Session %s\n", t.Session())
		return nil
	}

	deadline := time.Now().Add(sessionTimeout)
	for t.Session() != terminal.SessionClosed {
		if time.Now().After(deadline) {
			fmt.Fprintf(os.Stderr, "TIMEOUT: terminal did not acknowledge within %v\n", sessionTimeout)
			os.Exit(1)
		}
		t.Pump()
		time.Sleep(pumpInterval)
	}
	fmt.Printf("SUCCESS: session %s\n", t.Session())
	return nil
}
