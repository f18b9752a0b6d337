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
	keyboardAck     bool
	keyboardTimeout time.Duration
)

var keyboardCmd = &cobra.Command{
	Use:   "keyboard",
	Short: "Route the terminal keyboard to the peripheral socket only",
	Long: `Send the PRO3 routing commands that disconnect the keyboard from the
modem and the screen from the modem, then connect the socket receiver to the
keyboard transmitter. Keystrokes then reach only this program and nothing is
echoed locally by the terminal.

With --ack, wait for the terminal's status acknowledgement (SEP 5/4).

Exit codes:
  0 - Routing sent (and acknowledged with --ack)
  1 - Acknowledgement timeout
  2 - Connection error`,
	RunE: runKeyboard,
}

func init() {
	rootCmd.AddCommand(keyboardCmd)
	keyboardCmd.Flags().BoolVar(&keyboardAck, "ack", false, "Wait for the routing acknowledgement")
	keyboardCmd.Flags().DurationVar(&keyboardTimeout, "timeout", time.Second, "Acknowledgement timeout")
}

func runKeyboard(cmd *cobra.Command, args []string) error {
	conn, err := OpenConnection(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	t := conn.Terminal
	fmt.Printf("Connection: %s\n", conn.Info)

	if err := t.ConfigureKeyboardToSocketOnly(keyboardAck, keyboardTimeout); err != nil {
		return err
	}
	fmt.Printf("Routing sent\n")
	if !keyboardAck {
		return nil
	}

	switch res := t.AwaitTransaction(); res {
	case terminal.TxSucceeded:
		fmt.Printf("SUCCESS: routing acknowledged\n")
	case terminal.TxTimedOut:
		fmt.Fprintf(os.Stderr, "TIMEOUT: no acknowledgement within %v\n", keyboardTimeout)
		os.Exit(1)
	default:
		return fmt.Errorf("unexpected transaction result: %s", res)
	}
	return nil
}
