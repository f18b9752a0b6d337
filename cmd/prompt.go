// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/Thermoquad/teletel/pkg/terminal"
	"github.com/spf13/cobra"
)

var (
	promptText    string
	promptTimeout time.Duration
	promptMaxLen  int
	promptRow     int
	promptStatus  string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print a prompt on the terminal and read a line",
	Long: `Clear the terminal screen, print a prompt and read one line of input with
local echo. The line ends with CR, LF or the ENVOI key. Backspace edits.

The line read is printed on stdout.

Exit codes:
  0 - Line entered
  1 - Timeout (the partial line is still printed)
  2 - Connection error`,
	RunE: runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().StringVar(&promptText, "text", "> ", "Prompt text")
	promptCmd.Flags().DurationVar(&promptTimeout, "timeout", 0, "Time to wait for the line (0 waits forever)")
	promptCmd.Flags().IntVar(&promptMaxLen, "max-len", 38, "Maximum line length")
	promptCmd.Flags().IntVar(&promptRow, "row", 12, "Screen row of the prompt (1-24)")
	promptCmd.Flags().StringVar(&promptStatus, "status", "", "Text for the status row")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	conn, err := OpenConnection(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	t := conn.Terminal
	t.ClearScreen()
	if promptStatus != "" {
		t.WriteStatus(1, promptStatus)
	}
	t.SetCursor(promptRow, 1)
	t.SetForeground(stum.Cyan)
	t.Print(promptText)
	t.ShowCursor(true)

	line, ok := t.ReadLine(terminal.LineOptions{
		MaxLen:      promptMaxLen,
		Timeout:     promptTimeout,
		StopOnEnvoi: true,
		Echo:        true,
	})
	t.ShowCursor(false)

	fmt.Println(line)
	if !ok {
		fmt.Fprintf(os.Stderr, "TIMEOUT: no complete line within %v\n", promptTimeout)
		os.Exit(1)
	}
	return nil
}
