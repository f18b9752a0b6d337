// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"time"

	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/Thermoquad/teletel/pkg/terminal"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

var (
	statsInterval int
	useTUI        bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor terminal events, session state and link statistics",
	Long: `Track terminal events with running statistics.

The monitor shows:
  - Session state and terminal power (when --power-pin is set)
  - Bytes in/out, events by type, swallowed controls and malformed sequences
  - Event queue drops and transaction results
  - A log of recent events

In TUI mode a text line at the bottom sends text to the terminal screen.
Ctrl+O opens a session, Ctrl+X closes it, Ctrl+L clears the terminal screen.

In text mode (--tui=false) events are printed as they arrive, with periodic
statistics summaries at configurable intervals.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().IntVar(&statsInterval, "stats-interval", 10, "Statistics update interval (seconds)")
	monitorCmd.Flags().BoolVar(&useTUI, "tui", true, "Use terminal UI (false for text mode)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	conn, err := OpenConnection(nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if useTUI {
		return runTUIMode(conn)
	}
	return runTextMode(conn)
}

// monitorStatus is a snapshot of the driver state for the TUI
type monitorStatus struct {
	stats   stum.Statistics
	session terminal.SessionState
	powered bool
	charset stum.Charset
}

func snapshot(t *terminal.Terminal) monitorStatus {
	return monitorStatus{
		stats:   *t.Stats(),
		session: t.Session(),
		powered: t.IsPowered(),
		charset: t.Charset(),
	}
}

// runTUIMode runs the monitor in TUI mode. The pump goroutine owns the
// Terminal; the TUI reaches it only through the actions channel.
func runTUIMode(conn *Connection) error {
	actions := make(chan func(*terminal.Terminal), 16)
	m := initialMonitorModel(conn.Info, actions)
	p := tea.NewProgram(m, tea.WithAltScreen())

	stop := make(chan struct{})
	exited := make(chan struct{})

	// Terminal pump goroutine
	go func() {
		defer close(exited)
		t := conn.Terminal
		poll := time.NewTicker(pumpInterval)
		defer poll.Stop()
		status := time.NewTicker(250 * time.Millisecond)
		defer status.Stop()

		for {
			select {
			case <-stop:
				return

			case act := <-actions:
				act(t)

			case <-poll.C:
				t.Pump()
				var batch []stum.Event
				for {
					ev, ok := t.ReadEvent()
					if !ok {
						break
					}
					batch = append(batch, ev)
				}
				if len(batch) > 0 {
					p.Send(monitorEventsMsg{at: time.Now(), events: batch})
				}

			case <-status.C:
				p.Send(monitorStatusMsg(snapshot(t)))

			case <-conn.Transport.Done():
				glog.Errorf("Connection closed: %v", conn.Transport.Err())
				p.Send(connectionLostMsg{})
				return
			}
		}
	}()

	// Run TUI
	_, err := p.Run()
	close(stop)
	<-exited
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// runTextMode runs the monitor in text mode
func runTextMode(conn *Connection) error {
	fmt.Printf("Teletel - Monitor\n")
	fmt.Printf("Connection: %s\n", conn.Info)
	fmt.Printf("Statistics interval: %d seconds\n", statsInterval)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	t := conn.Terminal
	lastSession := t.Session()
	lastPowered := t.IsPowered()

	// Statistics ticker
	statsTicker := time.NewTicker(time.Duration(statsInterval) * time.Second)
	defer statsTicker.Stop()
	poll := time.NewTicker(pumpInterval)
	defer poll.Stop()

	for {
		select {
		case <-poll.C:
			t.Pump()
			for {
				ev, ok := t.ReadEvent()
				if !ok {
					break
				}
				timestamp := time.Now().Format("15:04:05.000")
				if ev.IsSep(stum.AckRow, stum.AckCol) {
					fmt.Printf("[%s] \033[1;32m%s\033[0m\n", timestamp, stum.FormatEvent(ev))
				} else {
					fmt.Printf("[%s] %s\n", timestamp, stum.FormatEvent(ev))
				}
			}

			if s := t.Session(); s != lastSession {
				fmt.Printf("[%s] \033[1;33mSESSION:\033[0m %s -> %s\n", time.Now().Format("15:04:05.000"), lastSession, s)
				lastSession = s
			}
			if p := t.IsPowered(); p != lastPowered {
				fmt.Printf("[%s] \033[1;33mPOWER:\033[0m %s\n", time.Now().Format("15:04:05.000"), powerLabel(p))
				lastPowered = p
			}

		case <-statsTicker.C:
			// Print statistics
			fmt.Println()
			fmt.Print(t.Stats().String())
			fmt.Println()

		case <-conn.Transport.Done():
			fmt.Printf("\033[1;31mCONNECTION LOST:\033[0m %v\n\n", conn.Transport.Err())
			fmt.Print(t.Stats().String())
			return nil
		}
	}
}

func powerLabel(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
