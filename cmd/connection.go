// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/Thermoquad/teletel/pkg/link"
	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/Thermoquad/teletel/pkg/terminal"
	"golang.org/x/term"
)

// pumpInterval paces polling loops; one character takes ~8 ms at 1200 baud
const pumpInterval = 5 * time.Millisecond

// Connection is an open link to a terminal with its driver
type Connection struct {
	Terminal  *terminal.Terminal
	Transport *link.StreamTransport
	Info      string
}

// Close releases the wake line and closes the transport
func (c *Connection) Close() error {
	if c.Terminal.Session() != terminal.SessionClosed {
		c.Terminal.EndSession(false)
	}
	return c.Transport.Close()
}

// Closed reports whether the transport has stopped receiving
func (c *Connection) Closed() bool {
	select {
	case <-c.Transport.Done():
		return true
	default:
		return false
	}
}

// GetPassword retrieves password from environment or prompts user
func GetPassword() (string, error) {
	// First check environment variable
	if pw := os.Getenv("TELETEL_PASSWORD"); pw != "" {
		return pw, nil
	}

	// Prompt user for password (hide input)
	fmt.Fprint(os.Stderr, "Password: ")

	// Read password without echo
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(os.Stderr) // newline after password
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr) // newline after password
	return string(passwordBytes), nil
}

// OpenTransport opens either a serial or WebSocket transport based on flags
func OpenTransport() (*link.StreamTransport, string, error) {
	if wsURL != "" {
		// WebSocket mode
		password := ""
		if wsUsername != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, "", err
			}
		}

		tr, err := link.OpenWebSocket(wsURL, wsUsername, password, wsNoSSLVerify)
		if err != nil {
			return nil, "", err
		}

		return tr, fmt.Sprintf("WebSocket: %s", wsURL), nil
	}

	if portName != "" {
		// Serial mode
		tr, err := link.OpenSerial(portName, baudRate)
		if err != nil {
			return nil, "", err
		}

		return tr, fmt.Sprintf("Serial: %s @ %d baud 7E1", portName, baudRate), nil
	}

	return nil, "", errors.New("either --port or --url must be specified")
}

// OpenConnection opens the transport and GPIO lines and builds a Terminal.
// capture may be nil.
func OpenConnection(capture *stum.CaptureWriter) (*Connection, error) {
	tr, info, err := OpenTransport()
	if err != nil {
		return nil, err
	}

	cfg := terminal.Config{
		Transport: tr,
		Capture:   capture,
	}

	if wakePin != "" {
		wake, err := link.OpenWakeLine(wakePin)
		if err != nil {
			tr.Close()
			return nil, err
		}
		cfg.Wake = wake
		info += fmt.Sprintf(", wake=%s", wakePin)
	}

	if powerPin != "" {
		power, err := link.OpenPowerSense(powerPin)
		if err != nil {
			tr.Close()
			return nil, err
		}
		cfg.Power = power
		info += fmt.Sprintf(", power=%s", powerPin)
	}

	return &Connection{
		Terminal:  terminal.New(cfg),
		Transport: tr,
		Info:      info,
	}, nil
}
