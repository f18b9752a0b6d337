// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package link

import (
	"fmt"

	"go.bug.st/serial"
)

// SerialMode returns the STUM-M1 line settings: 7 data bits, even parity,
// one stop bit
func SerialMode(baudRate int) *serial.Mode {
	return &serial.Mode{
		BaudRate: baudRate,
		DataBits: 7,
		Parity:   serial.EvenParity,
		StopBits: serial.OneStopBit,
	}
}

// OpenSerial opens a serial port connected to the terminal's peripheral socket
func OpenSerial(portName string, baudRate int) (*StreamTransport, error) {
	port, err := serial.Open(portName, SerialMode(baudRate))
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	return NewStreamTransport(port, DefaultBufferSize), nil
}

// SerialPorts lists the serial ports present on the host
func SerialPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}
