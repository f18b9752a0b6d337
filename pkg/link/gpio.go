// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package link

import (
	"fmt"
	"sync"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var (
	hostOnce sync.Once
	hostErr  error
)

func initHost() error {
	hostOnce.Do(func() {
		_, hostErr = host.Init()
	})
	return hostErr
}

func lookupPin(name string) (gpio.PinIO, error) {
	if err := initHost(); err != nil {
		return nil, fmt.Errorf("failed to initialize GPIO host: %w", err)
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPin, name)
	}
	return p, nil
}

// WakeLine drives the transistor on the terminal's PT (power/wake) input.
// Active drives the pin high, which pulls PT low; inactive releases the pin
// to high impedance.
type WakeLine struct {
	pin    gpio.PinIO
	active bool
}

// OpenWakeLine resolves a GPIO by name and releases it
func OpenWakeLine(name string) (*WakeLine, error) {
	p, err := lookupPin(name)
	if err != nil {
		return nil, err
	}
	return NewWakeLine(p)
}

// NewWakeLine wraps a pin and releases it
func NewWakeLine(p gpio.PinIO) (*WakeLine, error) {
	w := &WakeLine{pin: p}
	if err := w.Set(false); err != nil {
		return nil, err
	}
	return w, nil
}

// Set asserts or releases the wake line
func (w *WakeLine) Set(active bool) error {
	var err error
	if active {
		err = w.pin.Out(gpio.High)
	} else {
		err = w.pin.In(gpio.PullNoChange, gpio.NoEdge)
	}
	if err != nil {
		return fmt.Errorf("failed to drive wake line %s: %w", w.pin.Name(), err)
	}
	glog.V(1).Infof("wake line %s active=%v", w.pin.Name(), active)
	w.active = active
	return nil
}

// Active reports the last state set
func (w *WakeLine) Active() bool {
	return w.active
}

// PowerSense reads the terminal's power indicator. The line is active low.
type PowerSense struct {
	pin gpio.PinIO
}

// OpenPowerSense resolves a GPIO by name and configures it as a pulled-up input
func OpenPowerSense(name string) (*PowerSense, error) {
	p, err := lookupPin(name)
	if err != nil {
		return nil, err
	}
	return NewPowerSense(p)
}

// NewPowerSense wraps a pin and configures it as a pulled-up input
func NewPowerSense(p gpio.PinIO) (*PowerSense, error) {
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("failed to configure power sense %s: %w", p.Name(), err)
	}
	return &PowerSense{pin: p}, nil
}

// Active reports whether the terminal is powered
func (s *PowerSense) Active() bool {
	return s.pin.Read() == gpio.Low
}
