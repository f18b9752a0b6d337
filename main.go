// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad
//
// Teletel - STUM-M1 Videotex Terminal Driver
//
// A CLI tool for driving videotex terminals over their peripheral socket
// and monitoring what they send back in human-readable format.

package main

import (
	"os"

	"github.com/Thermoquad/teletel/cmd"
	"github.com/golang/glog"
)

func main() {
	defer glog.Flush()

	// cobra reports the error itself
	if err := cmd.Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}
