// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package terminal

import "errors"

var (
	// ErrTransactionActive is returned when a wait is requested while another is pending
	ErrTransactionActive = errors.New("transaction already active")

	// ErrTimeout is returned when an acknowledgement did not arrive in time
	ErrTimeout = errors.New("timed out waiting for terminal")
)
