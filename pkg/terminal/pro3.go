// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package terminal

import (
	"time"

	"github.com/Thermoquad/teletel/pkg/stum"
)

// EnablePRO3 turns on PRO3 routing commands
func (t *Terminal) EnablePRO3() {
	t.WriteRaw(stum.AppendPRO3(nil, stum.PRO3CtrlOn, 0x5F, 0x5F)...)
}

// SendPRO3 sends one routing command connecting (on) or disconnecting a
// transmitter module to a receiver module
func (t *Terminal) SendPRO3(on bool, rx, tx byte) {
	ctrl := byte(stum.PRO3CtrlOff)
	if on {
		ctrl = stum.PRO3CtrlOn
	}
	t.WriteRaw(stum.AppendPRO3(nil, ctrl, rx, tx)...)
}

// ConfigureKeyboardToSocketOnly routes the keyboard to the peripheral socket
// alone: keyboard to modem off, modem to screen off, keyboard to socket on.
// With useTransaction a wait for the SEP 5/4 status change is registered
// first; if another wait is pending nothing is sent and
// ErrTransactionActive is returned.
func (t *Terminal) ConfigureKeyboardToSocketOnly(useTransaction bool, timeout time.Duration) error {
	if useTransaction {
		if err := t.BeginWait(stum.AckRow, stum.AckCol, timeout, nil, nil); err != nil {
			return err
		}
	}

	out := stum.AppendPRO3(nil, stum.PRO3CtrlOff, stum.ModModemRx, stum.ModKeyboardTx)
	out = stum.AppendPRO3(out, stum.PRO3CtrlOff, stum.ModScreenRx, stum.ModModemTx)
	out = stum.AppendPRO3(out, stum.PRO3CtrlOn, stum.ModSocketRx, stum.ModKeyboardTx)
	t.WriteRaw(out...)
	return nil
}
