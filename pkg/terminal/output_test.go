// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package terminal

import (
	"testing"

	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/stretchr/testify/require"
)

func TestOutput_Sequences(t *testing.T) {
	tests := []struct {
		name     string
		run      func(*Terminal)
		expected []byte
	}{
		{"clear", (*Terminal).ClearScreen, []byte{stum.FF}},
		{"home", (*Terminal).Home, []byte{stum.RS}},
		{"clear line", (*Terminal).ClearLine, []byte{stum.CAN}},
		{"cursor", func(t *Terminal) { t.SetCursor(3, 12) }, []byte{stum.US, 0x43, 0x4C}},
		{"cursor on", func(t *Terminal) { t.ShowCursor(true) }, []byte{stum.CON}},
		{"cursor off", func(t *Terminal) { t.ShowCursor(false) }, []byte{stum.COFF}},
		{"move", func(t *Terminal) { t.MoveCursor(2, -1) }, []byte{stum.LF, stum.LF, stum.BS}},
		{"move up right", func(t *Terminal) { t.MoveCursor(-1, 2) }, []byte{stum.VT, stum.HT, stum.HT}},
		{"print compressed", func(t *Terminal) { t.Print("xAAAAAA") }, []byte{'x', 'A', stum.REP, 0x45}},
		{"println", func(t *Terminal) { t.Println("ok") }, []byte{'o', 'k', stum.CR, stum.LF}},
		{"printf", func(t *Terminal) { t.Printf("%02d", 7) }, []byte{'0', '7'}},
		{"raw masked", func(t *Terminal) { t.WriteRaw(0xC1) }, []byte{0x41}},
		{"foreground", func(t *Terminal) { t.SetForeground(stum.Cyan) }, []byte{stum.ESC, 0x46}},
		{"background", func(t *Terminal) { t.SetBackground(stum.Red) }, []byte{stum.ESC, 0x51}},
		{"flash", func(t *Terminal) { t.SetFlash(true) }, []byte{stum.ESC, 0x48}},
		{"conceal", func(t *Terminal) { t.SetConceal(true) }, []byte{stum.ESC, 0x58}},
		{"size", func(t *Terminal) { t.SetSize(stum.SizeDoubleHeight) }, []byte{stum.ESC, 0x4D}},
		{"enable pro3", (*Terminal).EnablePRO3, []byte{stum.ESC, 0x3B, 0x61, 0x5F, 0x5F}},
		{"semigraphic at", func(t *Terminal) { t.PutSemiGraphicAt(2, 2, 0x7E) },
			[]byte{stum.US, 0x42, 0x42, stum.SO, 0x7E, stum.SI}},
		{"semigraphics run", func(t *Terminal) { t.PrintSemiGraphics([]byte{0x5F, 0x5F, 0x5F, 0x5F, 0x5F}) },
			[]byte{stum.SO, 0x5F, stum.REP, 0x44}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRig(0, 0)
			tt.run(r.term)
			require.Equal(t, tt.expected, r.tr.Written())
		})
	}
}

func TestOutput_CharsetTracking(t *testing.T) {
	r := newTestRig(0, 0)

	// Already in G0: no shift
	r.term.PutChar('a')
	require.Equal(t, []byte{'a'}, r.tr.TakeWritten())

	r.term.BeginSemiGraphics()
	r.term.BeginSemiGraphics()
	r.term.PutChar('b')
	require.Equal(t, []byte{stum.SO, stum.SI, 'b'}, r.tr.TakeWritten())

	// A position command returns the device to G0
	r.term.BeginSemiGraphics()
	r.term.SetCursor(2, 3)
	r.term.PutChar('c')
	require.Equal(t, []byte{stum.SO, stum.US, 0x42, 0x43, 'c'}, r.tr.TakeWritten())

	// Raw shift bytes are tracked too
	r.term.WriteRaw(stum.SO)
	r.term.PutSemiGraphic(0x21)
	require.Equal(t, []byte{stum.SO, 0x21}, r.tr.TakeWritten())
	require.Equal(t, stum.G1, r.term.Charset())
}

func TestWriteStatus(t *testing.T) {
	r := newTestRig(0, 0)
	r.term.SetCursor(10, 10)
	r.term.BeginSemiGraphics()
	r.term.WriteStatus(1, "ONLINE")

	require.Equal(t, stum.G1, r.term.Charset(), "LF restores the previous set")

	e := stum.NewEmulator(stum.Rows, stum.Cols)
	e.Write(r.tr.Written())
	require.Equal(t, "ONLINE", e.StatusText()[:6])
	require.Equal(t, 10, e.Row)
	require.Equal(t, 10, e.Col)
	require.Equal(t, stum.G1, e.Charset)
}

func TestConfigureKeyboardToSocketOnly(t *testing.T) {
	r := newTestRig(0, 0)
	require.NoError(t, r.term.ConfigureKeyboardToSocketOnly(false, 0))
	require.Equal(t, []byte{
		stum.ESC, 0x3B, 0x60, 0x5A, 0x51,
		stum.ESC, 0x3B, 0x60, 0x58, 0x52,
		stum.ESC, 0x3B, 0x61, 0x5B, 0x51,
	}, r.tr.TakeWritten())
	require.False(t, r.term.TransactionActive())

	require.NoError(t, r.term.ConfigureKeyboardToSocketOnly(true, 0))
	require.True(t, r.term.TransactionActive())
	r.tr.TakeWritten()

	require.ErrorIs(t, r.term.ConfigureKeyboardToSocketOnly(true, 0), ErrTransactionActive)
	require.Empty(t, r.tr.Written())

	e := stum.NewEmulator(stum.Rows, stum.Cols)
	r.term.SendPRO3(true, stum.ModScreenRx, stum.ModKeyboardTx)
	e.Write(r.tr.Written())
	require.Equal(t, [][3]byte{{stum.PRO3CtrlOn, stum.ModScreenRx, stum.ModKeyboardTx}}, e.PRO3)
}

func TestOutput_LinkDown(t *testing.T) {
	r := newTestRig(0, 0)
	r.tr.SetDown(true)
	r.term.Print("lost")
	require.Equal(t, uint64(0), r.term.Stats().BytesOut)

	r.tr.SetDown(false)
	r.term.Print("sent")
	require.Equal(t, uint64(4), r.term.Stats().BytesOut)
}
