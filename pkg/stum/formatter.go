// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package stum

import (
	"fmt"
	"strings"
)

// FormatEvent formats an event into a single human-readable line
func FormatEvent(ev Event) string {
	switch ev.Type {
	case EventChar:
		return fmt.Sprintf("CHAR    %s (0x%02X)", FormatByte(ev.Code), ev.Code)
	case EventSep:
		return fmt.Sprintf("SEP     %d/%d %s", ev.Row, ev.Col, SepName(ev.Code))
	case EventEsc:
		if ev.Len == 0 {
			return fmt.Sprintf("ESC     0x%02X %s", ev.Code, EscName(ev.Code))
		}
		return fmt.Sprintf("ESC     0x%02X %s [% X]", ev.Code, EscName(ev.Code), ev.Payload())
	case EventControl:
		return fmt.Sprintf("CONTROL %s (0x%02X)", FormatByte(ev.Code), ev.Code)
	case EventTimeout:
		return "TIMEOUT"
	}
	return fmt.Sprintf("UNKNOWN type=%d", ev.Type)
}

// FormatEventType returns the name of an event type
func FormatEventType(t EventType) string {
	switch t {
	case EventChar:
		return "CHAR"
	case EventSep:
		return "SEP"
	case EventEsc:
		return "ESC"
	case EventControl:
		return "CONTROL"
	case EventTimeout:
		return "TIMEOUT"
	}
	return fmt.Sprintf("UNKNOWN_%d", t)
}

// SepName returns the key or status name of a SEP second byte
func SepName(code byte) string {
	switch code {
	case SepSend:
		return "ENVOI"
	case SepPrevious:
		return "RETOUR"
	case SepRepeat:
		return "REPETITION"
	case SepGuide:
		return "GUIDE"
	case SepCancel:
		return "ANNULATION"
	case SepIndex:
		return "SOMMAIRE"
	case SepErase:
		return "CORRECTION"
	case SepNext:
		return "SUITE"
	case SepConnect:
		return "CONNEXION_FIN"
	case SepEcpOn:
		return "ECP_ON_REQ"
	case SepEcpOff:
		return "ECP_OFF_REQ"
	case SepModemInv:
		return "MODEM_INV_REQ"
	case SepEnvoi:
		return "MODEM_NORMAL_REQ"
	case SepConnStatus:
		return "CONNECTION_STATUS"
	case SepPTStatus:
		return "PT_STATUS"
	}
	return "UNKNOWN"
}

// EscName returns the name of an ESC opcode
func EscName(code byte) string {
	switch {
	case code == EscPRO1:
		return "PRO1"
	case code == EscPRO2:
		return "PRO2"
	case code == EscPRO3:
		return "PRO3"
	case code >= EscForeground && code <= EscForeground+7:
		return "FG_" + ColorName(Color(code-EscForeground))
	case code >= EscBackground && code <= EscBackground+7:
		return "BG_" + ColorName(Color(code-EscBackground))
	case code == EscFlash:
		return "FLASH"
	case code == EscSteady:
		return "STEADY"
	case code == EscNormalSize:
		return "NORMAL_SIZE"
	case code == EscDoubleH:
		return "DOUBLE_HEIGHT"
	case code == EscDoubleW:
		return "DOUBLE_WIDTH"
	case code == EscDoubleSize:
		return "DOUBLE_SIZE"
	case code == EscConceal:
		return "CONCEAL"
	case code == EscReveal:
		return "REVEAL"
	}
	return "UNKNOWN"
}

// ColorName returns the name of a color
func ColorName(c Color) string {
	names := [...]string{"BLACK", "RED", "GREEN", "YELLOW", "BLUE", "MAGENTA", "CYAN", "WHITE"}
	if int(c) < len(names) {
		return names[c]
	}
	return fmt.Sprintf("COLOR_%d", c)
}

// FormatByte renders a 7-bit byte as its printable form or C0 mnemonic
func FormatByte(b byte) string {
	mnemonics := [...]string{
		"NUL", "SOH", "STX", "ETX", "EOT", "ENQ", "ACK", "BEL",
		"BS", "HT", "LF", "VT", "FF", "CR", "SO", "SI",
		"DLE", "CON", "REP", "SEP", "COFF", "NAK", "SYN", "ETB",
		"CAN", "SS2", "SUB", "ESC", "FS", "SS3", "RS", "US",
	}
	b &= DataMask
	if int(b) < len(mnemonics) {
		return mnemonics[b]
	}
	if b == DEL {
		return "DEL"
	}
	return fmt.Sprintf("'%c'", b)
}

// FormatBytes renders a byte slice as space separated mnemonics
func FormatBytes(p []byte) string {
	parts := make([]string, len(p))
	for i, b := range p {
		parts[i] = FormatByte(b)
	}
	return strings.Join(parts, " ")
}
