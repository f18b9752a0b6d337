// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/Thermoquad/teletel/pkg/stum"
	"github.com/Thermoquad/teletel/pkg/terminal"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"
)

// Event log entry
type logEntry struct {
	timestamp time.Time
	message   string
	level     logLevel
}

type logLevel uint8

const (
	levelInfo logLevel = iota
	levelKey
	levelError
)

// TUI model
type monitorModel struct {
	connInfo      string
	actions       chan<- func(*terminal.Terminal)
	status        monitorStatus
	hasStatus     bool
	log           []logEntry
	maxLogEntries int
	input         textinput.Model
	started       time.Time
	width         int
	height        int
	quitting      bool
	lost          bool
}

// Messages
type monitorTickMsg time.Time
type monitorEventsMsg struct {
	at     time.Time
	events []stum.Event
}
type monitorStatusMsg monitorStatus
type connectionLostMsg struct{}

// formatUptime formats a duration as a human-friendly string
func formatUptime(d time.Duration) string {
	seconds := int64(d / time.Second)
	if seconds <= 0 {
		return "0 seconds"
	}

	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	seconds %= 60
	minutes %= 60
	hours %= 24

	plural := func(n int64, unit string) string {
		if n == 1 {
			return "1 " + unit
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}

	parts := []string{}
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	if seconds > 0 {
		parts = append(parts, plural(seconds, "second"))
	}

	// Join with commas and "and" for last item
	if len(parts) == 1 {
		return parts[0]
	}
	if len(parts) == 2 {
		return parts[0] + " and " + parts[1]
	}
	last := parts[len(parts)-1]
	rest := strings.Join(parts[:len(parts)-1], ", ")
	return rest + ", and " + last
}

func initialMonitorModel(connInfo string, actions chan<- func(*terminal.Terminal)) monitorModel {
	// Text line sent to the terminal screen
	ti := textinput.New()
	ti.Placeholder = "text to send"
	ti.CharLimit = stum.Cols
	ti.Width = stum.Cols
	ti.Focus()

	return monitorModel{
		connInfo:      connInfo,
		actions:       actions,
		log:           make([]logEntry, 0),
		maxLogEntries: 100,
		input:         ti,
		started:       time.Now(),
		width:         80,
		height:        24,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(monitorTickCmd(), textinput.Blink)
}

func monitorTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return monitorTickMsg(t)
	})
}

// do queues an action for the pump goroutine, dropping it when the queue is full
func (m *monitorModel) do(desc string, act func(*terminal.Terminal)) {
	if m.lost {
		m.addLogEntry(desc+": connection lost", levelError)
		return
	}
	select {
	case m.actions <- act:
		m.addLogEntry(desc, levelInfo)
	default:
		m.addLogEntry(desc+": busy, try again", levelError)
	}
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "ctrl+o":
			m.do("Opening session", func(t *terminal.Terminal) {
				if err := t.StartSession(2*time.Second, nil, nil); err != nil {
					glog.Warningf("Session open: %v", err)
				}
			})
			return m, nil

		case "ctrl+x":
			m.do("Closing session", func(t *terminal.Terminal) {
				t.EndSession(true)
			})
			return m, nil

		case "ctrl+l":
			m.do("Clearing screen", func(t *terminal.Terminal) {
				t.ClearScreen()
			})
			return m, nil

		case "enter":
			text := m.input.Value()
			m.input.SetValue("")
			if text == "" {
				return m, nil
			}
			m.do(fmt.Sprintf("Sent %q", text), func(t *terminal.Terminal) {
				t.Println(text)
			})
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case monitorTickMsg:
		return m, monitorTickCmd()

	case monitorStatusMsg:
		prev := m.status
		m.status = monitorStatus(msg)
		if m.hasStatus {
			if prev.session != m.status.session {
				m.addLogEntry(fmt.Sprintf("Session %s -> %s", prev.session, m.status.session), levelInfo)
			}
			if prev.powered != m.status.powered {
				m.addLogEntry("Terminal power "+powerLabel(m.status.powered), levelInfo)
			}
		}
		m.hasStatus = true
		return m, nil

	case monitorEventsMsg:
		for _, ev := range msg.events {
			level := levelInfo
			if ev.Type == stum.EventSep {
				level = levelKey
			}
			m.log = append(m.log, logEntry{timestamp: msg.at, message: stum.FormatEvent(ev), level: level})
		}
		m.trimLog()
		return m, nil

	case connectionLostMsg:
		m.lost = true
		m.addLogEntry("Connection lost", levelError)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *monitorModel) addLogEntry(message string, level logLevel) {
	m.log = append(m.log, logEntry{
		timestamp: time.Now(),
		message:   message,
		level:     level,
	})
	m.trimLog()
}

func (m *monitorModel) trimLog() {
	// Keep only last N entries
	if len(m.log) > m.maxLogEntries {
		m.log = m.log[len(m.log)-m.maxLogEntries:]
	}
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("TELETEL - MONITOR"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Up %s | Esc to quit",
		m.connInfo, formatUptime(time.Since(m.started)))))
	s.WriteString("\n\n")

	// Link state
	switch {
	case m.lost:
		s.WriteString(errorStyle.Render("✗ Connection lost"))
	case !m.hasStatus:
		s.WriteString(warningStyle.Render("⏳ Waiting for link..."))
	default:
		sessionStyle := warningStyle
		if m.status.session == terminal.SessionOpen {
			sessionStyle = valueStyle
		}
		powerStyle := valueStyle
		if !m.status.powered {
			powerStyle = errorStyle
		}
		charset := "G0"
		if m.status.charset == stum.G1 {
			charset = "G1"
		}
		s.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s",
			labelStyle.Render("Session:"), sessionStyle.Render(m.status.session.String()),
			labelStyle.Render("Power:"), powerStyle.Render(powerLabel(m.status.powered)),
			labelStyle.Render("Charset:"), valueStyle.Render(charset),
		))
	}
	s.WriteString("\n\n")

	// Statistics
	st := m.status.stats
	statsContent := strings.Builder{}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("Bytes In:"), valueStyle.Render(fmt.Sprintf("%d", st.BytesIn)),
		labelStyle.Render("Bytes Out:"), valueStyle.Render(fmt.Sprintf("%d", st.BytesOut)),
		labelStyle.Render("Events:"), valueStyle.Render(fmt.Sprintf("%d", st.TotalEvents)),
	))
	statsContent.WriteString(fmt.Sprintf("%s %d   %s %d   %s %d   %s %d\n",
		labelStyle.Render("Chars:"), st.Chars,
		labelStyle.Render("SEP:"), st.Seps,
		labelStyle.Render("ESC:"), st.EscSeqs,
		labelStyle.Render("Controls:"), st.Controls,
	))

	if st.Malformed > 0 || st.Dropped > 0 {
		statsContent.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			labelStyle.Render("Malformed:"), errorStyle.Render(fmt.Sprintf("%d", st.Malformed)),
			labelStyle.Render("Queue Drops:"), errorStyle.Render(fmt.Sprintf("%d", st.Dropped)),
		))
	}

	if st.TxSucceeded+st.TxTimedOut+st.TxCancelled+st.TxRejected > 0 {
		statsContent.WriteString(fmt.Sprintf("%s %s %s\n",
			labelStyle.Render("Transactions:"),
			valueStyle.Render(fmt.Sprintf("%d ok", st.TxSucceeded)),
			warningStyle.Render(fmt.Sprintf("%d timeout, %d cancelled, %d rejected", st.TxTimedOut, st.TxCancelled, st.TxRejected)),
		))
	}

	elapsed := time.Since(st.StartTime).Seconds()
	var byteRate, eventRate float64
	if m.hasStatus && elapsed > 0 {
		byteRate = float64(st.BytesIn) / elapsed
		eventRate = float64(st.TotalEvents) / elapsed
	}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s",
		labelStyle.Render("Byte Rate:"), valueStyle.Render(fmt.Sprintf("%.1f B/s", byteRate)),
		labelStyle.Render("Event Rate:"), valueStyle.Render(fmt.Sprintf("%.1f ev/s", eventRate)),
	))

	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	// Event log
	s.WriteString(labelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	// Calculate how many log entries we can show
	logHeight := m.height - 17 // Reserve space for header, stats and input
	if logHeight < 5 {
		logHeight = 5
	}

	logContent := strings.Builder{}
	startIdx := len(m.log) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	if len(m.log) == 0 {
		logContent.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.log); i++ {
			entry := m.log[i]
			timestamp := headerStyle.Render(entry.timestamp.Format("15:04:05.000"))
			switch entry.level {
			case levelError:
				logContent.WriteString(fmt.Sprintf("%s %s\n", timestamp, errorStyle.Render("✗ "+entry.message)))
			case levelKey:
				logContent.WriteString(fmt.Sprintf("%s %s\n", timestamp, valueStyle.Render("⏎ "+entry.message)))
			default:
				logContent.WriteString(fmt.Sprintf("%s %s\n", timestamp, warningStyle.Render("ℹ "+entry.message)))
			}
		}
	}

	s.WriteString(boxStyle.Width(m.width - 4).Render(logContent.String()))
	s.WriteString("\n")

	// Input line
	s.WriteString(labelStyle.Render("Send: "))
	s.WriteString(m.input.View())
	s.WriteString("\n")
	s.WriteString(headerStyle.Render("Enter send | Ctrl+O open session | Ctrl+X close session | Ctrl+L clear screen"))

	return s.String()
}
