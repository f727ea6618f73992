package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/bookrecs/internal/logtail"
)

// logLevels is the cycle order of the minimum-level filter.
var logLevels = []zerolog.Level{
	zerolog.TraceLevel,
	zerolog.DebugLevel,
	zerolog.InfoLevel,
	zerolog.WarnLevel,
	zerolog.ErrorLevel,
}

// logState holds the Logs page state.
type logState struct {
	viewport viewport.Model
	entries  []logtail.Entry
	minLevel zerolog.Level
	follow   bool
	read     bool
	err      error
}

func newLogState() logState {
	return logState{
		viewport: viewport.New(0, 0),
		minLevel: zerolog.TraceLevel,
		follow:   true,
	}
}

// logsMsg carries a fresh read of the log file.
type logsMsg struct {
	entries []logtail.Entry
	err     error
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, LogFetchLimit)
		return logsMsg{entries: entries, err: err}
	}
}

// applyLogs stores a read result. A failed read keeps the previous lines.
func (m *Model) applyLogs(msg logsMsg) {
	m.logs.read = true
	m.logs.err = msg.err
	if msg.err == nil {
		m.logs.entries = msg.entries
	}
	m.refreshLogViewport()
}

func (m *Model) resizeLogViewport() {
	m.logs.viewport.Width = max(m.width, 1)
	// Status line below the viewport
	m.logs.viewport.Height = max(m.contentHeight()-1, 1)
	m.refreshLogViewport()
}

func (m *Model) refreshLogViewport() {
	m.logs.viewport.SetContent(m.renderLogContent())
	if m.logs.follow {
		m.logs.viewport.GotoBottom()
	}
}

// visibleEntries returns the entries passing the level filter.
func (m Model) visibleEntries() []logtail.Entry {
	return logtail.Filter(m.logs.entries, m.logs.minLevel)
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	entries := m.visibleEntries()
	if len(entries) == 0 {
		if !m.logs.read {
			return styles.MutedText.Render("Reading log...")
		}
		return styles.MutedText.Render("No log entries")
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, m.formatLogEntry(e))
	}
	return strings.Join(lines, "\n")
}

// formatLogEntry renders one entry as
// "15:04:05 INF [component] message key=value error=...".
func (m Model) formatLogEntry(e logtail.Entry) string {
	styles := m.theme.Styles()
	if e.Level == zerolog.NoLevel && e.Time.IsZero() {
		return styles.Text.Render(e.Message)
	}

	var parts []string
	if !e.Time.IsZero() {
		parts = append(parts, styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
	}
	parts = append(parts, m.levelStyle(e.Level).Render(levelLabel(e.Level)))
	if e.Component != "" {
		parts = append(parts, styles.AccentText.Render("["+e.Component+"]"))
	}
	parts = append(parts, styles.Text.Render(e.Message))
	for _, k := range e.FieldKeys() {
		parts = append(parts, styles.MutedText.Render(k+"=")+styles.Text.Render(e.Fields[k]))
	}
	if e.RequestID != "" {
		parts = append(parts, styles.FaintText.Render("request_id="+e.RequestID))
	}
	if e.Error != "" {
		parts = append(parts, styles.DangerText.Render("error="+e.Error))
	}
	return strings.Join(parts, " ")
}

func levelLabel(l zerolog.Level) string {
	switch l {
	case zerolog.TraceLevel:
		return "TRC"
	case zerolog.DebugLevel:
		return "DBG"
	case zerolog.InfoLevel:
		return "INF"
	case zerolog.WarnLevel:
		return "WRN"
	case zerolog.ErrorLevel:
		return "ERR"
	case zerolog.FatalLevel:
		return "FTL"
	case zerolog.PanicLevel:
		return "PNC"
	default:
		return "???"
	}
}

func (m Model) levelStyle(l zerolog.Level) lipgloss.Style {
	styles := m.theme.Styles()
	switch {
	case l >= zerolog.ErrorLevel && l <= zerolog.PanicLevel:
		return styles.DangerText
	case l == zerolog.WarnLevel:
		return styles.WarningText
	case l == zerolog.InfoLevel:
		return styles.InfoText
	default:
		return styles.FaintText
	}
}

func (m Model) renderLogs(width, height int) string {
	styles := m.theme.Styles()

	follow := "off"
	if m.logs.follow {
		follow = "on"
	}
	status := []string{
		styles.AccentText.Render(filepath.Base(m.logPath)),
		styles.FaintText.Render(fmt.Sprintf("%d entries", len(m.visibleEntries()))),
		styles.FaintText.Render("level ≥ " + m.logs.minLevel.String()),
		styles.FaintText.Render("follow " + follow),
	}
	if m.logs.err != nil {
		status = append(status, styles.DangerText.Render(truncate(m.logs.err.Error(), 60)))
	} else if width >= LayoutCompactWidth {
		status = append(status, styles.FaintText.Render(truncateMiddle(m.logPath, 50)))
	}
	sep := " " + styles.FaintText.Render("•") + " "
	return m.logs.viewport.View() + "\n" + strings.Join(status, sep)
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vp := &m.logs.viewport
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logs.follow = !m.logs.follow
		if m.logs.follow {
			vp.GotoBottom()
			return m, readLogsCmd(m.logPath)
		}
	case key.Matches(msg, m.keys.CycleLevel):
		m.logs.minLevel = nextLevel(m.logs.minLevel)
		m.refreshLogViewport()
	case key.Matches(msg, m.keys.Down):
		vp.LineDown(1)
		m.logs.follow = false
	case key.Matches(msg, m.keys.Up):
		vp.LineUp(1)
		m.logs.follow = false
	case key.Matches(msg, m.keys.HalfPageDown):
		vp.HalfViewDown()
		m.logs.follow = false
	case key.Matches(msg, m.keys.HalfPageUp):
		vp.HalfViewUp()
		m.logs.follow = false
	case key.Matches(msg, m.keys.Top):
		vp.GotoTop()
		m.logs.follow = false
	case key.Matches(msg, m.keys.Bottom):
		vp.GotoBottom()
		m.logs.follow = true
	}
	return m, nil
}

// nextLevel returns the level after l in logLevels.
func nextLevel(l zerolog.Level) zerolog.Level {
	for i, lvl := range logLevels {
		if lvl == l {
			return logLevels[(i+1)%len(logLevels)]
		}
	}
	return logLevels[0]
}
