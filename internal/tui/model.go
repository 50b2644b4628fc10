// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sprint/internal/engine"
	"github.com/verte-zerg/sprint/internal/model"
	"github.com/verte-zerg/sprint/internal/stats"
)

const (
	contentWidthPct = 0.70
	title           = "60-Second Typing Challenge"
	subtitle        = "Type the sentence below as quickly and accurately as possible"
)

// TickMsg carries a countdown update from the engine.
type TickMsg struct {
	Snapshot engine.Snapshot
}

// Forwarder delivers engine countdown updates into a running program.
type Forwarder struct {
	program atomic.Pointer[tea.Program]
}

// Attach sets the program that receives updates.
func (f *Forwarder) Attach(p *tea.Program) {
	f.program.Store(p)
}

// Send forwards snap as a TickMsg. It drops updates until a program is
// attached.
func (f *Forwarder) Send(snap engine.Snapshot) {
	if p := f.program.Load(); p != nil {
		p.Send(TickMsg{Snapshot: snap})
	}
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	engine *engine.Engine
	log    *slog.Logger

	input textinput.Model
	keys  keyMap
	help  help.Model

	width  int
	height int

	snap        engine.Snapshot
	showResults bool
	lastResult  *model.Result
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	urgentStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	modalStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#C89A3A")).
				Padding(1, 2)
	modalValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modalLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// NewModel constructs a typing TUI model driving eng.
func NewModel(eng *engine.Engine, log *slog.Logger) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Start typing here..."

	m := &Model{
		engine: eng,
		log:    log,
		input:  input,
		keys:   newKeyMap(),
		help:   help.New(),
	}
	m.prepareInput(eng.Snapshot())
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = m.contentWidth() - utf8.RuneCountInString(m.input.Prompt) - 1
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		if msg.Snapshot.Session != m.snap.Session {
			m.log.Debug("dropping stale tick", "tick_session", msg.Snapshot.Session, "session", m.snap.Session)
			return m, nil
		}
		m.sync(m.engine.Snapshot())
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart), key.Matches(msg, m.keys.Again):
		return m, m.restart()
	case key.Matches(msg, m.keys.Close):
		m.showResults = false
		m.keys.setResultsOpen(false)
		return m, nil
	}
	if m.snap.Phase == engine.PhaseCompleted {
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.submit(value)
	}
	return m, cmd
}

// submit forwards the full input value to the engine and keeps the
// widget in step with what the engine accepted.
func (m *Model) submit(value string) {
	snap := m.engine.SubmitInput(value)
	if snap.Typed != value {
		m.input.SetValue(snap.Typed)
	}
	m.sync(snap)
}

func (m *Model) sync(snap engine.Snapshot) {
	wasCompleted := m.snap.Phase == engine.PhaseCompleted && m.snap.Session == snap.Session
	m.snap = snap
	m.keys.setPhase(snap.Phase)
	if snap.Phase != engine.PhaseCompleted || wasCompleted {
		return
	}
	res := stats.ResultFromSnapshot(snap)
	m.lastResult = &res
	m.showResults = true
	m.keys.setResultsOpen(true)
	m.input.Blur()
	m.log.Info("challenge finished",
		"outcome", stats.Outcome(res),
		"wpm", res.WPM,
		"accuracy", res.Accuracy,
	)
}

func (m *Model) restart() tea.Cmd {
	snap := m.engine.Reset()
	m.showResults = false
	m.lastResult = nil
	m.keys.setResultsOpen(false)
	return m.prepareInput(snap)
}

func (m *Model) prepareInput(snap engine.Snapshot) tea.Cmd {
	m.snap = snap
	m.keys.setPhase(snap.Phase)
	m.input.Reset()
	m.input.CharLimit = utf8.RuneCountInString(snap.Target)
	return m.input.Focus()
}

// Result returns the current session's result once it has completed.
func (m *Model) Result() (model.Result, bool) {
	if m.lastResult == nil {
		return model.Result{}, false
	}
	return *m.lastResult, true
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.snap.Target == "" {
		return ""
	}
	if m.showResults {
		return m.place(m.renderResults())
	}

	cursorIndex := -1
	typedLen := utf8.RuneCountInString(m.snap.Typed)
	if m.snap.Phase != engine.PhaseCompleted && typedLen < utf8.RuneCountInString(m.snap.Target) {
		cursorIndex = typedLen
	}
	styled := buildStyledRunes([]rune(m.snap.Target), []rune(m.snap.Typed), cursorIndex)
	width := m.contentWidth()
	text := renderStyledRunes(styled)
	if m.width > 0 {
		text = wrapStyledRunes(styled, width)
	}

	sections := []string{
		titleStyle.Render(title),
		footerStyle.Render(subtitle),
		"",
		text,
		"",
		m.input.View(),
		"",
		m.renderFooter(),
		m.help.View(m.keys),
	}
	content := lipgloss.NewStyle().Width(width).Render(strings.Join(sections, "\n"))
	return m.place(content)
}

func (m *Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) contentWidth() int {
	width := int(float64(m.width) * contentWidthPct)
	if width < 1 {
		width = 1
	}
	return width
}

func (m *Model) renderFooter() string {
	segments := []string{
		phaseStatus(m.snap.Phase),
		fmt.Sprintf("WPM %.0f", m.snap.WPM),
		fmt.Sprintf("Accuracy %.0f%%", m.snap.Accuracy),
		fmt.Sprintf("Chars %d", m.snap.TypedChars),
	}
	footer := footerStyle.Render(strings.Join(segments, " · ") + " · ")
	timeLeft := fmt.Sprintf("Time %ds", m.snap.TimeRemaining)
	if m.snap.Phase == engine.PhaseActive && m.snap.TimeRemaining <= 10 {
		return footer + urgentStyle.Render(timeLeft)
	}
	return footer + footerStyle.Render(timeLeft)
}

func phaseStatus(p engine.Phase) string {
	switch p {
	case engine.PhaseActive:
		return "Game Active"
	case engine.PhaseCompleted:
		return "Complete!"
	default:
		return "Ready to Start"
	}
}

func (m *Model) renderResults() string {
	if m.lastResult == nil {
		return ""
	}
	res := *m.lastResult
	heading := "Challenge complete!"
	if !res.Finished {
		heading = "Time's up!"
	}
	rows := [][2]string{
		{"WPM", fmt.Sprintf("%.0f", res.WPM)},
		{"Accuracy", fmt.Sprintf("%.0f%%", res.Accuracy)},
		{"Characters", fmt.Sprintf("%d", res.TypedChars)},
		{"Correct", fmt.Sprintf("%d", res.CorrectChars)},
	}
	lines := []string{titleStyle.Render(heading), ""}
	for _, row := range rows {
		lines = append(lines, modalLabelStyle.Render(fmt.Sprintf("%-12s", row[0]))+modalValueStyle.Render(row[1]))
	}
	lines = append(lines, "", currentWordStyle.Render(stats.Rate(res.WPM)), "", m.help.View(m.keys))
	return modalStyle.Render(strings.Join(lines, "\n"))
}
