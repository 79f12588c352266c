// Package tui is the terminal presentation layer. It renders engine
// snapshots and turns key presses into engine intents; it holds no game
// state of its own beyond cursor positions.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/timestables/internal/quiz"
)

const (
	setupColumns = 3
	guessColumns = 3
)

// stateChangedMsg tells the model the engine published a new state.
type stateChangedMsg struct {
	intent string
}

// gameFinishedMsg carries the final score of a completed game.
type gameFinishedMsg struct {
	score quiz.Score
}

// engineListener forwards engine events into the bubbletea loop. Sends never
// block: the model always re-reads the latest snapshot, so a dropped signal
// loses nothing.
type engineListener struct {
	events chan tea.Msg
}

func (l *engineListener) OnEvent(event quiz.GameEvent) {
	var msg tea.Msg
	switch e := event.(type) {
	case quiz.StateChangedEvent:
		msg = stateChangedMsg{intent: e.Intent}
	case quiz.GameFinishedEvent:
		msg = gameFinishedMsg{score: e.Score}
	default:
		return
	}
	select {
	case l.events <- msg:
	default:
	}
}

// Model is the bubbletea model for a quiz session.
type Model struct {
	engine   *quiz.Engine
	logger   *log.Logger
	listener *engineListener

	keys keyMap
	help help.Model

	snapshot    quiz.Snapshot
	tableCursor int
	guessCursor int

	width    int
	height   int
	quitting bool
}

// New creates a model driving engine and subscribes it to engine events.
// Call Close when the program exits.
func New(engine *quiz.Engine, logger *log.Logger) *Model {
	m := &Model{
		engine:   engine,
		logger:   logger.WithPrefix("tui"),
		listener: &engineListener{events: make(chan tea.Msg, 16)},
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	engine.Subscribe(m.listener)
	m.refresh()
	return m
}

// Close detaches the model from its engine.
func (m *Model) Close() {
	m.engine.Unsubscribe(m.listener)
}

// Init starts listening for engine events.
func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.listener.events
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		m.logger.Debug("State changed", "intent", msg.intent)
		m.refresh()
		return m, m.waitForEvent()

	case gameFinishedMsg:
		m.logger.Info("Game finished",
			"correct", msg.score.Correct,
			"total", msg.score.Total,
			"accuracy", fmt.Sprintf("%.0f%%", msg.score.Accuracy()))
		return m, m.waitForEvent()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.snapshot.Phase {
	case quiz.PhaseSetup:
		m.handleSetupKey(msg)
	case quiz.PhaseRunning:
		m.handlePlayKey(msg)
	case quiz.PhaseFinished:
		if key.Matches(msg, m.keys.Restart) {
			m.engine.Reset()
		}
	}

	// The engine also signals through the listener; reading here keeps the
	// view in step with the key press.
	m.refresh()
	return m, nil
}

func (m *Model) handleSetupKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.tableCursor = moveCursor(m.tableCursor, -setupColumns, quiz.TableCount)
	case key.Matches(msg, m.keys.Down):
		m.tableCursor = moveCursor(m.tableCursor, setupColumns, quiz.TableCount)
	case key.Matches(msg, m.keys.Left):
		m.tableCursor = moveCursor(m.tableCursor, -1, quiz.TableCount)
	case key.Matches(msg, m.keys.Right):
		m.tableCursor = moveCursor(m.tableCursor, 1, quiz.TableCount)
	case key.Matches(msg, m.keys.Toggle):
		m.engine.ToggleTable(m.tableCursor)
	case key.Matches(msg, m.keys.Tier):
		m.engine.SetTier(m.snapshot.Tier.Next())
	case key.Matches(msg, m.keys.Start):
		m.engine.Start()
	}
}

func (m *Model) handlePlayKey(msg tea.KeyMsg) {
	if key.Matches(msg, m.keys.Abandon) {
		m.engine.Reset()
		return
	}

	if m.snapshot.Answered {
		switch {
		case key.Matches(msg, m.keys.Advance):
			m.engine.Advance()
		case key.Matches(msg, m.keys.Restart):
			m.engine.Reset()
		}
		return
	}

	switch {
	case key.Matches(msg, m.keys.Pick):
		m.guessCursor = int(msg.Runes[0] - '1')
		m.engine.SubmitGuess(m.guessCursor)
	case key.Matches(msg, m.keys.Guess):
		m.engine.SubmitGuess(m.guessCursor)
	case key.Matches(msg, m.keys.Up):
		m.guessCursor = moveCursor(m.guessCursor, -guessColumns, quiz.GuessCount)
	case key.Matches(msg, m.keys.Down):
		m.guessCursor = moveCursor(m.guessCursor, guessColumns, quiz.GuessCount)
	case key.Matches(msg, m.keys.Left):
		m.guessCursor = moveCursor(m.guessCursor, -1, quiz.GuessCount)
	case key.Matches(msg, m.keys.Right):
		m.guessCursor = moveCursor(m.guessCursor, 1, quiz.GuessCount)
	}
}

// moveCursor steps pos by delta, staying put when that leaves the grid.
func moveCursor(pos, delta, size int) int {
	next := pos + delta
	if next < 0 || next >= size {
		return pos
	}
	return next
}

func (m *Model) refresh() {
	prev := m.snapshot.QuestionNumber
	m.snapshot = m.engine.Snapshot()
	if m.snapshot.QuestionNumber != prev {
		m.guessCursor = 0
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.snapshot.Phase {
	case quiz.PhaseRunning:
		body = m.renderPlay()
	case quiz.PhaseFinished:
		body = m.renderFinished()
	default:
		body = m.renderSetup()
	}

	helpView := m.help.View(phaseHelp{
		keys:     m.keys,
		phase:    m.snapshot.Phase,
		answered: m.snapshot.Answered,
	})

	content := lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("Times Tables"),
		"",
		body,
		"",
		helpView,
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m *Model) renderSetup() string {
	var rows []string
	for start := 0; start < quiz.TableCount; start += setupColumns {
		var tiles []string
		for i := start; i < start+setupColumns && i < quiz.TableCount; i++ {
			selected := m.snapshot.Tables.IsSelected(i)
			label := fmt.Sprintf("%d×", i+1)
			if selected {
				label += " ✓"
			}
			style := tableTileStyle(quiz.TableColor(i), selected, i == m.tableCursor)
			tiles = append(tiles, style.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	var tiers []string
	for _, t := range quiz.Tiers {
		if t == m.snapshot.Tier {
			tiers = append(tiers, TierStyle.Render("["+t.String()+"]"))
		} else {
			tiers = append(tiers, InfoStyle.Render(" "+t.String()+" "))
		}
	}

	status := InfoStyle.Render("Select at least one table")
	if m.snapshot.Ready {
		status = SuccessStyle.Render("Press enter to start")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		QuestionStyle.Render("Pick your tables"),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		"Questions: "+strings.Join(tiers, " "),
		"",
		status,
	)
}

func (m *Model) renderPlay() string {
	s := m.snapshot

	progress := InfoStyle.Render(fmt.Sprintf("Question %d of %d", s.QuestionNumber, s.TotalQuestions))
	score := fmt.Sprintf("%s  %s",
		SuccessStyle.Render(fmt.Sprintf("✓ %d", s.NumberCorrect)),
		ErrorStyle.Render(fmt.Sprintf("✗ %d", s.NumberWrong)))

	answer := "?"
	if s.Answered {
		answer = fmt.Sprint(s.Product())
	}
	question := QuestionStyle.Render(fmt.Sprintf("%d × %d = %s", s.Multiplier, s.Multiplicand, answer))

	var rows []string
	for start := 0; start < len(s.Guesses); start += guessColumns {
		var tiles []string
		for i := start; i < start+guessColumns && i < len(s.Guesses); i++ {
			tiles = append(tiles, m.renderGuess(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	feedback := ""
	if s.Answered {
		if s.LastGuessCorrect {
			feedback = SuccessStyle.Render("Correct!")
		} else {
			feedback = ErrorStyle.Render(fmt.Sprintf("Wrong! The answer is %d", s.Product()))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		progress+"   "+score,
		"",
		question,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		feedback,
	)
}

func (m *Model) renderGuess(i int) string {
	s := m.snapshot
	label := fmt.Sprintf("%d) %d", i+1, s.Guesses[i])
	style := TileStyle
	if !s.Answered && i == m.guessCursor {
		style = CursorTileStyle
	}

	if s.Answered {
		switch {
		case i == s.CorrectIndex:
			label += " ✓"
			style = style.BorderForeground(paletteColors["green"]).Foreground(paletteColors["green"])
		case i == s.GuessIndex:
			label += " ✗"
			style = style.BorderForeground(paletteColors["red"]).Foreground(paletteColors["red"])
		default:
			style = style.Faint(true)
		}
	}
	return style.Render(label)
}

func (m *Model) renderFinished() string {
	s := m.snapshot
	var b strings.Builder

	b.WriteString(QuestionStyle.Render("Finished!"))
	b.WriteString("\n\n")

	if s.Score == nil {
		return b.String()
	}
	score := *s.Score
	b.WriteString(fmt.Sprintf("Correct: %s  Wrong: %s  Accuracy: %s\n",
		SuccessStyle.Render(fmt.Sprint(score.Correct)),
		ErrorStyle.Render(fmt.Sprint(score.Wrong)),
		WarningStyle.Render(fmt.Sprintf("%.0f%%", score.Accuracy()))))
	if skipped := score.Total - score.Answered(); skipped > 0 {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Skipped: %d", skipped)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, ts := range score.Tables {
		color := lipgloss.NewStyle().Foreground(paletteColors[quiz.TableColor(ts.Table)])
		b.WriteString(fmt.Sprintf("%s table: %d/%d\n",
			color.Render(fmt.Sprintf("%2d×", ts.Table+1)), ts.Correct, ts.Answered()))
	}
	return b.String()
}
