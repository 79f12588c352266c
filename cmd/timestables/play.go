package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/timestables/cmd/timestables/shared"
	"github.com/lox/timestables/internal/tui"
)

// PlayCmd runs the quiz in the terminal.
type PlayCmd struct {
	LogFile string `help:"Log file (overrides config)"`
	Theme   string `help:"Colour theme: default or plain (overrides config)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
	if c.Theme != "" {
		cfg.UI.Theme = c.Theme
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	logFile, err := shared.OpenLogFile(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	logger := shared.SetupLogger(logFile, cfg.UI.LogLevel, g.Debug)
	logger.Info("Starting timestables", "config", g.Config, "version", version)

	tui.ApplyTheme(cfg.UI.Theme)

	engine := newEngine(cfg, logger)
	defer engine.Close()

	model := tui.New(engine, logger)
	defer model.Close()

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
