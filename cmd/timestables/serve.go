package main

import (
	"os"

	"github.com/lox/timestables/cmd/timestables/shared"
	"github.com/lox/timestables/internal/quiz"
	"github.com/lox/timestables/internal/remote"
)

// ServeCmd exposes the quiz over websocket.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config, e.g. :8080)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	logger := shared.SetupLogger(os.Stderr, cfg.UI.LogLevel, g.Debug)
	logger.Info("Starting timestables bridge", "addr", addr, "version", version)

	srv := remote.NewServer(addr, func() *quiz.Engine {
		return newEngine(cfg, logger.With("component", "session"))
	}, logger)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("Server stopped", "error", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}
