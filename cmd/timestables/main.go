package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/timestables/internal/config"
	"github.com/lox/timestables/internal/quiz"
	"github.com/lox/timestables/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config string `short:"c" default:"timestables.hcl" help:"Path to the HCL config file" type:"path"`
	Debug  bool   `help:"Enable debug logging"`
	Seed   int64  `help:"Deterministic RNG seed (0 picks a fresh one)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Serve the quiz to a remote presentation layer over websocket"`
	Generate GenerateCmd      `cmd:"" help:"Print or export a generated question set"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("timestables"),
		kong.Description("Multiplication tables quiz"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads the config file and applies flag overrides.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Seed != 0 {
		cfg.Quiz.Seed = g.Seed
	}
	if g.Debug {
		cfg.UI.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newEngine builds an engine from the config, logging the seed so a game can
// be replayed.
func newEngine(cfg *config.Config, logger *log.Logger) *quiz.Engine {
	rng, seed := randutil.FromSeed(cfg.Quiz.Seed)
	logger.Info("Creating engine", "seed", seed, "reveal_delay", cfg.RevealDelay())

	engine := quiz.NewEngine(quiz.EngineOptions{
		RevealDelay: cfg.RevealDelay(),
		Rand:        rng,
		Logger:      logger,
	})
	engine.SetDefaultTier(cfg.Tier())
	return engine
}
