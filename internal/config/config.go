// Package config loads the timestables HCL configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/timestables/internal/quiz"
)

// DefaultFilename is the config file looked up when none is given.
const DefaultFilename = "timestables.hcl"

// EnvPrefix prefixes every environment override, e.g. TIMESTABLES_QUIZ_SEED.
const EnvPrefix = "TIMESTABLES_"

// Config represents the complete configuration
type Config struct {
	Quiz   QuizSettings   `hcl:"quiz,block" envPrefix:"QUIZ_"`
	UI     UISettings     `hcl:"ui,block" envPrefix:"UI_"`
	Server ServerSettings `hcl:"server,block" envPrefix:"SERVER_"`
}

// QuizSettings controls game behaviour
type QuizSettings struct {
	// RevealDelayMS is how long an answer stays revealed before the next
	// question. Negative disables automatic advancing.
	RevealDelayMS int    `hcl:"reveal_delay_ms,optional" env:"REVEAL_DELAY_MS"`
	DefaultTier   string `hcl:"default_tier,optional" env:"DEFAULT_TIER"`
	// Seed fixes the random source; 0 picks a fresh seed per run.
	Seed int64 `hcl:"seed,optional" env:"SEED"`
}

// UISettings contains terminal interface settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional" env:"LOG_LEVEL"`
	LogFile  string `hcl:"log_file,optional" env:"LOG_FILE"`
	Theme    string `hcl:"theme,optional" env:"THEME"`
}

// ServerSettings contains websocket bridge settings
type ServerSettings struct {
	Address string `hcl:"address,optional" env:"ADDRESS"`
	Port    int    `hcl:"port,optional" env:"PORT"`
}

// file mirrors Config with optional blocks so a partial file decodes.
type file struct {
	Quiz   *QuizSettings   `hcl:"quiz,block"`
	UI     *UISettings     `hcl:"ui,block"`
	Server *ServerSettings `hcl:"server,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Quiz: QuizSettings{
			RevealDelayMS: int(quiz.DefaultRevealDelay / time.Millisecond),
			DefaultTier:   quiz.DefaultTier.String(),
		},
		UI: UISettings{
			LogLevel: "info",
			LogFile:  "timestables.log",
			Theme:    "default",
		},
		Server: ServerSettings{
			Address: "localhost",
			Port:    8080,
		},
	}
}

// Load reads configuration from an HCL file, then applies environment
// overrides. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	config, err := loadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return config, nil
}

func loadFile(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	defaults := Default()
	if raw.Quiz != nil {
		config.Quiz = *raw.Quiz
	}
	if raw.UI != nil {
		config.UI = *raw.UI
	}
	if raw.Server != nil {
		config.Server = *raw.Server
	}

	// Apply defaults for missing values
	if config.Quiz.RevealDelayMS == 0 {
		config.Quiz.RevealDelayMS = defaults.Quiz.RevealDelayMS
	}
	if config.Quiz.DefaultTier == "" {
		config.Quiz.DefaultTier = defaults.Quiz.DefaultTier
	}
	if config.UI.LogLevel == "" {
		config.UI.LogLevel = defaults.UI.LogLevel
	}
	if config.UI.LogFile == "" {
		config.UI.LogFile = defaults.UI.LogFile
	}
	if config.UI.Theme == "" {
		config.UI.Theme = defaults.UI.Theme
	}
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := quiz.ParseTier(c.Quiz.DefaultTier); err != nil {
		return fmt.Errorf("quiz: %w", err)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	validThemes := map[string]bool{
		"default": true,
		"plain":   true,
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	return nil
}

// RevealDelay returns the reveal delay as a duration.
func (c *Config) RevealDelay() time.Duration {
	return time.Duration(c.Quiz.RevealDelayMS) * time.Millisecond
}

// Tier returns the configured default tier. Call Validate first.
func (c *Config) Tier() quiz.Tier {
	t, err := quiz.ParseTier(c.Quiz.DefaultTier)
	if err != nil {
		return quiz.DefaultTier
	}
	return t
}

// ServerAddress returns the host:port the bridge listens on.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
