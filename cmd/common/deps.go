// Package common provides shared utilities for command implementations.
package common

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jonesrussell/fightcrawl/internal/config"
	"github.com/jonesrussell/fightcrawl/internal/logger"
)

// CommandDeps holds common dependencies for all commands.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}

// NewCommandDeps loads the configuration held by v and builds the logger.
func NewCommandDeps(v *viper.Viper) (CommandDeps, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logging.LoggerConfig())
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}
	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	log.Debug("Configuration loaded", "config", cfg.String())
	return deps, nil
}
