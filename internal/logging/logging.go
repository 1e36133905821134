// Package logging installs the process-wide zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	PresetDevelopment = "development"
	PresetProduction  = "production"
)

// New builds a logger for the given preset.
func New(preset string) (*zap.Logger, error) {
	var cfg zap.Config
	switch preset {
	case PresetDevelopment:
		cfg = zap.NewDevelopmentConfig()
	case PresetProduction:
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unexpected log preset: %v", preset)
	}

	return cfg.Build()
}

// Configure builds a logger for preset and installs it as the zap global,
// which is what zap.L and zap.S return afterwards.
func Configure(preset string) error {
	logger, err := New(preset)
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(logger)
	return nil
}
