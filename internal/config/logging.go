package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"ANNOTATE_LOG_LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" env:"ANNOTATE_LOG_FORMAT"` // json, text
}

// ZapLevel parses Level; empty means info.
func (c LoggingConfig) ZapLevel() (zapcore.Level, error) {
	if c.Level == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(c.Level)
}

// IsText reports whether human-readable console output was requested.
func (c LoggingConfig) IsText() bool {
	return c.Format == "text" || c.Format == "console"
}

func (c LoggingConfig) validate() error {
	if _, err := c.ZapLevel(); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Format {
	case "", "json", "text", "console":
		return nil
	default:
		return fmt.Errorf("logging.format %q is not one of json, text", c.Format)
	}
}
