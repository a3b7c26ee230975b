// Package logging builds the process logger, including the configurable
// message-suppression filter that stands in for the ad hoc console filtering
// the editor host page used to do.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/clipforge/clipforge-engine/pkg/config"
)

// New builds a zap logger from config. Env "local" selects the development
// encoder; anything else gets production JSON output.
func New(cfg config.LogConfig, env string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	if env == "local" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build(WithSuppression(cfg.Suppress))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger, nil
}

// WithSuppression returns a zap option that drops any entry whose message
// contains one of the given substrings. An empty list is a no-op.
func WithSuppression(patterns []string) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		if len(patterns) == 0 {
			return core
		}
		return &suppressCore{Core: core, patterns: patterns}
	})
}

// suppressCore filters entries by message substring before delegating.
type suppressCore struct {
	zapcore.Core
	patterns []string
}

func (c *suppressCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	for _, pattern := range c.patterns {
		if strings.Contains(ent.Message, pattern) {
			return ce
		}
	}
	return c.Core.Check(ent, ce)
}

func (c *suppressCore) With(fields []zapcore.Field) zapcore.Core {
	return &suppressCore{Core: c.Core.With(fields), patterns: c.patterns}
}
