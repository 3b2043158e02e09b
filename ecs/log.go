package ecs

import "go.uber.org/zap"

// NewDevelopmentLogger builds the zap logger configuration this module uses
// for its own diagnostics: colored level, no timestamp or caller noise, so
// it reads well interleaved with a host application's own log lines.
func NewDevelopmentLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	logger := zap.Must(cfg.Build())
	return logger.Named("ecs")
}
