package system

import (
	"go.uber.org/zap"
)

// NewTestLogger returns a sugared logger configured for tests. It mirrors the
// development logger but disables automatic stacktraces so normal test logs
// don't include stack frames.
func NewTestLogger() *zap.SugaredLogger {
	return NewTestZapLogger().Sugar()
}

// NewTestZapLogger returns a non-sugared *zap.Logger for tests that need to
// attach options or cores of their own.
func NewTestZapLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	logger, _ := cfg.Build()
	return logger
}
