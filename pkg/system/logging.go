// SPDX-FileCopyrightText: 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package system

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FallbackLoggerName names the diagnostic logger used when mail delivery fails.
const FallbackLoggerName = "fallback"

// NewLogger builds the process logger. Debug mode uses the development
// config, otherwise the production config. Extra cores (typically the
// notification sink) are tee'd next to the console output so every log
// call reaches them.
func NewLogger(debug bool, extra ...zapcore.Core) (*zap.Logger, error) {
	var zlog *zap.Logger
	var err error
	if debug {
		zlog, err = zap.NewDevelopment()
	} else {
		zlog, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return zlog, nil
	}
	return zlog.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(append([]zapcore.Core{c}, extra...)...)
	})), nil
}

// NewFallbackLogger returns a logger that writes JSON lines to w only. It is
// never connected to the notification sink, so anything logged here cannot
// trigger another notification. A nil w means stderr.
func NewFallbackLogger(w zapcore.WriteSyncer) *zap.SugaredLogger {
	if w == nil {
		w = zapcore.Lock(os.Stderr)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, zapcore.DebugLevel)
	return zap.New(core).Named(FallbackLoggerName).Sugar()
}
