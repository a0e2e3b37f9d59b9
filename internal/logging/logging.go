// Package logging builds the zap loggers used by the CLI and the web server.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a sugared development-style logger writing to w at level.
// Lines carry no timestamp.
func New(w io.Writer, level zapcore.Level) *zap.SugaredLogger {
	return build(w, level, false)
}

func build(w io.Writer, level zapcore.Level, timestamps bool) *zap.SugaredLogger {
	enc := zap.NewDevelopmentEncoderConfig()
	if !timestamps {
		enc.TimeKey = ""
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

// ForCLI logs warnings and up, or everything when verbose.
func ForCLI(w io.Writer, verbose bool) *zap.SugaredLogger {
	if verbose {
		return New(w, zapcore.DebugLevel)
	}
	return New(w, zapcore.WarnLevel)
}

// ForServer returns a timestamped info-level logger for long-running
// processes.
func ForServer(w io.Writer, verbose bool) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	return build(w, level, true)
}

// Nop discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
