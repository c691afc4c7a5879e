// Package logging provides the zap logger used by host-side tools.
// Firmware builds print to the console directly and do not import it.
package logging

import (
	"fmt"
	"os"
	"strings"

	"boardcode-go/board"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar controls verbosity when no level is given explicitly.
// When unset or empty, logging is silent.
const LogLevelEnvVar = "BOARDCODE_LOG_LEVEL"

// Initialize creates the logger at level ("debug", "info", "warn", "error").
// An empty level falls back to BOARDCODE_LOG_LEVEL, then to silent.
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// Set replaces the logger, e.g. with zaptest or an observer in tests.
func Set(l *zap.Logger) { logger = l }

// GetLogger returns the global logger, silent if not initialised.
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

func Debug(msg string, fields ...zap.Field) { GetLogger().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { GetLogger().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { GetLogger().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { GetLogger().Error(msg, fields...) }

// LogRegistry logs a built registry and each of its data-validation warnings.
func LogRegistry(r *board.Registry) {
	syms, _ := r.Symbols()
	Info("board registry ready",
		zap.String("board", r.Board()),
		zap.String("chip", r.Chip()),
		zap.Int("symbols", len(syms)),
	)
	for _, w := range r.Warnings() {
		Warn("board label check",
			zap.String("symbol", w.Symbol),
			zap.String("other", w.Other),
			zap.Int("pin", int(w.Pin)),
			zap.String("detail", w.Msg),
		)
	}
}
