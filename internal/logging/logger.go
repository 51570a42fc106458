package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvVar overrides the level when none is given explicitly.
const LogLevelEnvVar = "SPLASHSCREEN_LOG_LEVEL"

// ParseLevel maps debug, info, warn or error to a zap level. An empty level
// falls back to LogLevelEnvVar, then to info.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
}

// New builds a development logger writing to path. The terminal belongs to
// the TUI, so with no path logging is disabled.
func New(level, path string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(lvl)
	logCfg.OutputPaths = []string{path}
	logCfg.ErrorOutputPaths = []string{path}
	logCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logCfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	logger, err := logCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
