// Package logging builds the zap.Logger every front end shares, configured
// from a config.LoggingSection. The MCP server never writes to stdout
// (JSON-RPC owns that stream exclusively), so its logger is always routed to
// stderr and, when configured, a tee'd log file.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger at the given level ("debug", "info", "warn", "error"),
// writing to stderr and, if file is non-empty, additionally tee'ing to that
// file. Debug level builds on zap.NewDevelopmentConfig (console-friendly,
// stack traces on warn+); everything else builds on zap.NewProductionConfig
// (JSON, stack traces on error+). An unrecognised level falls back to info.
func New(level, file string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	var cfg zap.Config
	if atomicLevel.Level() == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = atomicLevel
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return nil, fmt.Errorf("building base logger: %w", err)
	}
	if file == "" {
		return logger, nil
	}

	sink, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", file, err)
	}
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(cfg.EncoderConfig), zapcore.AddSync(sink), atomicLevel)
	tee := zapcore.NewTee(logger.Core(), fileCore)
	return zap.New(tee, zap.AddCaller()), nil
}

// Nop returns a logger that discards everything, used when a caller (tests,
// a CLI invocation that never asked for logging) has no use for one.
func Nop() *zap.Logger { return zap.NewNop() }
