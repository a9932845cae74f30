// Package logging builds the zap logger shared by the server, the CLI and the
// parser.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// ZapConfig selects the level and encoding of the logger.
type ZapConfig struct {
	Level    string
	Encoding string
	// Stdio must be set when stdout carries the MCP protocol.
	Stdio bool
}

// New returns a logger writing to stderr. stdout is never used so that it
// stays free for MCP stdio traffic.
func New(cfg ZapConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch cfg.Encoding {
	case "", EncodingConsole:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		if !cfg.Stdio {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encCfg)
	case EncodingJSON:
		encoder = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("invalid log encoding %q (must be %s or %s)", cfg.Encoding, EncodingConsole, EncodingJSON)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)
	return zap.New(core, zap.AddCaller()), nil
}

// Must is New for main packages; it falls back to a no-op logger on error.
func Must(cfg ZapConfig) *zap.Logger {
	logger, err := New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
		return zap.NewNop()
	}
	return logger
}
