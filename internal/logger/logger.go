// Package logger holds the process-wide structured logger.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. It discards everything until [Initialize] is
// called.
var Logger = zap.NewNop().Sugar()

// Initialize replaces [Logger] with one writing to stderr at the given level.
// Stdout is left alone since it carries the LSP stream when serving stdio.
func Initialize(level string, jsonOutput bool) error {
	l, err := New(level, jsonOutput, zapcore.Lock(os.Stderr))
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

// New returns a logger writing to w. An empty level means info.
func New(level string, jsonOutput bool, w zapcore.WriteSyncer) (*zap.SugaredLogger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		var err error
		if lvl, err = zapcore.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		encoder = zapcore.NewConsoleEncoder(cfg)
	}
	return zap.New(zapcore.NewCore(encoder, w, lvl)).Sugar(), nil
}

// Sync flushes buffered entries of [Logger].
func Sync() {
	_ = Logger.Sync()
}
