// Package logging builds the zap logger shared by the catalog commands.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options control logger construction.
type Options struct {
	// Path is the log file. Empty or "stderr" logs to standard error.
	Path    string
	Verbose bool
}

// New returns a production zap logger writing JSON lines to opts.Path.
// The interactive viewer owns the terminal, so it always passes a file.
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	output := "stderr"
	if opts.Path != "" && opts.Path != "stderr" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		output = opts.Path
	}
	config.OutputPaths = []string{output}
	config.ErrorOutputPaths = []string{output}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
