// Package diag provides the shell's internal structured diagnostics —
// fork/exec anomalies, wait(2) reconciliation, terminal startup steps — kept
// strictly separate from the byte-for-byte stdout/stderr job-control output
// the shell itself prints.
package diag

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the shell's diagnostic logger. When verbose is false only
// Warn and above are emitted, so a default run of the shell produces no
// diagnostic noise at all unless something has actually gone wrong.
func NewLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	if !verbose {
		cfg.Level.SetLevel(zap.WarnLevel)
	}
	return zap.Must(cfg.Build()).Named("yash")
}
