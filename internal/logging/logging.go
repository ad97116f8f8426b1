// Package logging constructs the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
)

// New returns a production JSON logger, or a human-readable development
// logger when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
