// Package logging provides the engine's zap logger and its
// context-carrying helpers. Grounded on the teacher's
// pkg/shared/logging/log.go, renamed to this project's env var.
package logging

import (
	"context"
	"os"

	"go.uber.org/zap"
)

// NewLogger returns a new zap.SugaredLogger. RULEFLOW_DEBUG=true switches
// to zap's development config (human-readable, caller-annotated); the
// default is the production JSON config.
func NewLogger() *zap.SugaredLogger {
	var config zap.Config
	if debug, ok := os.LookupEnv("RULEFLOW_DEBUG"); ok && debug == "true" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.OutputPaths = []string{"stdout"}
	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger.Named("ruleflow").Sugar()
}

type loggerKey struct{}

// WithLogger returns a copy of parent carrying logger.
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stashed in ctx, or a freshly built
// default logger if none was attached.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}
	return NewLogger()
}
