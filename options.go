package whydep

import (
	"context"
	"errors"
	"log/slog"
)

// Option configures the explanation API.
type Option func(*config) error

// config holds the explanation API configuration.
type config struct {
	// logger is the structured logger for debug output. If nil, logging is
	// disabled (silent mode). log/slog is used rather than a custom
	// interface so users can plug in any backend via slog handlers.
	logger *slog.Logger

	// concurrency bounds the number of chains ExplainAll computes at once.
	// Zero means one goroutine per target.
	concurrency int
}

// WithLogger sets a structured logger for explanation diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	chain, err := whydep.Explain(g, "requests", whydep.WithLogger(slog.Default()))
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithConcurrency bounds the number of concurrent chain computations in
// ExplainAll. n must be positive.
func WithConcurrency(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.New("concurrency must be positive")
		}
		c.concurrency = n
		return nil
	}
}

// newConfig applies the given options and validates the result.
func newConfig(opts ...Option) (*config, error) {
	c := &config{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// log returns the configured logger, or a no-op logger if none was set.
// Internal code can call logging methods without nil checks; libraries stay
// silent unless the caller opts in via WithLogger.
func (c *config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
