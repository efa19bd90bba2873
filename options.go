package notekeep

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Client.
type Option interface {
	apply(*clientConfig)
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	engine  Engine
	latency time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// WithEngine replaces the built-in heuristic engine.
func WithEngine(e Engine) Option {
	return optionFunc(func(c *clientConfig) { c.engine = e })
}

// WithLatency sets the simulated delay of the heuristic engine. Default is none.
func WithLatency(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) { c.latency = d })
}

// WithLogger sets the logger for the heuristic engine.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) { c.logger = l })
}

// WithClock overrides the store time source.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(c *clientConfig) { c.now = now })
}
