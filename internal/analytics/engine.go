// Package analytics implements the statistical analysis and automated-insight
// engine: hypothesis tests, correlation analysis, linear regression, trend and
// anomaly detection over series, and cross-variable insight generation.
//
// The engine is stateless apart from one shared configuration value, which is
// published copy-on-write: in-flight computations always observe the snapshot
// that was current when they started.
package analytics

import (
	"sync"

	"github.com/rs/zerolog"
)

// Engine runs all analyses. Safe for concurrent use.
type Engine struct {
	logger zerolog.Logger

	mu     sync.RWMutex
	config Config
}

// NewEngine creates an engine with the given configuration. A zero-value
// logger disables logging; pass zerolog.Nop() explicitly for clarity.
func NewEngine(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{logger: logger, config: cfg}, nil
}

// NewDefaultEngine creates an engine with DefaultConfig and no logging.
func NewDefaultEngine() *Engine {
	e, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		// DefaultConfig always validates.
		panic(err)
	}
	return e
}

// Config returns a copy of the current configuration snapshot.
func (e *Engine) Config() Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config
}

// UpdateConfig merges the partial update into the current configuration and
// publishes the result atomically. Fields left nil retain their prior value.
// Computations already in flight keep the snapshot they started with.
func (e *Engine) UpdateConfig(update ConfigUpdate) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := update.merge(e.config)
	if err := next.Validate(); err != nil {
		return err
	}
	e.config = next
	e.logger.Debug().
		Float64("significance_level", next.SignificanceLevel).
		Float64("confidence_level", next.ConfidenceLevel).
		Bool("robust_methods", next.RobustMethods).
		Msg("configuration updated")
	return nil
}

// snapshot is the read path used at the top of every public operation.
func (e *Engine) snapshot() Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config
}
