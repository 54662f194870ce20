package kde

import (
	"fmt"

	"github.com/groupkde/groupkde/common"
)

// Option configures one batch call. All knobs are passed explicitly;
// nothing is read from the environment.
type Option func(*config)

type config struct {
	workers int
	floor   float64
	adjust  float64
	cut     float64
}

// WithWorkers caps the number of units computed concurrently.
// n <= 0 selects one worker per CPU.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithBandwidthFloor sets the bandwidth used for degenerate sample sets
// (a single sample, or all samples equal). Must be positive, finite,
// and large enough to survive narrowing to float32.
func WithBandwidthFloor(eps float64) Option {
	return func(c *config) {
		c.floor = eps
	}
}

// WithBandwidthAdjust scales Silverman's bandwidth by the given factor.
// Must be positive and finite.
func WithBandwidthAdjust(adjust float64) Option {
	return func(c *config) {
		c.adjust = adjust
	}
}

// WithCut sets how far, in bandwidths, a generated grid extends past the
// sample extremes. Must be positive and finite.
func WithCut(cut float64) Option {
	return func(c *config) {
		c.cut = cut
	}
}

// newConfig applies the options and validates them. Malformed
// configuration aborts the call before any unit is dispatched.
func newConfig(opts []Option) (config, error) {
	cfg := config{
		floor:  DefaultBandwidthFloor,
		adjust: DefaultBandwidthAdjust,
		cut:    DefaultCut,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	// The floor is checked at the float32 working width: a floor that
	// narrows to zero cannot back a degenerate sample set.
	if narrowed := float64(float32(cfg.floor)); !positiveFinite(narrowed) || narrowed < minNarrowedBandwidth {
		return cfg, fmt.Errorf("bandwidth floor %v: %w", cfg.floor, common.ErrorInvalidValue)
	}
	if !positiveFinite(cfg.adjust) {
		return cfg, fmt.Errorf("bandwidth adjust %v: %w", cfg.adjust, common.ErrorInvalidValue)
	}
	if !positiveFinite(cfg.cut) {
		return cfg, fmt.Errorf("cut %v: %w", cfg.cut, common.ErrorInvalidValue)
	}
	return cfg, nil
}

func (c config) engine() *Engine {
	engine := NewEngine(&Silverman{Floor: c.floor, Adjust: c.adjust})
	engine.cut = c.cut
	return engine
}
