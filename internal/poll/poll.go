// Package poll repeats a check on an adaptive, jittered backoff until it
// reports completion.
package poll

import (
	"context"
	"math/rand"
	"time"
)

const (
	InitialInterval   = 2 * time.Second
	MaxBackoff        = 30 * time.Second
	BackoffMultiplier = 1.5
	JitterFactor      = 0.3
)

// Config controls the polling cadence.
type Config struct {
	// Interval is the first wait. Zero means InitialInterval.
	Interval time.Duration
	// MaxBackoff caps the wait. Zero means MaxBackoff.
	MaxBackoff time.Duration
	// Multiplier grows the wait after each unsuccessful check.
	// Values below 1 mean BackoffMultiplier.
	Multiplier float64
	// Jitter adds up to this fraction of the wait at random.
	Jitter float64
	// ContinueOn reports whether a check error should be tolerated.
	// Nil means every error stops polling.
	ContinueOn func(error) bool
}

// DefaultConfig returns the standard cadence: 2s growing by 1.5x to 30s
// with 30% jitter.
func DefaultConfig() Config {
	return Config{
		Interval:   InitialInterval,
		MaxBackoff: MaxBackoff,
		Multiplier: BackoffMultiplier,
		Jitter:     JitterFactor,
	}
}

// CheckFunc reports whether the awaited condition holds.
type CheckFunc func(ctx context.Context) (done bool, err error)

// Until runs check immediately and then after each backoff until it
// returns done, returns an error not tolerated by ContinueOn, or ctx ends.
// A tolerated error resets nothing; the wait keeps growing.
func Until(ctx context.Context, cfg Config, check CheckFunc) error {
	cfg = cfg.withDefaults()
	interval := cfg.Interval

	for {
		done, err := check(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if cfg.ContinueOn == nil || !cfg.ContinueOn(err) {
				return err
			}
		} else if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.withJitter(interval)):
		}
		interval = cfg.next(interval)
	}
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = InitialInterval
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = MaxBackoff
	}
	if c.MaxBackoff < c.Interval {
		c.MaxBackoff = c.Interval
	}
	if c.Multiplier < 1 {
		c.Multiplier = BackoffMultiplier
	}
	return c
}

func (c Config) next(interval time.Duration) time.Duration {
	grown := time.Duration(float64(interval) * c.Multiplier)
	if grown > c.MaxBackoff {
		return c.MaxBackoff
	}
	return grown
}

// withJitter spreads concurrent pollers apart.
func (c Config) withJitter(interval time.Duration) time.Duration {
	if c.Jitter <= 0 {
		return interval
	}
	return interval + time.Duration(rand.Float64()*c.Jitter*float64(interval))
}
