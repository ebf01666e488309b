package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ResilientConfig holds the policies applied by Resilient.
// Zero fields other than MaxRetries fall back to DefaultResilientConfig.
type ResilientConfig struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelays []time.Duration

	RatePerSecond float64
	Burst         int

	// The breaker opens after BreakerFailures consecutive transient
	// failures and half-opens again after BreakerCooldown.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DefaultResilientConfig returns the settings used for unset fields.
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		RetryDelays: []time.Duration{
			500 * time.Millisecond,
			time.Second,
			2 * time.Second,
		},
		RatePerSecond:   2,
		Burst:           4,
		BreakerFailures: 5,
		BreakerCooldown: 30 * time.Second,
	}
}

// Resilient wraps a Generator with rate limiting, bounded retries of
// transient failures and a circuit breaker.
type Resilient struct {
	next    Generator
	cfg     ResilientConfig
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	log     *slog.Logger
}

// permanent carries a non-transient error through the breaker without
// counting it as a failure.
type permanent struct{ err error }

// NewResilient wraps next with the policies in cfg.
func NewResilient(next Generator, cfg ResilientConfig, log *slog.Logger) *Resilient {
	def := DefaultResilientConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if len(cfg.RetryDelays) == 0 {
		cfg.RetryDelays = def.RetryDelays
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = def.RatePerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = def.BreakerFailures
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = def.BreakerCooldown
	}

	r := &Resilient{
		next:    next,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		log:     log,
	}
	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "llm",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return r
}

func (r *Resilient) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if attempt > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(r.cfg.RetryDelays) {
				delayIdx = len(r.cfg.RetryDelays) - 1
			}

			select {
			case <-time.After(r.cfg.RetryDelays[delayIdx]):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("waiting for rate limiter: %w", err)
		}

		reply, err := r.call(ctx, prompt)
		if err == nil {
			return reply, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, ErrCircuitOpen) || !IsTransient(err) {
			return "", err
		}

		lastErr = err
		r.log.Warn("generate attempt failed", "attempt", attempt+1, "err", err)
	}

	return "", fmt.Errorf("generate failed after %d attempts: %w", r.cfg.MaxRetries+1, lastErr)
}

func (r *Resilient) call(ctx context.Context, prompt string) (string, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()

		reply, err := r.next.Generate(callCtx, prompt)
		// The caller giving up says nothing about upstream health.
		if err != nil && ctx.Err() != nil {
			return permanent{err: ctx.Err()}, nil
		}
		if err != nil && !IsTransient(err) {
			return permanent{err: err}, nil
		}
		return reply, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", ErrCircuitOpen
	}
	if err != nil {
		return "", err
	}
	if p, ok := result.(permanent); ok {
		return "", p.err
	}
	return result.(string), nil
}
