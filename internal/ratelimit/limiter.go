// Package ratelimit throttles clients with a self-extending expiry per identifier.
//
// No hit counter is stored. Each repeat hit while the key is alive doubles its
// remaining lifetime, and the decision depends only on that lifetime.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/designemotion/transcript/internal/config"
	"github.com/designemotion/transcript/internal/kvstore"
)

const (
	keyPrefix = "iplog:"

	// DefaultMaxTTL caps the extended lifetime when no ceiling is configured.
	DefaultMaxTTL = 72 * time.Hour
)

type Limiter struct {
	store          kvstore.Store
	initialTTL     time.Duration
	blockThreshold time.Duration
	maxTTL         time.Duration
}

func NewLimiter(store kvstore.Store, cfg config.RateLimitConfig) *Limiter {
	maxTTL := cfg.MaxTTL
	if maxTTL <= 0 {
		maxTTL = DefaultMaxTTL
	}
	return &Limiter{
		store:          store,
		initialTTL:     cfg.InitialTTL,
		blockThreshold: cfg.BlockThreshold,
		maxTTL:         maxTTL,
	}
}

// ShouldBlock records a hit from identifier and reports whether it must be rejected.
func (l *Limiter) ShouldBlock(ctx context.Context, identifier string) (bool, error) {
	key := keyPrefix + identifier

	exists, err := l.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("ShouldBlock(%s) > %w", identifier, err)
	}
	if !exists {
		return false, l.arm(ctx, key, identifier)
	}

	remaining, err := l.store.TTL(ctx, key)
	if err != nil {
		return false, fmt.Errorf("ShouldBlock(%s) > %w", identifier, err)
	}
	// The key expired between the two calls or has lost its expiry.
	if remaining <= 0 {
		return false, l.arm(ctx, key, identifier)
	}

	next := l.extend(remaining)
	if err := l.store.Expire(ctx, key, next); err != nil {
		return false, fmt.Errorf("ShouldBlock(%s) > %w", identifier, err)
	}
	if remaining > l.blockThreshold {
		slog.Default().Debug("rate limit exceeded",
			"identifier", identifier,
			"remaining", remaining,
			"extended_to", next,
		)
		return true, nil
	}
	return false, nil
}

// extend doubles remaining, saturating at the configured ceiling so the
// lifetime never wraps negative.
func (l *Limiter) extend(remaining time.Duration) time.Duration {
	next := 2 * remaining
	if next < remaining || next > l.maxTTL {
		return l.maxTTL
	}
	return next
}

func (l *Limiter) arm(ctx context.Context, key, identifier string) error {
	if err := l.store.Set(ctx, key, []byte("1"), l.initialTTL); err != nil {
		return fmt.Errorf("ShouldBlock(%s) > %w", identifier, err)
	}
	return nil
}
