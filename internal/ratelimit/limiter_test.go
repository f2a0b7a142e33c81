package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designemotion/transcript/internal/apperr"
	"github.com/designemotion/transcript/internal/config"
	"github.com/designemotion/transcript/internal/testutil"
)

var defaultConfig = config.RateLimitConfig{
	InitialTTL:     30 * time.Second,
	BlockThreshold: 100 * time.Second,
}

func TestLimiter_ShouldBlock_RapidHits(t *testing.T) {
	mr, store := testutil.NewKVStore(t)
	limiter := NewLimiter(store, defaultConfig)
	ctx := context.Background()

	tests := []struct {
		name    string
		want    bool
		wantTTL time.Duration
	}{
		{name: "first hit arms the key", want: false, wantTTL: 30 * time.Second},
		{name: "second hit doubles", want: false, wantTTL: 60 * time.Second},
		{name: "third hit doubles again", want: false, wantTTL: 120 * time.Second},
		{name: "fourth hit is over the threshold", want: true, wantTTL: 240 * time.Second},
		{name: "sustained polling stays blocked", want: true, wantTTL: 480 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := limiter.ShouldBlock(ctx, "203.0.113.7")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTTL, mr.TTL("iplog:203.0.113.7"))
		})
	}
}

func TestLimiter_ShouldBlock_SustainedPollingNeverWraps(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.RateLimitConfig
		wantTTL time.Duration
	}{
		{
			name:    "default ceiling",
			cfg:     defaultConfig,
			wantTTL: DefaultMaxTTL,
		},
		{
			name: "configured ceiling",
			cfg: config.RateLimitConfig{
				InitialTTL:     30 * time.Second,
				BlockThreshold: 100 * time.Second,
				MaxTTL:         time.Hour,
			},
			wantTTL: time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr, store := testutil.NewKVStore(t)
			limiter := NewLimiter(store, tt.cfg)
			ctx := context.Background()

			for hit := 1; hit <= 45; hit++ {
				got, err := limiter.ShouldBlock(ctx, "203.0.113.9")
				require.NoError(t, err)
				assert.Equal(t, hit >= 4, got, "hit %d", hit)
				assert.True(t, mr.Exists("iplog:203.0.113.9"), "hit %d", hit)
			}
			assert.Equal(t, tt.wantTTL, mr.TTL("iplog:203.0.113.9"))
		})
	}
}

func TestLimiter_ShouldBlock_SpacedHits(t *testing.T) {
	mr, store := testutil.NewKVStore(t)
	limiter := NewLimiter(store, defaultConfig)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		got, err := limiter.ShouldBlock(ctx, "198.51.100.1")
		require.NoError(t, err)
		assert.False(t, got, "hit %d", i)
		mr.FastForward(31 * time.Second)
	}
}

func TestLimiter_ShouldBlock_IdentifiersAreIndependent(t *testing.T) {
	_, store := testutil.NewKVStore(t)
	limiter := NewLimiter(store, defaultConfig)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := limiter.ShouldBlock(ctx, "a")
		require.NoError(t, err)
	}
	blocked, err := limiter.ShouldBlock(ctx, "a")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = limiter.ShouldBlock(ctx, "b")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLimiter_ShouldBlock_KeyWithoutExpiry(t *testing.T) {
	mr, store := testutil.NewKVStore(t)
	limiter := NewLimiter(store, defaultConfig)
	require.NoError(t, mr.Set("iplog:a", "1"))

	blocked, err := limiter.ShouldBlock(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.Equal(t, 30*time.Second, mr.TTL("iplog:a"))
}

func TestLimiter_ShouldBlock_StoreUnavailable(t *testing.T) {
	mr, store := testutil.NewKVStore(t)
	limiter := NewLimiter(store, defaultConfig)
	mr.SetError("ERR simulated outage")

	_, err := limiter.ShouldBlock(context.Background(), "a")
	require.Error(t, err)
	assert.Equal(t, apperr.TagStoreUnavailable, apperr.TagOf(err))
}
