package kvstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designemotion/transcript/internal/apperr"
	"github.com/designemotion/transcript/internal/config"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisStore(client)
}

func TestRedisStore_GetSet(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k", []byte(`{"a":1}`), 30*time.Second))
	got, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"a":1}`, string(got))
	assert.Equal(t, 30*time.Second, mr.TTL("k"))

	mr.FastForward(31 * time.Second)
	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_TTLAndExpire(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	ttl, err := store.TTL(ctx, "absent")
	require.NoError(t, err)
	assert.Less(t, ttl, time.Duration(0))

	require.NoError(t, store.Set(ctx, "k", []byte("1"), 30*time.Second))
	require.NoError(t, store.Expire(ctx, "k", 60*time.Second))
	ttl, err = store.TTL(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, ttl)

	exists, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, "k"))
	exists, err = store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisStore_GetDel(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("ticket", "payload"))

	got, found, err := store.GetDel(ctx, "ticket")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "payload", string(got))
	assert.False(t, mr.Exists("ticket"))

	_, found, err = store.GetDel(ctx, "ticket")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_ScanAndFlush(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("transcript_cache:https://a.example", "{}"))
	require.NoError(t, mr.Set("transcript_cache:https://b.example", "{}"))
	require.NoError(t, mr.Set("iplog:1.2.3.4", "1"))

	keys, err := store.Scan(ctx, "transcript_cache:*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"transcript_cache:https://a.example", "transcript_cache:https://b.example"}, keys)

	all, err := store.Scan(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, store.Flush(ctx))
	assert.Empty(t, mr.Keys())
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()
	mr.SetError("ERR simulated outage")

	_, _, err := store.Get(ctx, "k")
	require.Error(t, err)
	assert.Equal(t, apperr.TagStoreUnavailable, apperr.TagOf(err))

	err = store.Set(ctx, "k", []byte("v"), time.Second)
	assert.Equal(t, apperr.TagStoreUnavailable, apperr.TagOf(err))

	var ie *apperr.InfraError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "set k", ie.Op)

	assert.Error(t, store.Ping(ctx))
}

func TestConnect(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.RedisConfig
		wantAddr string
		wantDB   int
		wantTLS  bool
		wantErr  bool
	}{
		{
			name:     "host and port",
			cfg:      config.RedisConfig{URL: "localhost:6379"},
			wantAddr: "localhost:6379",
		},
		{
			name:     "redis url with database",
			cfg:      config.RedisConfig{URL: "redis://cache.internal:6380/2"},
			wantAddr: "cache.internal:6380",
			wantDB:   2,
		},
		{
			name:     "tls flag on plain address",
			cfg:      config.RedisConfig{URL: "cache.internal:6380", TLS: true},
			wantAddr: "cache.internal:6380",
			wantTLS:  true,
		},
		{
			name:    "malformed url",
			cfg:     config.RedisConfig{URL: "redis://cache.internal:6380/notanumber"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := Connect(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer client.Close()

			opt := client.Options()
			assert.Equal(t, tt.wantAddr, opt.Addr)
			assert.Equal(t, tt.wantDB, opt.DB)
			assert.Equal(t, tt.wantTLS, opt.TLSConfig != nil)
		})
	}
}
