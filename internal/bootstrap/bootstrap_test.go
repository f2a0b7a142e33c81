package bootstrap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Run(t *testing.T) {
	t.Run("hooks run after run returns", func(t *testing.T) {
		app := New()
		closed := false
		app.AddShutdownHook("redis", func(ctx context.Context) error {
			closed = true
			return nil
		})
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
		assert.True(t, closed)
	})

	t.Run("run error is returned", func(t *testing.T) {
		app := New()
		want := errors.New("listen tcp :8080: bind: address already in use")
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return want
		})
		assert.ErrorIs(t, err, want)
	})

	t.Run("hooks run in LIFO order on cancel", func(t *testing.T) {
		app := New()
		var mu sync.Mutex
		var order []string
		for _, name := range []string{"database", "redis", "http"} {
			app.AddShutdownHook(name, func(ctx context.Context) error {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, name)
				return nil
			})
		}

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"http", "redis", "database"}, order)
	})

	t.Run("hook errors are named and joined", func(t *testing.T) {
		app := New()
		failure := errors.New("connection reset")
		app.AddShutdownHook("database", func(ctx context.Context) error { return failure })
		app.AddShutdownHook("redis", func(ctx context.Context) error { return nil })

		err := app.Run(context.Background(), func(ctx context.Context) error { return nil })
		require.Error(t, err)
		assert.ErrorIs(t, err, failure)
		assert.Contains(t, err.Error(), "database: connection reset")
	})

	t.Run("hooks receive a bounded context", func(t *testing.T) {
		app := New(WithShutdownTimeout(time.Second))
		var deadline time.Time
		var hasDeadline bool
		app.AddShutdownHook("http", func(ctx context.Context) error {
			deadline, hasDeadline = ctx.Deadline()
			return nil
		})

		require.NoError(t, app.Run(context.Background(), func(ctx context.Context) error { return nil }))
		assert.True(t, hasDeadline)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
	})
}
