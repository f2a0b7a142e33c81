// Package testutil provides shared test helpers for config files and an in-memory KV store.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/designemotion/transcript/internal/kvstore"
)

// SetupTestConfig writes a config file pointing at redisAddr and returns its path.
// Extra YAML is appended verbatim, so it may add sections the base file does not set.
func SetupTestConfig(t *testing.T, tmpDir, redisAddr, extra string) string {
	t.Helper()

	content := fmt.Sprintf(`server:
  port: 18080
  cors:
    allowed_origins:
      - "*"
redis:
  url: %s
database:
  host: 127.0.0.1
  port: 3306
  database: transcript_test
  username: transcript
%s`, redisAddr, extra)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath
}

// SetupBrokenConfig writes a config file that fails to parse and returns its path.
func SetupBrokenConfig(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  port: [[[\n"), 0644))
	return cfgPath
}

// NewKVStore starts a miniredis server bound to the test lifetime and returns
// it with a store connected to it.
func NewKVStore(t *testing.T) (*miniredis.Miniredis, *kvstore.RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, kvstore.NewRedisStore(client)
}
