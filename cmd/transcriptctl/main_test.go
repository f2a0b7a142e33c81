package main

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/designemotion/transcript/internal/testutil"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(t.Context(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "transcriptctl", cmd.Use)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"migrate", "account", "cache", "kv"}, names)
}

func TestNewAccountCommand(t *testing.T) {
	cmd := newAccountCommand()

	assert.Equal(t, "account", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	grant, _, err := cmd.Find([]string{"grant"})
	require.NoError(t, err)
	creditsFlag := grant.Flags().Lookup("credits")
	require.NotNil(t, creditsFlag)
	amountFlag := grant.Flags().Lookup("amount")
	require.NotNil(t, amountFlag)
	assert.Equal(t, "0", amountFlag.DefValue)

	authorize, _, err := cmd.Find([]string{"authorize"})
	require.NoError(t, err)
	assert.NotNil(t, authorize.Flags().Lookup("client-type"))
}

func TestRootCommand_CacheList(t *testing.T) {
	mr, store := testutil.NewKVStore(t)
	path := testutil.SetupTestConfig(t, t.TempDir(), mr.Addr(), "")
	seedCache(t, store)

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"cache", "list", "--config", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "https://example.com/a")
	assert.Contains(t, out.String(), "2 cached page(s)")
}

func TestRootCommand_BrokenConfig(t *testing.T) {
	path := testutil.SetupBrokenConfig(t, t.TempDir())

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"cache", "list", "--config", path})

	assert.Error(t, cmd.Execute())
}
