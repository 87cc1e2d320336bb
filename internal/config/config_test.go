package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_PUBLIC_KEY", "pubkey")
	t.Setenv("DISCORD_TOKEN", "bot-token")
	t.Setenv("DISCORD_APPLICATION_ID", "app-id")
	t.Setenv("CLICKUP_API_TOKEN", "cu-token")
	t.Setenv("CLICKUP_WORKSPACE_ID", "ws1")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8001", cfg.Port)
	assert.Equal(t, "cu-token", cfg.ClickUpToken)
	assert.Equal(t, "ws1", cfg.ClickUpWorkspaceID)
	assert.Equal(t, "pubkey", cfg.DiscordPublicKey)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadReportsAllMissingVars(t *testing.T) {
	setRequired(t)
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("CLICKUP_WORKSPACE_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.EqualError(t, err, "missing required environment variables: DISCORD_TOKEN, CLICKUP_WORKSPACE_ID")
}
