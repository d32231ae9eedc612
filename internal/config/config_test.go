package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "xoxb-test", cfg.Slack.BotToken)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, "https://slack.com/api/", cfg.Slack.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Slack.Timeout)
	assert.True(t, cfg.Slack.BreakerEnabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-env")
	t.Setenv("PORT", "6001")
	t.Setenv("SLACK_BASE_URL", "http://127.0.0.1:9999/api")
	t.Setenv("SLACK_TIMEOUT", "3s")
	t.Setenv("SLACK_BREAKER_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "6001", cfg.Server.Port)
	assert.Equal(t, "http://127.0.0.1:9999/api/", cfg.Slack.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Slack.Timeout)
	assert.False(t, cfg.Slack.BreakerEnabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_MissingToken(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "")

	cfg, err := LoadConfig()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingBotToken)
}
