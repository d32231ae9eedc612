package logging

import (
	"errors"
	"testing"

	"github.com/franzego/slackrelay/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNew_ConsoleDevMode(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "debug", Encoding: "console", DevMode: true})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestWithFieldAndError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := FromZap(zap.New(core))

	logger.WithField("correlation_id", "abc").WithError(errors.New("boom")).Error("upstream call failed")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "upstream call failed", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "abc", fields["correlation_id"])
	assert.Equal(t, "boom", fields["error"])
}
