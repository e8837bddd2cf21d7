package logger

import (
	"testing"

	"docstore/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIsIdempotent(t *testing.T) {
	cfg := config.Config{LogLevel: "debug", LogFormat: "json"}

	first, err := Init(cfg)
	require.NoError(t, err)
	require.NotNil(t, first)

	// second Init must return the same instance, even with another config
	second, err := Init(config.Config{LogLevel: "error", LogFormat: "text"})
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.Same(t, first, L())
}
