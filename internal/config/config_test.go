package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		MongoHost:         "localhost",
		MongoPort:         27017,
		MongoDBName:       "docstore",
		LogLevel:          "info",
		LogFormat:         "json",
		ConnectTimeoutSec: 10,
		OpTimeoutSec:      5,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty db name", func(c *Config) { c.MongoDBName = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
		{"port out of range", func(c *Config) { c.MongoPort = 70000 }},
		{"no host and no uri", func(c *Config) { c.MongoHost = "" }},
		{"zero connect timeout", func(c *Config) { c.ConnectTimeoutSec = 0 }},
		{"zero op timeout", func(c *Config) { c.OpTimeoutSec = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEffectiveURIExplicitWins(t *testing.T) {
	cfg := validConfig()
	cfg.MongoURI = "mongodb://elsewhere:27018/?replicaSet=rs0"
	cfg.MongoUser = "ignored"

	assert.Equal(t, "mongodb://elsewhere:27018/?replicaSet=rs0", cfg.EffectiveURI())
}

func TestEffectiveURIComposed(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "mongodb://localhost:27017", cfg.EffectiveURI())
}

func TestEffectiveURICredentialsEscaped(t *testing.T) {
	cfg := validConfig()
	cfg.MongoUser = "app"
	cfg.MongoPassword = "p@ss w0rd"

	uri := cfg.EffectiveURI()
	assert.Contains(t, uri, "app:")
	assert.NotContains(t, uri, "p@ss w0rd", "raw credentials must be escaped")
}

func TestLoadDefaults(t *testing.T) {
	ResetCache()
	t.Cleanup(ResetCache)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.MongoHost)
	assert.Equal(t, 27017, cfg.MongoPort)
	assert.Equal(t, "docstore", cfg.MongoDBName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10, cfg.ConnectTimeoutSec)
	assert.Equal(t, 5, cfg.OpTimeoutSec)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadEnvOverrideAndCaching(t *testing.T) {
	ResetCache()
	t.Cleanup(ResetCache)

	t.Setenv("MONGO_DB_NAME", "widgets")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "widgets", cfg.MongoDBName)

	// cached: later env changes are not observed until ResetCache
	t.Setenv("MONGO_DB_NAME", "other")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "widgets", cfg.MongoDBName)
}
