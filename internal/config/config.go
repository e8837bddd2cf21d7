package config

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"docstore/store"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all library and tool configuration
type Config struct {
	MongoURI          string `mapstructure:"MONGO_URI" validate:"omitempty"`
	MongoHost         string `mapstructure:"MONGO_HOST" validate:"required_without=MongoURI"`
	MongoPort         int    `mapstructure:"MONGO_PORT" validate:"omitempty,min=1,max=65535"`
	MongoUser         string `mapstructure:"MONGO_USER"`
	MongoPassword     string `mapstructure:"MONGO_PASSWORD"`
	MongoDBName       string `mapstructure:"MONGO_DB_NAME" validate:"required"`
	LogLevel          string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat         string `mapstructure:"LOG_FORMAT" validate:"oneof=json text"`
	ConnectTimeoutSec int    `mapstructure:"CONNECT_TIMEOUT_SEC" validate:"min=1"`
	OpTimeoutSec      int    `mapstructure:"OP_TIMEOUT_SEC" validate:"min=1"`
	AppName           string `mapstructure:"APP_NAME"`
	MetricsEnabled    bool   `mapstructure:"METRICS_ENABLED"`
}

var (
	cachedConfig *Config
	configMutex  sync.RWMutex
	validate     = validator.New()
)

// Load loads configuration from environment variables and .env file
// It caches the result for subsequent calls
func Load() (Config, error) {
	configMutex.RLock()
	if cachedConfig != nil {
		defer configMutex.RUnlock()
		return *cachedConfig, nil
	}
	configMutex.RUnlock()

	configMutex.Lock()
	defer configMutex.Unlock()

	// Double-check in case another goroutine loaded it while we waited for the lock
	if cachedConfig != nil {
		return *cachedConfig, nil
	}

	v := viper.New()

	// Set defaults
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_HOST", "localhost")
	v.SetDefault("MONGO_PORT", 27017)
	v.SetDefault("MONGO_USER", "")
	v.SetDefault("MONGO_PASSWORD", "")
	v.SetDefault("MONGO_DB_NAME", "docstore")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CONNECT_TIMEOUT_SEC", 10)
	v.SetDefault("OP_TIMEOUT_SEC", 5)
	v.SetDefault("APP_NAME", "docstore")
	v.SetDefault("METRICS_ENABLED", true)

	// Configure Viper to read from .env file (if present)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// Try to read .env file (it's okay if it doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	// Override with OS environment variables
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	// Cache the configuration
	cachedConfig = &cfg

	return cfg, nil
}

// ResetCache clears the cached configuration (for testing purposes)
func ResetCache() {
	configMutex.Lock()
	defer configMutex.Unlock()
	cachedConfig = nil
}

// Validate checks if required configuration fields are properly set
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// StoreConfig maps the env-driven configuration onto the façade's
// connection config.
func (c Config) StoreConfig() store.Config {
	return store.Config{
		URI:            c.EffectiveURI(),
		Database:       c.MongoDBName,
		AppName:        c.AppName,
		ConnectTimeout: time.Duration(c.ConnectTimeoutSec) * time.Second,
		OpTimeout:      time.Duration(c.OpTimeoutSec) * time.Second,
		EnableMetrics:  c.MetricsEnabled,
	}
}

// EffectiveURI returns the connection string handed to the driver.
// An explicit MONGO_URI always wins; otherwise the URI is composed from
// host, port and optional credentials.
func (c Config) EffectiveURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	u := url.URL{
		Scheme: "mongodb",
		Host:   fmt.Sprintf("%s:%d", c.MongoHost, c.MongoPort),
	}
	if c.MongoUser != "" {
		u.User = url.UserPassword(c.MongoUser, c.MongoPassword)
	}
	return u.String()
}
