// Package store is a convenience façade over the official MongoDB
// driver. Filter, update and options parameters accept either a JSON
// document in text form or an already-structured mapping; results decode
// into plain maps by default. Everything else - pooling, retries, wire
// protocol - stays with the driver.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Config carries everything Connect needs. Zero timeouts fall back to
// the package defaults.
type Config struct {
	URI            string
	Database       string
	AppName        string
	ConnectTimeout time.Duration
	OpTimeout      time.Duration
	EnableMetrics  bool
}

// DefaultConnectTimeout bounds Connect when the config does not say
// otherwise.
const DefaultConnectTimeout = 10 * time.Second

// Client wraps one driver connection to one named database.
type Client struct {
	mu        sync.Mutex
	cli       *mongo.Client
	db        *mongo.Database
	opTimeout time.Duration
	log       *slog.Logger
	metrics   bool
}

// Connect establishes the driver connection and verifies it with a ping
// against the primary. It returns an error instead of terminating the
// process - how to handle an unreachable database is the caller's call.
func Connect(ctx context.Context, cfg Config, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(connectTimeout).
		SetAppName(cfg.AppName)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	cli, err := drv.Connect(ctx, opts)
	if err != nil {
		log.Error("failed to connect to mongo", "err", err)
		return nil, err
	}

	if err := drv.Ping(ctx, cli); err != nil {
		log.Error("failed to ping mongo", "err", err)
		_ = drv.Disconnect(context.WithoutCancel(ctx), cli)
		return nil, err
	}

	opTimeout := cfg.OpTimeout
	if opTimeout <= 0 {
		opTimeout = DefaultOpTimeout
	}

	log.Info("successfully connected to mongo", "db", cfg.Database)

	return &Client{
		cli:       cli,
		db:        cli.Database(cfg.Database),
		opTimeout: opTimeout,
		log:       log,
		metrics:   cfg.EnableMetrics,
	}, nil
}

// Database exposes the underlying driver database for callers that need
// to step outside the façade.
func (c *Client) Database() *mongo.Database {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db
}

// Shutdown disconnects the underlying driver client.
// Safe to call more than once.
func (c *Client) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cli == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := drv.Disconnect(ctx, c.cli)

	c.cli = nil
	c.db = nil

	return err
}

func (c *Client) collection(name string) (*mongo.Collection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil, ErrNotConnected
	}
	return c.db.Collection(name), nil
}

func (c *Client) opCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return withOpTimeout(parent, c.opTimeout)
}
