// cmd/ping/main.go
//
// Connects to the configured database, pings it, and exits.
// Intended for Docker HEALTHCHECK:
//   HEALTHCHECK CMD ["/ping"]

package main

import (
	"context"
	"log"
	"os"
	"time"

	"docstore/internal/config"
	"docstore/internal/logger"
	"docstore/store"

	_ "go.uber.org/automaxprocs"
)

const (
	pingTimeout = 15 * time.Second

	// exit codes
	codeBadConfig   = 2
	codeUnreachable = 3

	msgBadConfig   = "config error: %v"
	msgUnreachable = "database unreachable: %v"
	msgHealthy     = "database healthy (db=%s)"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail(codeBadConfig, msgBadConfig, err)
	}

	logr, err := logger.Init(cfg)
	if err != nil {
		fail(codeBadConfig, msgBadConfig, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	client, err := store.Connect(ctx, cfg.StoreConfig(), logr)
	if err != nil {
		fail(codeUnreachable, msgUnreachable, err)
	}
	defer func() {
		if err := client.Shutdown(context.Background()); err != nil {
			log.Printf("failed to disconnect: %v", err)
		}
	}()

	log.Printf(msgHealthy, cfg.MongoDBName)
}

// fail logs a message and exits with the given code.
func fail(code int, format string, args ...any) {
	log.Printf(format, args...)
	os.Exit(code)
}
