// cmd/seed loads a collection with fake documents through the store
// façade. Handy for demos and for eyeballing query behavior against a
// local mongo.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"docstore/internal/config"
	"docstore/internal/logger"
	"docstore/store"

	"github.com/brianvoe/gofakeit/v6"
	_ "go.uber.org/automaxprocs"
	"golang.org/x/sync/errgroup"
)

var (
	collection = flag.String("collection", env("SEED_COLLECTION", "people"), "Target collection")
	count      = flag.Int("n", envInt("SEED_COUNT", 500), "How many documents to insert")
	batch      = flag.Int("batch", envInt("SEED_BATCH", 100), "Documents per InsertMany call")
	workers    = flag.Int("workers", envInt("SEED_WORKERS", 4), "Concurrent insert batches")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscan(v, &i); err == nil && i > 0 {
			return i
		}
	}
	return def
}

func fakeDoc() map[string]any {
	return map[string]any{
		"name":    gofakeit.Name(),
		"email":   gofakeit.Email(),
		"status":  gofakeit.RandomString([]string{"active", "inactive", "pending"}),
		"city":    gofakeit.City(),
		"age":     gofakeit.Number(18, 90),
		"joined":  gofakeit.DateRange(time.Now().AddDate(-5, 0, 0), time.Now()),
		"address": map[string]any{"street": gofakeit.Street(), "zip": gofakeit.Zip()},
	}
}

func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	logr, err := logger.Init(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	ctx := context.Background()

	client, err := store.Connect(ctx, cfg.StoreConfig(), logr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}
	defer func() {
		_ = client.Shutdown(context.Background())
	}()

	fmt.Printf("Seeding %d documents into %q (batch=%d, workers=%d)\n",
		*count, *collection, *batch, *workers)

	batches := make(chan []any)

	g, gctx := errgroup.WithContext(ctx)
	for range *workers {
		g.Go(func() error {
			for docs := range batches {
				if _, err := client.InsertMany(gctx, *collection, docs); err != nil {
					return err
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(batches)
		for remaining := *count; remaining > 0; remaining -= *batch {
			n := min(*batch, remaining)
			docs := make([]any, n)
			for i := range n {
				docs[i] = fakeDoc()
			}
			select {
			case batches <- docs:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	total, err := client.Count(ctx, *collection, nil, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	fmt.Printf("✔ done, collection now holds %d documents\n", total)
}
