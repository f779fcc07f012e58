package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"catalog/internal/search"
)

// Config controls the reachability retry loop. Defaults give the sequence
// 2s, 3s, 4.5s, ... capped at ten attempts total.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:  10,
		InitialDelay: 2 * time.Second,
		Multiplier:   1.5,
	}
}

// Connector waits for the search engine to come up, then (re)creates the
// demo collection and loads the sample dataset. It runs once, before the
// router accepts traffic.
type Connector struct {
	engine search.Engine
	logger *slog.Logger
	cfg    Config
}

func New(engine search.Engine, logger *slog.Logger, cfg Config) *Connector {
	return &Connector{
		engine: engine,
		logger: logger,
		cfg:    cfg,
	}
}

// Run never fails the process. If the engine stays unreachable or seeding
// breaks, the outcome is logged and the service starts degraded.
func (c *Connector) Run(ctx context.Context) {
	if err := c.waitForEngine(ctx); err != nil {
		c.logger.Error("Search engine unreachable, starting in degraded state",
			"error", err, "max_attempts", c.cfg.MaxAttempts)
		return
	}

	if err := c.seed(ctx); err != nil {
		c.logger.Error("Failed to set up demo collection", "error", err)
		return
	}

	c.logger.Info("Search engine setup completed", "collection", search.ProductsCollection)
}

func (c *Connector) waitForEngine(ctx context.Context) error {
	attempt := 0
	operation := func() error {
		attempt++
		if err := c.engine.HealthCheck(ctx); err != nil {
			c.logger.Warn("Search engine not reachable yet", "attempt", attempt, "error", err)
			return err
		}
		c.logger.Info("Connected to search engine", "attempt", attempt)
		return nil
	}

	return backoff.Retry(operation, backoff.WithContext(newBackOff(c.cfg), ctx))
}

func (c *Connector) seed(ctx context.Context) error {
	// A previous run may have left the collection behind; drop and recreate
	// so the seed data is deterministic. Only "does not exist" is expected.
	if err := c.engine.DropCollection(ctx, search.ProductsCollection); err != nil && !errors.Is(err, search.ErrNotFound) {
		c.logger.Warn("Could not drop existing collection", "error", err)
	}

	if err := c.engine.CreateCollection(ctx, ProductsSchema()); err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	samples := SampleProducts()
	documents := make([]any, 0, len(samples))
	for _, p := range samples {
		documents = append(documents, p)
	}
	if err := c.engine.ImportDocuments(ctx, search.ProductsCollection, documents); err != nil {
		return fmt.Errorf("import sample products: %w", err)
	}

	c.logger.Info("Seeded demo collection", "documents", len(documents))
	return nil
}

// newBackOff builds the deterministic exponential policy: no jitter, and
// MaxAttempts-1 retries after the initial try.
func newBackOff(cfg Config) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialDelay
	bo.Multiplier = cfg.Multiplier
	bo.RandomizationFactor = 0
	bo.MaxInterval = time.Hour
	bo.MaxElapsedTime = 0
	bo.Reset()
	return backoff.WithMaxRetries(bo, uint64(cfg.MaxAttempts-1))
}
