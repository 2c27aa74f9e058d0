package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/zjrosen/dealboard/internal/config"
	"github.com/zjrosen/dealboard/internal/dealsvc"
	"github.com/zjrosen/dealboard/internal/infrastructure/sqlite"
	"github.com/zjrosen/dealboard/internal/paths"
	"github.com/zjrosen/dealboard/internal/tracing"
)

// env bundles the store, the cached service over it and the tracer that
// instruments its queries.
type env struct {
	db     *sqlite.DB
	svc    *dealsvc.Service
	tracer *tracing.Provider
}

func openEnv(c config.Config) (*env, error) {
	tcfg := tracing.Config{
		Enabled:      c.Tracing.Enabled,
		Exporter:     c.Tracing.Exporter,
		FilePath:     c.Tracing.FilePath,
		OTLPEndpoint: c.Tracing.OTLPEndpoint,
		SampleRate:   c.Tracing.SampleRate,
	}
	if tcfg.FilePath == "" {
		tcfg.FilePath = config.DefaultTracesFilePath()
	}
	provider, err := tracing.NewProvider(tcfg)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}

	dbPath := paths.ResolveDBPath(c.DBPath)
	db, err := sqlite.NewDB(dbPath, sqlite.WithTracer(provider.Tracer()))
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, fmt.Errorf("opening deal database: %w", err)
	}

	svc := dealsvc.New(db.DealRepository(), dealsvc.Config{
		TTL:          c.Cache.TTL,
		DisableCache: c.Cache.Disabled,
	})
	return &env{db: db, svc: svc, tracer: provider}, nil
}

// Close closes the database and flushes pending spans.
func (e *env) Close(ctx context.Context) error {
	return errors.Join(e.db.Close(), e.tracer.Shutdown(ctx))
}
