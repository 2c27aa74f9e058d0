// Package dealsvc serves stage counts and deal lists to the dashboard,
// caching store reads until the database changes.
package dealsvc

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zjrosen/dealboard/internal/cachemanager"
	"github.com/zjrosen/dealboard/internal/log"
	"github.com/zjrosen/dealboard/internal/pipeline"
)

const (
	countsKey = "counts"
	listKey   = "deals:"
)

// Config holds service options.
type Config struct {
	// TTL bounds how long a cached read survives without an invalidation.
	TTL time.Duration
	// DisableCache sends every read to the repository.
	DisableCache bool
}

// Service reads through caches to a pipeline.DealRepository.
type Service struct {
	repo   pipeline.DealRepository
	ttl    time.Duration
	counts *cachemanager.ReadThroughCache[string, pipeline.DealCounts, struct{}]
	lists  *cachemanager.ReadThroughCache[string, []pipeline.Deal, pipeline.Selection]
}

// New creates a service over repo.
func New(repo pipeline.DealRepository, cfg Config) *Service {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = cachemanager.DefaultExpiration
	}

	countCache := cachemanager.NewInMemoryCacheManager[string, pipeline.DealCounts]("counts", ttl, cachemanager.DefaultCleanupInterval)
	listCache := cachemanager.NewInMemoryCacheManager[string, []pipeline.Deal]("deals", ttl, cachemanager.DefaultCleanupInterval)

	return &Service{
		repo: repo,
		ttl:  ttl,
		counts: cachemanager.NewReadThroughCache(
			cachemanager.CacheManager[string, pipeline.DealCounts](countCache),
			func(ctx context.Context, _ struct{}) (pipeline.DealCounts, error) {
				return repo.CountByStage(ctx)
			},
			cfg.DisableCache,
		),
		lists: cachemanager.NewReadThroughCache(
			cachemanager.CacheManager[string, []pipeline.Deal](listCache),
			repo.ListDeals,
			cfg.DisableCache,
		),
	}
}

// Counts returns the per-stage deal counts. The returned map is a copy the
// caller may keep.
func (s *Service) Counts(ctx context.Context) (pipeline.DealCounts, error) {
	counts, err := s.counts.Get(ctx, countsKey, struct{}{}, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("loading counts: %w", err)
	}
	out := make(pipeline.DealCounts, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out, nil
}

// Deals returns deals for sel.
func (s *Service) Deals(ctx context.Context, sel pipeline.Selection) ([]pipeline.Deal, error) {
	deals, err := s.lists.Get(ctx, listKey+sel.String(), sel, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("loading deals for %s: %w", sel, err)
	}
	return deals, nil
}

// Snapshot loads counts and the deal list for sel concurrently.
func (s *Service) Snapshot(ctx context.Context, sel pipeline.Selection) (pipeline.DealCounts, []pipeline.Deal, error) {
	var (
		counts pipeline.DealCounts
		deals  []pipeline.Deal
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.Counts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		deals, err = s.Deals(ctx, sel)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return counts, deals, nil
}

// Add stores a new deal and invalidates cached reads.
func (s *Service) Add(ctx context.Context, d *pipeline.Deal) error {
	if err := s.repo.SaveDeal(ctx, d); err != nil {
		return err
	}
	s.Invalidate(ctx)
	return nil
}

// Move changes the stage of a deal and invalidates cached reads.
func (s *Service) Move(ctx context.Context, id string, to pipeline.Stage) error {
	if err := s.repo.MoveDeal(ctx, id, to); err != nil {
		return err
	}
	s.Invalidate(ctx)
	return nil
}

// Invalidate drops every cached read.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.counts.Invalidate(ctx); err != nil {
		log.ErrorErr(log.CatCache, "flush counts", err)
	}
	if err := s.lists.Invalidate(ctx); err != nil {
		log.ErrorErr(log.CatCache, "flush deal lists", err)
	}
}
