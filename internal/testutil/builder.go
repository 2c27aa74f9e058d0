// Package testutil builds deal fixtures for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

// Builder accumulates deals and saves them through a repository.
type Builder struct {
	t     testing.TB
	repo  pipeline.DealRepository
	deals []pipeline.Deal
}

// NewBuilder creates a builder that saves into repo.
func NewBuilder(t testing.TB, repo pipeline.DealRepository) *Builder {
	t.Helper()
	return &Builder{t: t, repo: repo}
}

// WithDeal adds a deal with optional configuration.
func (b *Builder) WithDeal(title string, opts ...DealOption) *Builder {
	d := defaultDeal(title)
	for _, opt := range opts {
		opt(&d)
	}
	b.deals = append(b.deals, d)
	return b
}

// Build saves every accumulated deal in the order added and returns them
// with their assigned IDs.
func (b *Builder) Build() []pipeline.Deal {
	b.t.Helper()
	ctx := context.Background()
	for i := range b.deals {
		require.NoError(b.t, b.repo.SaveDeal(ctx, &b.deals[i]), "saving %q", b.deals[i].Title)
	}
	return b.deals
}

// Counts returns the per-stage counts of the accumulated deals.
func (b *Builder) Counts() pipeline.DealCounts {
	counts := pipeline.NewDealCounts()
	for _, d := range b.deals {
		counts[d.Stage]++
	}
	return counts
}
