package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

// MemoryRepo is an in-memory pipeline.DealRepository for tests that do not
// need SQLite.
type MemoryRepo struct {
	mu    sync.Mutex
	deals map[string]pipeline.Deal
	next  int
	now   func() time.Time
	tick  time.Duration
}

// NewMemoryRepo creates an empty repository. Each save advances its clock
// by one second so list order is deterministic.
func NewMemoryRepo() *MemoryRepo {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &MemoryRepo{deals: make(map[string]pipeline.Deal)}
	r.now = func() time.Time {
		r.tick += time.Second
		return base.Add(r.tick)
	}
	return r
}

func (r *MemoryRepo) SaveDeal(_ context.Context, d *pipeline.Deal) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		r.next++
		d.ID = fmt.Sprintf("deal-%d", r.next)
	}
	d.UpdatedAt = r.now()
	r.deals[d.ID] = *d
	return nil
}

func (r *MemoryRepo) FindDeal(_ context.Context, id string) (pipeline.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deals[id]
	if !ok {
		return pipeline.Deal{}, fmt.Errorf("%w: %s", pipeline.ErrDealNotFound, id)
	}
	return d, nil
}

func (r *MemoryRepo) ListDeals(_ context.Context, sel pipeline.Selection) ([]pipeline.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]pipeline.Deal, 0, len(r.deals))
	for _, d := range r.deals {
		if sel.IsNone() || sel.Is(d.Stage) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b pipeline.Deal) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) CountByStage(_ context.Context) (pipeline.DealCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := pipeline.NewDealCounts()
	for _, d := range r.deals {
		counts[d.Stage]++
	}
	return counts, nil
}

func (r *MemoryRepo) MoveDeal(_ context.Context, id string, to pipeline.Stage) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %d", pipeline.ErrUnknownStage, int(to))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deals[id]
	if !ok {
		return fmt.Errorf("%w: %s", pipeline.ErrDealNotFound, id)
	}
	d.Stage = to
	d.UpdatedAt = r.now()
	r.deals[id] = d
	return nil
}

func (r *MemoryRepo) DeleteDeal(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deals[id]; !ok {
		return fmt.Errorf("%w: %s", pipeline.ErrDealNotFound, id)
	}
	delete(r.deals, id)
	return nil
}

var _ pipeline.DealRepository = (*MemoryRepo)(nil)
