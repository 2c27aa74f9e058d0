package pipeline

import (
	"context"
	"errors"
)

// ErrDealNotFound is returned when a deal ID does not exist.
var ErrDealNotFound = errors.New("deal not found")

// DealRepository persists deals and answers the queries the dashboard needs.
type DealRepository interface {
	// SaveDeal inserts or updates d, assigning an ID when d.ID is empty.
	SaveDeal(ctx context.Context, d *Deal) error

	// FindDeal returns the deal with id or ErrDealNotFound.
	FindDeal(ctx context.Context, id string) (Deal, error)

	// ListDeals returns deals in the selected stage, or all deals for None,
	// most recently updated first.
	ListDeals(ctx context.Context, sel Selection) ([]Deal, error)

	// CountByStage returns a count for every stage, zero included.
	CountByStage(ctx context.Context) (DealCounts, error)

	// MoveDeal changes the stage of a deal.
	MoveDeal(ctx context.Context, id string, to Stage) error

	// DeleteDeal removes a deal.
	DeleteDeal(ctx context.Context, id string) error
}
