package testutil

import (
	"time"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

// DealOption configures a deal added through Builder.WithDeal.
type DealOption func(*pipeline.Deal)

func defaultDeal(title string) pipeline.Deal {
	return pipeline.Deal{
		Title: title,
		Stage: pipeline.Prospecting,
	}
}

// Company sets the company name.
func Company(name string) DealOption {
	return func(d *pipeline.Deal) { d.Company = name }
}

// Dollars sets the amount in whole dollars.
func Dollars(n int64) DealOption {
	return func(d *pipeline.Deal) { d.Amount = n * 100 }
}

// InStage sets the stage.
func InStage(s pipeline.Stage) DealOption {
	return func(d *pipeline.Deal) { d.Stage = s }
}

// Notes sets the markdown notes.
func Notes(md string) DealOption {
	return func(d *pipeline.Deal) { d.Notes = md }
}

// ID fixes the deal ID instead of letting the repository assign one.
func ID(id string) DealOption {
	return func(d *pipeline.Deal) { d.ID = id }
}

// UpdatedAt sets the update time. Repositories that stamp their own time
// on save overwrite it.
func UpdatedAt(t time.Time) DealOption {
	return func(d *pipeline.Deal) { d.UpdatedAt = t }
}
