package sqlite

import (
	"fmt"
	"time"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

// DealModel is the row shape of the deals table. Times are Unix seconds.
type DealModel struct {
	ID        string
	Title     string
	Company   string
	Amount    int64
	Stage     string
	Notes     string
	CreatedAt int64
	UpdatedAt int64
}

func toDealModel(d *pipeline.Deal, createdAt time.Time) *DealModel {
	return &DealModel{
		ID:        d.ID,
		Title:     d.Title,
		Company:   d.Company,
		Amount:    d.Amount,
		Stage:     d.Stage.String(),
		Notes:     d.Notes,
		CreatedAt: createdAt.Unix(),
		UpdatedAt: d.UpdatedAt.Unix(),
	}
}

func (m *DealModel) toDomain() (pipeline.Deal, error) {
	stage, err := pipeline.ParseStage(m.Stage)
	if err != nil {
		return pipeline.Deal{}, fmt.Errorf("deal %s: %w", m.ID, err)
	}
	return pipeline.Deal{
		ID:        m.ID,
		Title:     m.Title,
		Company:   m.Company,
		Amount:    m.Amount,
		Stage:     stage,
		Notes:     m.Notes,
		UpdatedAt: time.Unix(m.UpdatedAt, 0),
	}, nil
}
