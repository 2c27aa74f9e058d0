package presentation

import (
	"time"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

// StageCountDTO is one stage and the number of deals in it.
type StageCountDTO struct {
	Stage  string `json:"stage"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active,omitempty"`
}

// CountsDTO is the pipeline summary printed by the counts command.
type CountsDTO struct {
	Selection string          `json:"selection"`
	Total     int             `json:"total"`
	Stages    []StageCountDTO `json:"stages"` // always in pipeline order
}

// DealDTO represents a deal for presentation.
type DealDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Company   string    `json:"company,omitempty"`
	Amount    string    `json:"amount"`
	Stage     string    `json:"stage"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromCounts converts counts to a DTO. Stages missing from counts are
// reported as zero.
func FromCounts(counts pipeline.DealCounts, sel pipeline.Selection) CountsDTO {
	stages := pipeline.Stages()
	dto := CountsDTO{
		Selection: sel.String(),
		Stages:    make([]StageCountDTO, 0, len(stages)),
	}
	for _, s := range stages {
		n := counts[s]
		dto.Total += n
		dto.Stages = append(dto.Stages, StageCountDTO{
			Stage:  s.String(),
			Label:  pipeline.Info(s).Label,
			Count:  n,
			Active: sel.Is(s),
		})
	}
	return dto
}

// FromDeal converts a domain deal to a DTO.
func FromDeal(d pipeline.Deal) DealDTO {
	return DealDTO{
		ID:        d.ID,
		Title:     d.Title,
		Company:   d.Company,
		Amount:    pipeline.FormatAmount(d.Amount),
		Stage:     d.Stage.String(),
		UpdatedAt: d.UpdatedAt,
	}
}

// FromDeals converts deals to DTOs, never returning nil.
func FromDeals(deals []pipeline.Deal) []DealDTO {
	out := make([]DealDTO, 0, len(deals))
	for _, d := range deals {
		out = append(out, FromDeal(d))
	}
	return out
}
