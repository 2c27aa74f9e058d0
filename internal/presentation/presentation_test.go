package presentation

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

func TestFromCounts_PipelineOrderAndZeroFill(t *testing.T) {
	counts := pipeline.DealCounts{pipeline.Technical: 3, pipeline.Prospecting: 2}
	dto := FromCounts(counts, pipeline.Selected(pipeline.Technical))

	require.Equal(t, "technical", dto.Selection)
	require.Equal(t, 5, dto.Total)
	require.Len(t, dto.Stages, 4)

	var names []string
	for _, s := range dto.Stages {
		names = append(names, s.Stage)
	}
	require.Equal(t, []string{"prospecting", "technical", "quoting", "negotiation"}, names)
	require.Equal(t, 0, dto.Stages[2].Count)
	require.True(t, dto.Stages[1].Active)
	require.False(t, dto.Stages[0].Active)
}

func TestFormatCounts_Aligned(t *testing.T) {
	var buf bytes.Buffer
	dto := FromCounts(pipeline.DealCounts{pipeline.Prospecting: 2, pipeline.Technical: 3, pipeline.Negotiation: 1}, pipeline.Selected(pipeline.Technical))

	require.NoError(t, NewFormatter(&buf).FormatCounts(dto))
	require.Equal(t, ""+
		"  Prospecting 2\n"+
		"* Technical   3\n"+
		"  Quoting     0\n"+
		"  Negotiation 1\n"+
		"  Total       6\n", buf.String())
}

func TestFormatJSON_Deals(t *testing.T) {
	var buf bytes.Buffer
	deals := []pipeline.Deal{{
		ID: "d1", Title: "Acme renewal", Amount: 1234500, Stage: pipeline.Quoting,
		UpdatedAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
	}}

	require.NoError(t, NewFormatter(&buf).FormatJSON(FromDeals(deals)))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "$12,345", got[0]["amount"])
	require.Equal(t, "quoting", got[0]["stage"])
	require.NotContains(t, got[0], "company")
}

func TestFromDeals_EmptyIsNotNil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatJSON(FromDeals(nil)))
	require.Equal(t, "[]\n", buf.String())
}
