// Package pipeline defines the sales pipeline domain: stages, their display
// metadata, per-stage deal counts and the optional stage selection.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStage is returned when a string does not name a Stage.
var ErrUnknownStage = errors.New("unknown stage")

// Stage is one phase of the sales pipeline.
type Stage int

const (
	Prospecting Stage = iota
	Technical
	Quoting
	Negotiation

	stageCount = iota
)

// StageInfo is the static display metadata for a Stage.
type StageInfo struct {
	Label string
	Color string // hex, e.g. "#54A0FF"
}

// stageOrder is the fixed display order.
var stageOrder = [stageCount]Stage{Prospecting, Technical, Quoting, Negotiation}

var stageNames = [stageCount]string{
	Prospecting: "prospecting",
	Technical:   "technical",
	Quoting:     "quoting",
	Negotiation: "negotiation",
}

var stageInfo = [stageCount]StageInfo{
	Prospecting: {Label: "Prospecting", Color: "#54A0FF"},
	Technical:   {Label: "Technical", Color: "#7D56F4"},
	Quoting:     {Label: "Quoting", Color: "#FECA57"},
	Negotiation: {Label: "Negotiation", Color: "#73F59F"},
}

// Stages returns every stage in display order.
// The returned slice is a fresh copy.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder[:])
	return out
}

// Valid reports whether s is one of the defined stages.
func (s Stage) Valid() bool {
	return s >= 0 && int(s) < stageCount
}

// String returns the lowercase stage name used in config, storage and zone IDs.
func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Info returns the display metadata for s.
func Info(s Stage) StageInfo {
	return stageInfo[s]
}

// Index returns the position of s in display order.
func (s Stage) Index() int {
	return int(s)
}

// ParseStage converts a stage name (case-insensitive) to a Stage.
func ParseStage(name string) (Stage, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range stageNames {
		if candidate == n {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStage, name)
}

// MarshalText implements encoding.TextMarshaler so stages read naturally in YAML.
func (s Stage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStage, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stage) UnmarshalText(text []byte) error {
	parsed, err := ParseStage(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DealCounts maps each stage to the number of deals currently in it.
// Callers are expected to supply an entry for every stage.
type DealCounts map[Stage]int

// NewDealCounts returns counts with every stage present at zero.
func NewDealCounts() DealCounts {
	counts := make(DealCounts, stageCount)
	for _, s := range stageOrder {
		counts[s] = 0
	}
	return counts
}

// Total returns the sum over all stages.
func (c DealCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
