// Package stageselector renders the row of pipeline stage buttons.
//
// The selector holds no state. Each render takes the current Props from the
// parent, which owns the active selection and the deal counts. A click never
// changes anything here; it asks the parent, through OnSelect, to move to the
// next selection: the clicked stage, or none when that stage was already active.
package stageselector

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/dealboard/internal/keys"
	"github.com/zjrosen/dealboard/internal/pipeline"
	"github.com/zjrosen/dealboard/internal/ui/styles"
)

// activeMarker prefixes the active button so the state survives colorless output.
const (
	activeMarker   = "▸ "
	inactiveMarker = "  "
	buttonGap      = " "
)

// SelectMsg carries the requested next selection when Props.OnSelect is nil.
type SelectMsg struct {
	Next pipeline.Selection
}

// Props is everything the selector needs for one render.
type Props struct {
	// Active is the parent's current selection.
	Active pipeline.Selection
	// Counts must hold an entry for every stage. A missing entry renders as 0.
	Counts pipeline.DealCounts
	// OnSelect receives the next selection once per click. Nil emits SelectMsg.
	OnSelect func(next pipeline.Selection) tea.Cmd
}

// Button is the view model for one stage button.
type Button struct {
	Stage  pipeline.Stage
	Label  string
	Color  lipgloss.AdaptiveColor
	Count  int
	Active bool
}

// Text is the visible button text, e.g. "Technical (5)".
func (b Button) Text() string {
	return fmt.Sprintf("%s (%d)", b.Label, b.Count)
}

// Buttons returns one button per stage in pipeline.Stages() order.
func Buttons(p Props) []Button {
	stages := pipeline.Stages()
	out := make([]Button, len(stages))
	for i, s := range stages {
		out[i] = Button{
			Stage:  s,
			Label:  pipeline.Info(s).Label,
			Color:  styles.StageColor(s),
			Count:  p.Counts[s],
			Active: p.Active.Is(s),
		}
	}
	return out
}

// Render draws the button row. Each button is wrapped in a zone named by
// ZoneID so HandleMouse can resolve clicks after the root view is scanned.
func Render(p Props) string {
	buttons := Buttons(p)
	parts := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			parts = append(parts, buttonGap)
		}
		parts = append(parts, zone.Mark(ZoneID(b.Stage), renderButton(b)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderButton(b Button) string {
	if b.Active {
		return styles.ActiveStageButton(b.Color).Render(activeMarker + b.Text())
	}
	return styles.StageButtonStyle.Render(inactiveMarker + b.Text())
}

// Click reports a click on stage s: OnSelect runs exactly once with
// pipeline.Toggle(p.Active, s) and its command is returned.
func Click(p Props, s pipeline.Stage) tea.Cmd {
	next := pipeline.Toggle(p.Active, s)
	if p.OnSelect == nil {
		return func() tea.Msg { return SelectMsg{Next: next} }
	}
	return p.OnSelect(next)
}

// HandleMouse clicks the stage under a left-button release. Any other mouse
// event returns nil without calling OnSelect.
func HandleMouse(p Props, msg tea.MouseMsg) tea.Cmd {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return nil
	}
	for _, s := range pipeline.Stages() {
		if z := zone.Get(ZoneID(s)); z != nil && z.InBounds(msg) {
			return Click(p, s)
		}
	}
	return nil
}

// HandleKey maps stage keys to clicks. The clear key only acts while a stage
// is active, where it is the same as clicking that stage again.
func HandleKey(p Props, msg tea.KeyMsg, k keys.StageKeys) tea.Cmd {
	if s, ok := k.Match(msg); ok {
		return Click(p, s)
	}
	if k.MatchClear(msg) {
		if s, ok := p.Active.Stage(); ok {
			return Click(p, s)
		}
	}
	return nil
}
