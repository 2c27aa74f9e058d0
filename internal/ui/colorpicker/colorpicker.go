// Package colorpicker provides the stage color picker shown over the
// dashboard.
package colorpicker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/dealboard/internal/pipeline"
	"github.com/zjrosen/dealboard/internal/ui/overlay"
	"github.com/zjrosen/dealboard/internal/ui/styles"
)

// PresetColor represents a named color option.
type PresetColor struct {
	Name string
	Hex  string // e.g., "#FF8787"
}

// DefaultPresets is the palette offered for stage buttons.
var DefaultPresets = []PresetColor{
	{Name: "Red", Hex: "#FF8787"},
	{Name: "Coral", Hex: "#FF6B6B"},
	{Name: "Orange", Hex: "#FF9F43"},
	{Name: "Yellow", Hex: "#FECA57"},
	{Name: "Green", Hex: "#73F59F"},
	{Name: "Emerald", Hex: "#34D399"},
	{Name: "Teal", Hex: "#89DCEB"},
	{Name: "Blue", Hex: "#54A0FF"},
	{Name: "Indigo", Hex: "#818CF8"},
	{Name: "Purple", Hex: "#7D56F4"},
	{Name: "Pink", Hex: "#CBA6F7"},
	{Name: "Gray", Hex: "#BBBBBB"},
}

const boxWidth = 34

// SelectMsg is sent when a color is chosen for Stage.
type SelectMsg struct {
	Stage pipeline.Stage
	Hex   string
}

// ResetMsg is sent when the override for Stage should be removed.
type ResetMsg struct {
	Stage pipeline.Stage
}

// CancelMsg is sent when the picker is closed without a choice.
type CancelMsg struct{}

// Model holds the color picker state.
type Model struct {
	stage    pipeline.Stage
	presets  []PresetColor
	cursor   int
	custom   textinput.Model
	inCustom bool
	invalid  bool // set after enter on a malformed hex
	width    int
	height   int
}

// New creates a color picker with the default presets.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "#RRGGBB"
	ti.CharLimit = 7
	ti.Width = 10
	ti.Prompt = ""

	return Model{
		presets: DefaultPresets,
		custom:  ti,
	}
}

// Open resets the picker for stage and puts the cursor on the preset
// matching current, or on the first preset.
func (m Model) Open(stage pipeline.Stage, current string) Model {
	m.stage = stage
	m.cursor = 0
	m.inCustom = false
	m.invalid = false
	m.custom.SetValue("")
	m.custom.Blur()
	for i, p := range m.presets {
		if strings.EqualFold(p.Hex, current) {
			m.cursor = i
			break
		}
	}
	return m
}

// Stage returns the stage being edited.
func (m Model) Stage() pipeline.Stage {
	return m.stage
}

// Selected returns the preset under the cursor.
func (m Model) Selected() PresetColor {
	return m.presets[m.cursor]
}

// InCustomMode reports whether the hex input is open.
func (m Model) InCustomMode() bool {
	return m.inCustom
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.inCustom {
		return m.updateCustom(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "j", "down", "ctrl+n":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "k", "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		return m, m.emit(SelectMsg{Stage: m.stage, Hex: m.presets[m.cursor].Hex})
	case "c":
		m.inCustom = true
		m.invalid = false
		m.custom.SetValue("")
		m.custom.Focus()
		return m, textinput.Blink
	case "r":
		return m, m.emit(ResetMsg{Stage: m.stage})
	case "esc":
		return m, m.emit(CancelMsg{})
	}
	return m, nil
}

func (m Model) updateCustom(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			hex := strings.TrimSpace(m.custom.Value())
			if !styles.IsValidHexColor(hex) {
				m.invalid = true
				return m, nil
			}
			return m, m.emit(SelectMsg{Stage: m.stage, Hex: strings.ToUpper(hex)})
		case "esc":
			m.inCustom = false
			m.invalid = false
			m.custom.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.custom, cmd = m.custom.Update(msg)
	if m.invalid && styles.IsValidHexColor(m.custom.Value()) {
		m.invalid = false
	}
	return m, cmd
}

func (m Model) emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the picker box.
func (m Model) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor).PaddingLeft(1).
		Render("Color: " + pipeline.Info(m.stage).Label)
	rule := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor).Render(strings.Repeat("─", boxWidth))
	hint := styles.HelpSectionStyle.PaddingLeft(1)

	var b strings.Builder
	b.WriteString(title + "\n" + rule + "\n")

	if m.inCustom {
		line := " Hex: " + m.custom.View()
		if v := m.custom.Value(); styles.IsValidHexColor(v) {
			line += "  " + swatch(v)
		}
		b.WriteString(line + "\n")
		if m.invalid {
			b.WriteString(lipgloss.NewStyle().Foreground(styles.StatusErrorColor).PaddingLeft(1).Render("Invalid hex color") + "\n")
		}
		b.WriteString("\n" + hint.Render("enter save  esc back"))
	} else {
		for i, p := range m.presets {
			prefix := " "
			if i == m.cursor {
				prefix = styles.SelectionIndicatorStyle.Render(">")
			}
			name := lipgloss.NewStyle().Width(10).Render(p.Name)
			b.WriteString(prefix + swatch(p.Hex) + " " + name + " " + styles.DealDetailStyle.Render(p.Hex) + "\n")
		}
		b.WriteString("\n" + hint.Render("enter pick  c custom  r reset"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderHighlightColor).
		Width(boxWidth).
		Render(b.String())
}

// Overlay renders the picker centered on top of background.
func (m Model) Overlay(background string) string {
	return overlay.Center(m.View(), background, m.width, m.height)
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}
