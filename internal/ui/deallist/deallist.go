// Package deallist renders the deals of the active stage as aligned rows.
package deallist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/dealboard/internal/pipeline"
	"github.com/zjrosen/dealboard/internal/ui/styles"
)

const (
	cursorPrefix   = "> "
	noCursorPrefix = "  "
	ellipsis       = "…"
	columnGap      = "  "

	minTitleWidth   = 8
	maxCompanyWidth = 24
	amountWidth     = 12
	stageWidth      = 11 // len("negotiation")
)

// Model holds the list state. Deals are owned by the parent and replaced
// wholesale on every load.
type Model struct {
	deals  []pipeline.Deal
	cursor int
	offset int
	width  int
	height int
}

// New creates an empty list.
func New() Model {
	return Model{}
}

// SetSize sets the area available to the list, header included.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m.scrollToCursor()
}

// SetDeals replaces the rows. The cursor stays on the same deal when it is
// still present, otherwise it is clamped to the new length.
func (m Model) SetDeals(deals []pipeline.Deal) Model {
	var currentID string
	if d, ok := m.Selected(); ok {
		currentID = d.ID
	}
	m.deals = deals

	if currentID != "" {
		for i, d := range deals {
			if d.ID == currentID {
				m.cursor = i
				return m.scrollToCursor()
			}
		}
	}
	m.cursor = clamp(m.cursor, 0, len(deals)-1)
	return m.scrollToCursor()
}

// Len returns the number of rows.
func (m Model) Len() int {
	return len(m.deals)
}

// Cursor returns the cursor index.
func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the deal under the cursor, or false for an empty list.
func (m Model) Selected() (pipeline.Deal, bool) {
	if m.cursor < 0 || m.cursor >= len(m.deals) {
		return pipeline.Deal{}, false
	}
	return m.deals[m.cursor], true
}

// MoveUp moves the cursor up one row.
func (m Model) MoveUp() Model {
	if m.cursor > 0 {
		m.cursor--
	}
	return m.scrollToCursor()
}

// MoveDown moves the cursor down one row.
func (m Model) MoveDown() Model {
	if m.cursor < len(m.deals)-1 {
		m.cursor++
	}
	return m.scrollToCursor()
}

// HandleMouse moves the cursor to a clicked row or scrolls with the wheel.
// It reports whether the event was consumed.
func (m Model) HandleMouse(msg tea.MouseMsg) (Model, bool) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.MoveUp(), true
	case tea.MouseButtonWheelDown:
		return m.MoveDown(), true
	}
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, false
	}
	for i := m.offset; i < min(len(m.deals), m.offset+m.visibleRows()); i++ {
		if z := zone.Get(rowZoneID(i)); z != nil && z.InBounds(msg) {
			m.cursor = i
			return m, true
		}
	}
	return m, false
}

func (m Model) visibleRows() int {
	if m.height <= 1 {
		// Unsized lists render everything.
		return max(len(m.deals), 1)
	}
	return m.height - 1
}

func (m Model) scrollToCursor() Model {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = clamp(m.offset, 0, max(len(m.deals)-rows, 0))
	return m
}

// View renders a header line and the visible rows.
func (m Model) View() string {
	if len(m.deals) == 0 {
		return styles.DealEmptyStyle.Render("No deals to show")
	}

	cols := m.columns()
	lines := make([]string, 0, m.visibleRows()+1)
	lines = append(lines, styles.DealHeaderStyle.Render(
		noCursorPrefix+cols.row("TITLE", "COMPANY", "AMOUNT", "STAGE")))

	end := min(len(m.deals), m.offset+m.visibleRows())
	for i := m.offset; i < end; i++ {
		d := m.deals[i]
		prefix := noCursorPrefix
		if i == m.cursor {
			prefix = styles.SelectionIndicatorStyle.Render(cursorPrefix)
		}
		line := prefix + cols.styledRow(d)
		lines = append(lines, zone.Mark(rowZoneID(i), line))
	}
	return strings.Join(lines, "\n")
}

type columns struct {
	title, company int
}

// columns sizes the title and company columns to the list width. Company is
// as wide as its longest value up to maxCompanyWidth; title takes the rest.
func (m Model) columns() columns {
	company := len("COMPANY")
	for _, d := range m.deals {
		company = max(company, uniseg.StringWidth(d.Company))
	}
	company = min(company, maxCompanyWidth)

	fixed := runewidth.StringWidth(noCursorPrefix) + company + amountWidth + stageWidth + 3*len(columnGap)
	title := minTitleWidth
	if m.width > 0 {
		title = max(m.width-fixed, minTitleWidth)
	} else {
		for _, d := range m.deals {
			title = max(title, uniseg.StringWidth(d.Title))
		}
	}
	return columns{title: title, company: company}
}

func (c columns) row(title, company, amount, stage string) string {
	return fit(title, c.title) + columnGap +
		fit(company, c.company) + columnGap +
		runewidth.FillLeft(amount, amountWidth) + columnGap +
		fit(stage, stageWidth)
}

func (c columns) styledRow(d pipeline.Deal) string {
	stage := styles.StageLabelStyle(styles.StageColor(d.Stage)).Render(fit(d.Stage.String(), stageWidth))
	return styles.DealTitleStyle.Render(fit(d.Title, c.title)) + columnGap +
		styles.DealDetailStyle.Render(fit(d.Company, c.company)) + columnGap +
		styles.DealDetailStyle.Render(runewidth.FillLeft(pipeline.FormatAmount(d.Amount), amountWidth)) + columnGap +
		stage
}

// fit truncates s to width display cells and pads it on the right.
func fit(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, ellipsis)
	}
	return runewidth.FillRight(s, width)
}

func rowZoneID(i int) string {
	return fmt.Sprintf("deal:%d", i)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
