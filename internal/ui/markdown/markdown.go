// Package markdown renders deal notes for the details panel.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/dealboard/internal/log"
)

// noMarginStyle is a JSON style that removes document margins.
// It inherits from the base style but overrides margin to 0.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Style names accepted by New. An empty style detects dark/light.
const (
	StyleAuto  = ""
	StyleNoTTY = "notty"
	StyleDark  = "dark"
	StyleLight = "light"
)

// Renderer wraps glamour with dealboard-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer that wraps at width.
func New(width int, style string) (*Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == StyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	opts = append(opts, glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)))

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// RenderOrPlain renders markdown, falling back to word-wrapped source text
// when glamour fails. A nil renderer always falls back.
func (r *Renderer) RenderOrPlain(markdown string, width int) string {
	if r != nil {
		out, err := r.Render(markdown)
		if err == nil {
			return strings.Trim(out, "\n")
		}
		log.ErrorErr(log.CatUI, "markdown render failed", err)
	}
	return wordwrap.String(strings.TrimSpace(markdown), width)
}
