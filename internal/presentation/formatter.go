package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatJSON writes v as indented JSON.
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatCounts writes one aligned line per stage followed by the total.
// The active stage is marked with "*".
func (f *Formatter) FormatCounts(c CountsDTO) error {
	width := len("Total")
	for _, s := range c.Stages {
		width = max(width, runewidth.StringWidth(s.Label))
	}
	var b strings.Builder
	for _, s := range c.Stages {
		marker := " "
		if s.Active {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s %d\n", marker, runewidth.FillRight(s.Label, width), s.Count)
	}
	fmt.Fprintf(&b, "  %s %d\n", runewidth.FillRight("Total", width), c.Total)
	_, err := io.WriteString(f.writer, b.String())
	return err
}
