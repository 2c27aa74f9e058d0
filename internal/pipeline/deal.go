package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Deal is one item moving through the pipeline.
type Deal struct {
	ID        string
	Title     string
	Company   string
	Amount    int64 // cents
	Stage     Stage
	Notes     string // markdown
	UpdatedAt time.Time
}

// Validate checks the fields a deal must carry before it is stored.
func (d Deal) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if d.Amount < 0 {
		errs = append(errs, fmt.Errorf("amount must not be negative, got %d", d.Amount))
	}
	if !d.Stage.Valid() {
		errs = append(errs, fmt.Errorf("%w: %d", ErrUnknownStage, int(d.Stage)))
	}
	return errors.Join(errs...)
}

// FormatAmount renders cents as a dollar figure, e.g. 1234500 -> "$12,345".
func FormatAmount(cents int64) string {
	dollars := cents / 100
	neg := dollars < 0
	if neg {
		dollars = -dollars
	}
	digits := fmt.Sprintf("%d", dollars)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}
