package formatter

import (
	"fmt"

	"github.com/penwyp/go-claude-history/internal/core/model"
)

// Formatter renders a global stats summary to stdout.
type Formatter interface {
	Format(summary *model.GlobalStatsSummary) error
}

// New returns the formatter for an output format name.
func New(format string) (Formatter, error) {
	switch format {
	case "json":
		return NewJSONFormatter(), nil
	case "table":
		return NewTableFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
