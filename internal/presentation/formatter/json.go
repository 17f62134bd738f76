package formatter

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-claude-history/internal/core/model"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(summary *model.GlobalStatsSummary) error {
	return WriteJSON(summary)
}

// WriteJSON renders any value as indented JSON on stdout.
func WriteJSON(v any) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
