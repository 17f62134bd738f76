package formatter

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/penwyp/go-claude-history/internal/core/model"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(summary *model.GlobalStatsSummary) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	headers := []string{
		"Date", "Messages", "Sessions", "Input", "Output",
		"Total Tokens", "Active Hours",
	}
	if err := w.Write(headers); err != nil {
		return err
	}

	for _, day := range summary.DailyStats {
		record := []string{
			day.Date,
			fmt.Sprintf("%d", day.MessageCount),
			fmt.Sprintf("%d", day.SessionCount),
			fmt.Sprintf("%d", day.InputTokens),
			fmt.Sprintf("%d", day.OutputTokens),
			fmt.Sprintf("%d", day.TotalTokens),
			fmt.Sprintf("%d", day.ActiveHours),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
