package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/penwyp/go-claude-history/internal/core/model"
	"github.com/penwyp/go-claude-history/internal/util"
)

// TableFormatter renders the daily stats of a summary as a boxed table.
type TableFormatter struct {
	headers []string
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		headers: []string{
			"Date", "Messages", "Input", "Output", "Total Tokens", "Active Hours",
		},
	}
}

func (f *TableFormatter) Format(summary *model.GlobalStatsSummary) error {
	rows := make([][]string, 0, len(summary.DailyStats)+1)
	for _, day := range summary.DailyStats {
		rows = append(rows, []string{
			day.Date,
			util.FormatWithCommas(uint64(day.MessageCount)),
			util.FormatWithCommas(day.InputTokens),
			util.FormatWithCommas(day.OutputTokens),
			util.FormatWithCommas(day.TotalTokens),
			fmt.Sprintf("%d", day.ActiveHours),
		})
	}

	var totalMessages, totalInput, totalOutput, totalTokens uint64
	for _, day := range summary.DailyStats {
		totalMessages += uint64(day.MessageCount)
		totalInput += day.InputTokens
		totalOutput += day.OutputTokens
		totalTokens += day.TotalTokens
	}
	totalRow := []string{
		"Total",
		util.FormatWithCommas(totalMessages),
		util.FormatWithCommas(totalInput),
		util.FormatWithCommas(totalOutput),
		util.FormatWithCommas(totalTokens),
		"",
	}

	widths := f.calculateColumnWidths(rows, totalRow)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "middle")
	f.printRow(totalRow, widths)
	f.printBorder(widths, "bottom")

	return nil
}

// calculateColumnWidths sizes each column to its widest cell, clamped so the
// table still fits the terminal when one is attached.
func (f *TableFormatter) calculateColumnWidths(rows [][]string, totalRow []string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = runewidth.StringWidth(header)
	}

	measure := func(row []string) {
		for i, value := range row {
			if w := runewidth.StringWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for _, row := range rows {
		measure(row)
	}
	measure(totalRow)

	for i := range widths {
		if widths[i] < 8 {
			widths[i] = 8
		}
	}

	if termWidth, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && termWidth > 0 {
		total := 1
		for _, w := range widths {
			total += w + 3
		}
		for i := 0; total > termWidth && i < len(widths); i++ {
			if widths[i] > 12 {
				total -= widths[i] - 12
				widths[i] = 12
			}
		}
	}

	return widths
}

func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right, separator string

	switch borderType {
	case "top":
		left, middle, right, separator = "┌", "┬", "┐", "─"
	case "middle":
		left, middle, right, separator = "├", "┼", "┤", "─"
	case "bottom":
		left, middle, right, separator = "└", "┴", "┘", "─"
	}

	fmt.Print(left)
	for i, width := range widths {
		fmt.Print(strings.Repeat(separator, width+2))
		if i < len(widths)-1 {
			fmt.Print(middle)
		}
	}
	fmt.Println(right)
}

func (f *TableFormatter) printRow(values []string, widths []int) {
	fmt.Print("│")
	for i, value := range values {
		value = runewidth.Truncate(value, widths[i], "…")
		if i == 0 {
			fmt.Printf(" %s │", runewidth.FillRight(value, widths[i]))
		} else {
			fmt.Printf(" %s │", runewidth.FillLeft(value, widths[i]))
		}
	}
	fmt.Println()
}
