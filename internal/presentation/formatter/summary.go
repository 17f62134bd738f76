package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/penwyp/go-claude-history/internal/core/model"
	"github.com/penwyp/go-claude-history/internal/util"
)

// displayTime renders a stored RFC3339 timestamp in the configured timezone.
func displayTime(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return util.GetTimeProvider().Format(t, "2006-01-02 15:04")
}

// SummaryFormatter prints a human-readable report of the global summary.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

func (f *SummaryFormatter) Format(summary *model.GlobalStatsSummary) error {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgWhite, color.Bold)
	value := color.New(color.FgGreen)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(header.Sprint("Claude Session History Report"))
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	if summary.DateRange.FirstMessage != nil && summary.DateRange.LastMessage != nil {
		fmt.Printf("Date Range: %s to %s (%d days)\n",
			displayTime(*summary.DateRange.FirstMessage), displayTime(*summary.DateRange.LastMessage),
			summary.DateRange.DaysSpan)
		fmt.Println()
	}

	if summary.TotalMessages == 0 {
		fmt.Println("No session data found")
		fmt.Println()
		fmt.Println(strings.Repeat("=", 60))
		return nil
	}

	fmt.Println(label.Sprint("Totals:"))
	fmt.Printf("  Projects: %s\n", value.Sprint(summary.TotalProjects))
	fmt.Printf("  Sessions: %s\n", value.Sprint(summary.TotalSessions))
	fmt.Printf("  Messages: %s\n", value.Sprint(util.FormatWithCommas(uint64(summary.TotalMessages))))
	fmt.Printf("  Tokens: %s\n", value.Sprint(util.FormatWithCommas(summary.TotalTokens)))
	fmt.Printf("  Active Time: %s\n", value.Sprint(util.FormatMinutes(int(summary.TotalSessionDurationMinutes))))
	fmt.Println()

	fmt.Println(label.Sprint("Token Breakdown:"))
	fmt.Printf("  Input: %s\n", util.FormatWithCommas(summary.TokenDistribution.Input))
	fmt.Printf("  Output: %s\n", util.FormatWithCommas(summary.TokenDistribution.Output))
	fmt.Printf("  Cache Creation: %s\n", util.FormatWithCommas(summary.TokenDistribution.CacheCreation))
	fmt.Printf("  Cache Read: %s\n", util.FormatWithCommas(summary.TokenDistribution.CacheRead))
	fmt.Println()

	if len(summary.MostUsedTools) > 0 {
		fmt.Println(label.Sprint("Most Used Tools:"))
		count := min(5, len(summary.MostUsedTools))
		for _, tool := range summary.MostUsedTools[:count] {
			fmt.Printf("  %-20s %6d uses  %5.1f%% success\n",
				tool.ToolName, tool.UsageCount, tool.SuccessRate)
		}
		fmt.Println()
	}

	if len(summary.ModelDistribution) > 0 {
		fmt.Println(label.Sprint("Model Usage:"))
		for _, m := range summary.ModelDistribution {
			fmt.Printf("  %-32s %8s msgs  %12s tokens\n",
				util.SimplifyModelName(m.ModelName), util.FormatWithCommas(uint64(m.MessageCount)), util.FormatWithCommas(m.TokenCount))
		}
		fmt.Println()
	}

	if len(summary.TopProjects) > 0 {
		fmt.Println(label.Sprint("Top Projects:"))
		for i, p := range summary.TopProjects {
			fmt.Printf("  %2d. %-32s %6d sessions  %12s tokens\n",
				i+1, util.ExtractProjectName(p.ProjectName), p.Sessions, util.FormatWithCommas(p.Tokens))
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("=", 60))

	return nil
}
