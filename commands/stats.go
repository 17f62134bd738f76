package commands

import (
	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-history/internal/presentation/formatter"
	"github.com/penwyp/go-claude-history/internal/stats"
	"github.com/penwyp/go-claude-history/internal/util"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Token and usage statistics",
	Long: `Compute token usage statistics from session logs.

Subcommands cover a single session file, all sessions of a project, a
comparison of one session against its project, and a global summary
across every project.`,
}

var statsSessionCmd = &cobra.Command{
	Use:   "session <session-file>",
	Short: "Token statistics for a single session file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := stats.GetSessionTokenStats(util.ExpandPath(args[0]))
		if err != nil {
			return err
		}
		return formatter.WriteJSON(result)
	},
}

var statsProjectCmd = &cobra.Command{
	Use:   "project <project>",
	Short: "Per-session token statistics for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := stats.GetProjectTokenStats(resolveProjectDir(args[0]), concurrency)
		if err != nil {
			return err
		}
		return formatter.WriteJSON(result)
	},
}

var statsSummaryCmd = &cobra.Command{
	Use:   "summary <project>",
	Short: "Aggregated statistics for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := stats.GetProjectStatsSummary(resolveProjectDir(args[0]), concurrency)
		if err != nil {
			return err
		}
		return formatter.WriteJSON(result)
	},
}

var statsCompareCmd = &cobra.Command{
	Use:   "compare <session-id> <project>",
	Short: "Compare a session against its project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := stats.GetSessionComparison(args[0], resolveProjectDir(args[1]), concurrency)
		if err != nil {
			return err
		}
		return formatter.WriteJSON(result)
	},
}

var statsGlobalCmd = &cobra.Command{
	Use:   "global",
	Short: "Global usage summary across all projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := stats.GetGlobalStatsSummary(dataDir, concurrency)
		if err != nil {
			return err
		}
		f, err := formatter.New(outputFormat)
		if err != nil {
			return err
		}
		return f.Format(summary)
	},
}

func init() {
	statsGlobalCmd.Flags().StringVarP(&outputFormat, "output", "o", "summary",
		"Output format (json, table, summary, csv)")

	statsCmd.AddCommand(statsSessionCmd)
	statsCmd.AddCommand(statsProjectCmd)
	statsCmd.AddCommand(statsSummaryCmd)
	statsCmd.AddCommand(statsCompareCmd)
	statsCmd.AddCommand(statsGlobalCmd)
	rootCmd.AddCommand(statsCmd)
}
