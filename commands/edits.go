package commands

import (
	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-history/internal/presentation/formatter"
	"github.com/penwyp/go-claude-history/internal/session"
)

var editsCmd = &cobra.Command{
	Use:   "edits <project>",
	Short: "Show recently edited files in a project",
	Long: `Reconstruct the list of files recently edited in a project's sessions,
newest first, with the content each file had after its last change.

Edits are replayed from tool results recorded in the session logs, filtered
to the project's working directory and deduplicated per file path.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdits,
}

func init() {
	editsCmd.Flags().IntVar(&offset, "offset", 0, "Number of files to skip")
	editsCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of files to return")
	rootCmd.AddCommand(editsCmd)
}

func runEdits(cmd *cobra.Command, args []string) error {
	result, err := session.GetRecentEdits(resolveProjectDir(args[0]), offset, limit, concurrency)
	if err != nil {
		return err
	}
	return formatter.WriteJSON(result)
}
