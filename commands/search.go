package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-history/internal/presentation/formatter"
	"github.com/penwyp/go-claude-history/internal/session"
	"github.com/penwyp/go-claude-history/internal/util"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search message content across all sessions",
	Long: `Search every session file under the Claude data directory for messages
whose content contains the query (case-insensitive). Matches are printed
as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	matches, err := session.SearchMessages(dataDir, query, concurrency)
	if err != nil {
		return err
	}
	util.LogInfo(fmt.Sprintf("Search for %q matched %d messages", query, len(matches)))
	return formatter.WriteJSON(matches)
}
