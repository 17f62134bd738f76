package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-history/internal/data/parser"
	"github.com/penwyp/go-claude-history/internal/presentation/formatter"
	"github.com/penwyp/go-claude-history/internal/util"
)

var countOnly bool

var messagesCmd = &cobra.Command{
	Use:   "messages <session-file>",
	Short: "Show messages from a session file",
	Long: `Read a session JSONL file and print its messages as JSON.

Pagination is controlled with --offset and --limit. With --count only the
number of messages is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runMessages,
}

func init() {
	messagesCmd.Flags().IntVar(&offset, "offset", 0, "Number of messages to skip")
	messagesCmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of messages to return")
	messagesCmd.Flags().BoolVar(&countOnly, "count", false, "Only print the message count")
	rootCmd.AddCommand(messagesCmd)
}

func runMessages(cmd *cobra.Command, args []string) error {
	path := util.ExpandPath(args[0])

	if countOnly {
		count, err := parser.CountMessages(path)
		if err != nil {
			return err
		}
		fmt.Println(count)
		return nil
	}

	page, err := parser.LoadMessagesPage(path, offset, limit)
	if err != nil {
		return err
	}
	return formatter.WriteJSON(page)
}
