package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-history/internal/session"
	"github.com/penwyp/go-claude-history/internal/util"
)

var contentFile string

var restoreCmd = &cobra.Command{
	Use:   "restore <target-file>",
	Short: "Restore a file to previously recorded content",
	Long: `Write content back to a file, typically content recovered with the
edits command. The target must be an absolute path without traversal
components. Content is read from --content-file or from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().StringVar(&contentFile, "content-file", "",
		"File holding the content to write (defaults to stdin)")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	var content []byte
	var err error
	if contentFile != "" {
		content, err = os.ReadFile(util.ExpandPath(contentFile))
	} else {
		content, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	if err := session.RestoreFile(args[0], string(content)); err != nil {
		return err
	}
	fmt.Printf("Restored %s (%d bytes)\n", args[0], len(content))
	return nil
}
