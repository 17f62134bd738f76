package commands

import (
	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-history/internal/presentation/formatter"
	"github.com/penwyp/go-claude-history/internal/session"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [project]",
	Short: "List projects or the sessions of a project",
	Long: `Without arguments, list all projects found under <dir>/projects.
With a project name or path, list that project's sessions with per-session
metadata (message counts, time range, tool usage, errors).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		projects, err := session.ListProjects(dataDir)
		if err != nil {
			return err
		}
		return formatter.WriteJSON(projects)
	}

	sessions, err := session.LoadProjectSessions(resolveProjectDir(args[0]), concurrency)
	if err != nil {
		return err
	}
	return formatter.WriteJSON(sessions)
}
