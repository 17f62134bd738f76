package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-history/internal/presentation/formatter"
	"github.com/penwyp/go-claude-history/internal/stats"
	"github.com/penwyp/go-claude-history/internal/util"
)

var (
	// Logging related
	debug bool

	// Data path
	dataDir string

	// Output related
	outputFormat string
	timezone     string

	// Pagination
	offset int
	limit  int

	concurrency int

	rootCmd = &cobra.Command{
		Use:   "go-claude-history [flags]",
		Short: "Claude Code session history explorer",
		Long: `go-claude-history inspects the JSONL session logs recorded by Claude Code.

It reads ~/.claude/projects/**/*.jsonl and derives message views, full-text
search, token statistics and a reconstruction of recently edited files.

Examples:
  go-claude-history                                  # Global usage summary
  go-claude-history --output json                    # Summary as JSON
  go-claude-history search "refactor"                # Search all sessions
  go-claude-history sessions myproject               # List a project's sessions
  go-claude-history messages session.jsonl --limit 50
  go-claude-history edits myproject                  # Recently edited files
  go-claude-history stats project myproject`,
		PersistentPreRunE: initRuntime,
		RunE:              runGlobalSummary,
	}
)

const (
	defaultLogFile   = "~/.go-claude-history/logs/app.log"
	defaultPresetDir = "~/.go-claude-history/presets"
	defaultDataDir   = "~/.claude"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", defaultDataDir,
		"Claude data directory path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", runtime.NumCPU(),
		"Number of files processed in parallel")

	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "summary",
		"Output format (json, table, summary, csv)")
}

// initRuntime sets up logging and the time provider before any subcommand.
func initRuntime(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := util.ExpandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return err
	}
	util.InitLogger(logLevel, logFile, debug)
	if err := util.InitializeTimeProvider(timezone); err != nil {
		return err
	}

	dataDir = util.ExpandPath(dataDir)
	return nil
}

func runGlobalSummary(cmd *cobra.Command, args []string) error {
	summary, err := stats.GetGlobalStatsSummary(dataDir, concurrency)
	if err != nil {
		return err
	}

	f, err := formatter.New(outputFormat)
	if err != nil {
		return err
	}
	return f.Format(summary)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// resolveProjectDir accepts either a path to a project directory or a bare
// project directory name under <dataDir>/projects.
func resolveProjectDir(arg string) string {
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return util.ExpandPath(arg)
	}
	return filepath.Join(dataDir, "projects", arg)
}
