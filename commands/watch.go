package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-history/internal/data/watcher"
	"github.com/penwyp/go-claude-history/internal/presentation/formatter"
	"github.com/penwyp/go-claude-history/internal/stats"
	"github.com/penwyp/go-claude-history/internal/util"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch session logs and refresh the summary on change",
	Long: `Watch the Claude data directory for session log changes and re-render
the global usage summary whenever files are created or modified. Changes
arriving in quick succession are coalesced into one refresh.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second,
		"Minimum delay between refreshes")
	watchCmd.Flags().StringVarP(&outputFormat, "output", "o", "summary",
		"Output format (json, table, summary, csv)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	projectsDir := filepath.Join(dataDir, "projects")
	if _, err := os.Stat(projectsDir); err != nil {
		return fmt.Errorf("projects directory not accessible: %w", err)
	}

	w, err := watcher.NewFileWatcher([]string{projectsDir})
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer w.Close()

	f, err := formatter.New(outputFormat)
	if err != nil {
		return err
	}

	render := func() {
		summary, err := stats.GetGlobalStatsSummary(dataDir, concurrency)
		if err != nil {
			util.LogError(fmt.Sprintf("Failed to compute summary: %v", err))
			return
		}
		if err := f.Format(summary); err != nil {
			util.LogError(fmt.Sprintf("Failed to render summary: %v", err))
		}
	}

	render()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	debounce := time.NewTimer(watchInterval)
	if !debounce.Stop() {
		<-debounce.C
	}
	dirty := false

	for {
		select {
		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			util.LogDebug(fmt.Sprintf("File event: %s %s", event.Operation, event.Path))
			if !dirty {
				debounce.Reset(watchInterval)
				dirty = true
			}
		case <-debounce.C:
			dirty = false
			render()
		case sig := <-sigCh:
			util.LogInfo(fmt.Sprintf("Received signal %v, stopping watch", sig))
			return nil
		}
	}
}
