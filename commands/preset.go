package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-history/internal/preset"
	"github.com/penwyp/go-claude-history/internal/presentation/formatter"
	"github.com/penwyp/go-claude-history/internal/util"
)

var (
	presetName         string
	presetSettingsFile string
	presetMcpFile      string
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage configuration presets",
	Long: `Store and retrieve named configuration presets. A preset bundles a
settings object and an MCP server map, both arbitrary JSON objects.`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := presetStore().List()
		if err != nil {
			return err
		}
		return formatter.WriteJSON(presets)
	},
}

var presetGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a preset by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := presetStore().Get(args[0])
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("preset not found: %s", args[0])
		}
		return formatter.WriteJSON(p)
	},
}

var presetSaveCmd = &cobra.Command{
	Use:   "save [id]",
	Short: "Create or update a preset",
	Long: `Save a preset. Without an id a new preset is created; with an id the
existing preset is updated in place. Settings and MCP servers are read
from the JSON files given by --settings and --mcp.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := readJSONFlag(presetSettingsFile, "{}")
		if err != nil {
			return err
		}
		mcpServers, err := readJSONFlag(presetMcpFile, "{}")
		if err != nil {
			return err
		}

		input := preset.Input{
			Name:       presetName,
			Settings:   settings,
			McpServers: mcpServers,
		}
		if len(args) == 1 {
			input.Id = &args[0]
		}

		p, err := presetStore().Save(input)
		if err != nil {
			return err
		}
		return formatter.WriteJSON(p)
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := presetStore().Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted preset %s\n", args[0])
		return nil
	},
}

func init() {
	presetSaveCmd.Flags().StringVar(&presetName, "name", "", "Preset display name")
	presetSaveCmd.Flags().StringVar(&presetSettingsFile, "settings", "",
		"Path to a JSON file with the settings object")
	presetSaveCmd.Flags().StringVar(&presetMcpFile, "mcp", "",
		"Path to a JSON file with the MCP server map")

	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetGetCmd)
	presetCmd.AddCommand(presetSaveCmd)
	presetCmd.AddCommand(presetDeleteCmd)
	rootCmd.AddCommand(presetCmd)
}

func presetStore() *preset.Store {
	return preset.NewStore(util.ExpandPath(defaultPresetDir))
}

func readJSONFlag(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(util.ExpandPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
