package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quickexport/internal/adapters/memory"
	"quickexport/internal/adapters/scenefile"
	"quickexport/internal/config"
	"quickexport/internal/logger"
)

var (
	scenePath    string
	settingsPath string
	historyPath  string
	verbose      bool
	host         *memory.Host
)

var rootCmd = &cobra.Command{
	Use:   "quickexport",
	Short: "Export scene nodes with per-node settings",
	Long: `quickexport exports the contents of a scene-graph node to a model
file, driven by an INI settings document with one section per node.

Sub-nodes can be excluded from an ancestor's export, meshes can be merged
per node, and the scene is left exactly as it was once the export is done.
The scene itself is described in a TOML file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		logger.SetVerbose(verbose)
		h, err := scenefile.Load(scenePath)
		if err != nil {
			return err
		}
		if err := h.UseSettingsFile(settingsPath); err != nil {
			return err
		}
		host = h
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&scenePath, "scene", "s", config.ScenePath(), "path to the scene description")
	rootCmd.PersistentFlags().StringVarP(&settingsPath, "settings", "c", config.SettingsPath(), "path to the export settings document")
	rootCmd.PersistentFlags().StringVar(&historyPath, "history", config.HistoryPath(), "path to the export history database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug tracing")
}
