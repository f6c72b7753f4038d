package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"quickexport/internal/adapters/history"
	"quickexport/internal/application/commands"
	"quickexport/internal/logger"
	"quickexport/internal/ports"
	"quickexport/internal/settings"
)

var exportCmd = &cobra.Command{
	Use:   "export <node>",
	Short: "Export all leaves under a scene node",
	Long: `Export every included leaf under the named node, using the node's
section in the settings document.

On the first export of a node, a settings document (or a new section in
it) is created instead, for review before exporting again.

Example:
  quickexport export Props`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var log ports.ExportLog
		if hl, err := history.Open(historyPath); err == nil {
			log = hl
			defer hl.Close()
		} else {
			logger.Warn("export history unavailable", logger.Fields{"error": err.Error()})
		}

		c := commands.NewExportCommand(host, settings.DefaultRegistry(), log, args[0])
		res, err := c.Execute(context.Background())
		if err != nil {
			return err
		}

		for _, w := range res.Warnings {
			fmt.Println(warningStyle.Render("warning: " + w))
		}
		switch res.Status {
		case commands.StatusFirstRun:
			fmt.Println(warningStyle.Render("[FIRST EXPORT NOTICE] " + res.Message))
		case commands.StatusEmpty:
			fmt.Println(warningStyle.Render(res.Message))
		default:
			fmt.Println(successStyle.Render(res.Message))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
