package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickexport/internal/adapters/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent exports",
	Long: `Show recorded export attempts, newest first.

Example:
  quickexport history -n 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := history.Open(historyPath)
		if err != nil {
			return err
		}
		defer log.Close()

		entries, err := log.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println(mutedStyle.Render("no exports recorded yet"))
			return nil
		}

		for _, e := range entries {
			status := e.Status
			switch status {
			case "exported":
				status = successStyle.Render(status)
			case "error":
				status = errorStyle.Render(status)
			default:
				status = warningStyle.Render(status)
			}
			fmt.Printf("%s  %-10s %s -> %s\n",
				mutedStyle.Render(e.When.Format("2006-01-02 15:04")),
				status, nodeStyle.Render(e.Node), e.Path)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show")
	rootCmd.AddCommand(historyCmd)
}
