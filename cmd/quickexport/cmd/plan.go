package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"quickexport/internal/settings"
)

var planCmd = &cobra.Command{
	Use:   "plan <node>",
	Short: "Show the resolved export settings for a node",
	Long: `Resolve and print what an export of the named node would use:
exporter, output path, exporter parameters, excluded nodes and mesh-join
requests. Nothing is exported and nothing is written.

Example:
  quickexport plan Props`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		node := args[0]
		if host.Root().Find(node) == nil {
			return fmt.Errorf("node %q not found in the scene", node)
		}

		doc, _ := host.SettingsDocument()
		resolver := settings.NewResolver(settings.DefaultRegistry(), host)
		plan, err := resolver.Resolve(doc, node)
		if err != nil {
			var first *settings.FirstRunError
			if errors.As(err, &first) {
				fmt.Println(warningStyle.Render(fmt.Sprintf(
					"no settings for %q yet; the first export attempt will create them (filename = %s)",
					node, first.Filename)))
				return nil
			}
			return err
		}

		for _, w := range plan.Warnings {
			fmt.Println(warningStyle.Render("warning: " + w))
		}
		fmt.Printf("%s %s\n", mutedStyle.Render("exporter:"), plan.Exporter.Name)
		fmt.Printf("%s %s\n", mutedStyle.Render("output:"), plan.Path)
		fmt.Printf("%s %v\n", mutedStyle.Render("visibility filter:"), plan.UseVisible)

		keys := make([]string, 0, len(plan.Params))
		for k := range plan.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s %s = %v\n", mutedStyle.Render("param:"), k, plan.Params[k])
		}

		excluded := make([]string, 0, len(plan.NotExportable))
		for name := range plan.NotExportable {
			excluded = append(excluded, name)
		}
		sort.Strings(excluded)
		for _, name := range excluded {
			fmt.Printf("%s %s\n", mutedStyle.Render("excluded:"), name)
		}

		joins := make([]string, 0, len(plan.JoinRequests))
		for name := range plan.JoinRequests {
			joins = append(joins, name)
		}
		sort.Strings(joins)
		for _, name := range joins {
			fmt.Printf("%s %s -> %s\n", mutedStyle.Render("join:"), name, plan.JoinRequests[name])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
