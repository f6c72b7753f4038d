package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quickexport/internal/domain"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the scene hierarchy",
	Long: `Display the scene's node hierarchy with the leaves each node owns.

Example:
  quickexport tree`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printNode(host.Root(), 0)
		return nil
	},
}

func printNode(node *domain.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Println(indent + nodeStyle.Render(node.Name) + flagNote(node.SelectDisabled, node.ViewportHidden))

	for _, leaf := range node.Leaves {
		fmt.Printf("%s  %s %s%s\n", indent, leaf.Name,
			mutedStyle.Render("("+leaf.Kind.String()+")"),
			flagNote(leaf.SelectDisabled, leaf.ViewportHidden))
	}
	for _, child := range node.Children {
		printNode(child, depth+1)
	}
}

func flagNote(selectDisabled, viewportHidden bool) string {
	var notes []string
	if selectDisabled {
		notes = append(notes, "unselectable")
	}
	if viewportHidden {
		notes = append(notes, "hidden")
	}
	if len(notes) == 0 {
		return ""
	}
	return " " + mutedStyle.Render("["+strings.Join(notes, ", ")+"]")
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
