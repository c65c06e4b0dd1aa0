package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var scopeCmd = &cobra.Command{
	Use:   "scope",
	Short: "Inspect the workspace's scope set",
}

var scopeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every discovered scope and the path it owns",
	RunE:  runScopeList,
}

func init() {
	scopeCmd.AddCommand(scopeListCmd)
}

func runScopeList(cmd *cobra.Command, args []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}
	cs, err := app.newChangeset()
	if err != nil {
		return err
	}

	scopes := cs.Scopes()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	defer w.Flush()
	for i := 0; i < scopes.Len(); i++ {
		name := scopes.Name(i)
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(w, "%s\t%s\n", name, scopes.Path(i))
	}
	return nil
}
