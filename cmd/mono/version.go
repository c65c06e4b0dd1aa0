package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relcraft/mono/internal/gitrepo"
	"github.com/relcraft/mono/internal/increment"
	"github.com/relcraft/mono/internal/workspace"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Inspect and cut package versions",
}

var versionListAll bool

var versionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List each package's proposed next version",
	RunE:  runVersionList,
}

var versionChangedCmd = &cobra.Command{
	Use:   "changed <version>",
	Short: "Print the commit range for a released version",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersionChanged,
}

func init() {
	versionListCmd.Flags().BoolVar(&versionListAll, "all", false, "walk the whole history instead of stopping at the newest tag")
	versionCmd.AddCommand(versionListCmd)
	versionCmd.AddCommand(versionChangedCmd)
	versionCmd.AddCommand(versionCreateCmd)
}

// releaseRange resolves the commit range for the unreleased-changes view: the
// newest-tag boundary, or unbounded history with --all.
func releaseRange(app *appContext) (gitrepo.Range, error) {
	vs, err := gitrepo.NewVersionSet(app.repo)
	if err != nil {
		return gitrepo.Range{}, err
	}
	rng, err := vs.Commits("")
	if err != nil {
		return gitrepo.Range{}, err
	}
	if versionListAll {
		rng.End = ""
	}
	return rng, nil
}

func runVersionList(cmd *cobra.Command, args []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}

	rng, err := releaseRange(app)
	if err != nil {
		return err
	}
	cs, err := app.buildChangeset(context.Background(), rng)
	if err != nil {
		return err
	}

	names := make([]string, len(app.ws.Projects()))
	for i, p := range app.ws.Projects() {
		names[i] = p.Name
	}
	final, err := workspace.Propagate(app.ws.Graph(), cs.Increments(), names, workspace.AcceptHighest)
	if err != nil {
		return fmt.Errorf("propagate increments: %w", err)
	}

	out := cmd.OutOrStdout()
	for i, p := range app.ws.Projects() {
		if final[i] == increment.None {
			continue
		}
		cur, ok := p.Manifest.Version()
		if !ok {
			continue
		}
		next := increment.Bump(cur, final[i])
		fmt.Fprintf(out, "%s: %s → %s (%s)\n", p.Name, cur.String(), next.String(), final[i])
	}
	return nil
}

func runVersionChanged(cmd *cobra.Command, args []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}

	vs, err := gitrepo.NewVersionSet(app.repo)
	if err != nil {
		return err
	}
	rng, err := vs.Commits(args[0])
	if err != nil {
		return err
	}

	end := rng.End
	if end == "" {
		end = "(root)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s..%s\n", rng.Start, end)
	return nil
}
