package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/relcraft/mono/internal/changelog"
	"github.com/relcraft/mono/internal/gitrepo"
)

var (
	changelogVersion string
	changelogPreview bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Render the changelog for a released version or the unreleased range",
	RunE:  runChangelog,
}

func init() {
	changelogCmd.Flags().StringVar(&changelogVersion, "version", "", "render the changelog for this released version instead of the unreleased range")
	changelogCmd.Flags().BoolVar(&changelogPreview, "preview", false, "render with glamour instead of printing raw Markdown")
}

func runChangelog(cmd *cobra.Command, args []string) error {
	app, err := loadApp(cmd)
	if err != nil {
		return err
	}

	var rng gitrepo.Range
	if changelogVersion != "" {
		vs, err := gitrepo.NewVersionSet(app.repo)
		if err != nil {
			return err
		}
		rng, err = vs.Commits(changelogVersion)
		if err != nil {
			return err
		}
	} else {
		rng, err = releaseRange(app)
		if err != nil {
			return err
		}
	}

	cs, err := app.buildChangeset(context.Background(), rng)
	if err != nil {
		return err
	}

	rendered := changelog.New(cs).String()
	if rendered == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "no release-relevant changes in this range")
		return nil
	}

	if !changelogPreview {
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	}

	styled, err := glamour.Render(rendered, "auto")
	if err != nil {
		return fmt.Errorf("render changelog preview: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), styled)
	return nil
}
