package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relcraft/mono/internal/changeset"
	"github.com/relcraft/mono/internal/gitrepo"
	"github.com/relcraft/mono/internal/releaseconfig"
	"github.com/relcraft/mono/internal/workspace"
)

// appContext bundles the repository, workspace, and configuration every
// command operates against, built once per invocation from the persistent
// --dir/--config flags.
type appContext struct {
	dir  string
	repo *gitrepo.Repository
	ws   *workspace.Workspace
	cfg  *releaseconfig.Config
}

// loadApp opens the repository containing --dir, discovers the workspace at
// that repository's working-tree root, and loads the optional .mono.toml by
// searching upward from that root (or from --config when it is set).
func loadApp(cmd *cobra.Command) (*appContext, error) {
	dir := flagDir

	repo, err := gitrepo.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	root := repo.Root()
	flavor, err := workspace.DetectFlavor(root)
	if err != nil {
		return nil, fmt.Errorf("detect manifest flavor: %w", err)
	}
	ws, err := workspace.Discover(root, flavor)
	if err != nil {
		return nil, fmt.Errorf("discover workspace: %w", err)
	}

	cfgDir := root
	if flagConfig != "" {
		cfgDir = flagConfig
	}
	cfg, err := releaseconfig.LoadConfig(cfgDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &appContext{dir: dir, repo: repo, ws: ws, cfg: cfg}, nil
}

// packageScopes lists every discovered project, in Projects() order, as
// changeset.PackageScope values. Every project is included regardless of
// name so that scope indices, graph node indices, and increment-vector
// indices all stay aligned with Projects().
func (a *appContext) packageScopes() []changeset.PackageScope {
	projects := a.ws.Projects()
	out := make([]changeset.PackageScope, len(projects))
	for i, p := range projects {
		out[i] = changeset.PackageScope{Path: p.Dir, Name: p.Name}
	}
	return out
}

// newChangeset builds an empty changeset over the workspace's scope set.
func (a *appContext) newChangeset() (*changeset.Changeset, error) {
	return changeset.New(a.packageScopes(), a.cfg.ExtraScopes())
}

// buildChangeset builds a changeset and folds in every commit in rng.
func (a *appContext) buildChangeset(ctx context.Context, rng gitrepo.Range) (*changeset.Changeset, error) {
	cs, err := a.newChangeset()
	if err != nil {
		return nil, err
	}
	for commit, err := range a.repo.Commits(ctx, rng.Start, rng.End) {
		if err != nil {
			return nil, fmt.Errorf("walk commits: %w", err)
		}
		if err := cs.Add(commit); err != nil {
			return nil, fmt.Errorf("fold commit %s: %w", commit.ShortID(), err)
		}
	}
	return cs, nil
}
