// Package workspace discovers a monorepo's member packages from a root
// manifest's glob patterns, builds the dependency graph over them, and
// applies a computed increment vector back to every manifest on disk.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/relcraft/mono/internal/graph"
	"github.com/relcraft/mono/internal/increment"
	"github.com/relcraft/mono/internal/manifest"
)

// Flavor identifies which manifest dialect a workspace uses.
type Flavor int

const (
	Cargo Flavor = iota
	Node
)

// ErrNoManifest is returned by Discover when the root directory has no
// manifest file for the requested flavor.
var ErrNoManifest = errors.New("workspace: no manifest found for flavor")

// DetectFlavor inspects root for a Cargo.toml or package.json and returns
// the matching Flavor. Cargo is preferred when both are present.
func DetectFlavor(root string) (Flavor, error) {
	if _, err := os.Stat(manifest.CargoManifestPath(root)); err == nil {
		return Cargo, nil
	}
	if _, err := os.Stat(manifest.NodeManifestPath(root)); err == nil {
		return Node, nil
	}
	return Cargo, fmt.Errorf("%w: %s", ErrNoManifest, root)
}

func manifestPath(dir string, flavor Flavor) string {
	switch flavor {
	case Node:
		return manifest.NodeManifestPath(dir)
	default:
		return manifest.CargoManifestPath(dir)
	}
}

func parseManifest(raw string, flavor Flavor) (manifest.Manifest, error) {
	if flavor == Node {
		return manifest.ParseNode(raw)
	}
	return manifest.ParseCargo(raw)
}

// Project is a single workspace member: its directory (relative to the
// workspace root), its on-disk manifest path, and its parsed manifest.
type Project struct {
	Dir          string
	ManifestPath string
	Manifest     manifest.Manifest
	Name         string
}

// Workspace is a discovered monorepo: its root, flavor, member projects, a
// name -> project index, and the dependency graph over that index.
type Workspace struct {
	root     string
	flavor   Flavor
	projects []Project
	byName   map[string]int
	graph    *graph.Graph
}

// Root returns the workspace's root directory.
func (w *Workspace) Root() string { return w.root }

// Projects returns the discovered member projects, in discovery order. Index
// i corresponds to node i in Graph().
func (w *Workspace) Projects() []Project { return w.projects }

// Graph returns the dependency graph built over Projects().
func (w *Workspace) Graph() *graph.Graph { return w.graph }

// IndexOf returns the project index for a package name, if discovered.
func (w *Workspace) IndexOf(name string) (int, bool) {
	i, ok := w.byName[name]
	return i, ok
}

// Discover reads the root manifest, expands its member glob patterns, reads
// each member's manifest (skipping directories with none for this flavor),
// and builds the dependency index and graph described in §4.13.
func Discover(root string, flavor Flavor) (*Workspace, error) {
	rootManifestPath := manifestPath(root, flavor)
	rootRaw, err := os.ReadFile(rootManifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoManifest, rootManifestPath)
	}
	rootManifest, err := parseManifest(string(rootRaw), flavor)
	if err != nil {
		return nil, err
	}

	dirs, err := expandMembers(root, rootManifest.Members())
	if err != nil {
		return nil, err
	}

	// The workspace root itself is a project when it declares its own name
	// (a single-package repo, or a Cargo workspace root that is also a
	// package). Deduplicate against discovered members by directory.
	if _, hasName := rootManifest.Name(); hasName {
		dirs = prependUnique(dirs, ".")
	}

	var projects []Project
	for _, dir := range dirs {
		abs := filepath.Join(root, dir)
		mp := manifestPath(abs, flavor)
		raw, err := os.ReadFile(mp)
		if err != nil {
			continue // no manifest for this flavor here; not a member project
		}
		var m manifest.Manifest
		if dir == "." {
			m = rootManifest
		} else {
			m, err = parseManifest(string(raw), flavor)
			if err != nil {
				return nil, err
			}
		}
		name, _ := m.Name()
		projects = append(projects, Project{
			Dir:          dir,
			ManifestPath: mp,
			Manifest:     m,
			Name:         name,
		})
	}

	byName := make(map[string]int, len(projects))
	for i, p := range projects {
		if p.Name != "" {
			byName[p.Name] = i
		}
	}

	g := graph.New(len(projects))
	for i, p := range projects {
		for _, dep := range p.Manifest.Dependencies() {
			if j, ok := byName[dep]; ok {
				g.AddEdge(j, i)
			}
		}
	}

	return &Workspace{root: root, flavor: flavor, projects: projects, byName: byName, graph: g}, nil
}

func expandMembers(root string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var dirs []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(os.DirFS(root), pattern)
		if err != nil {
			return nil, fmt.Errorf("workspace: invalid member pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			info, err := os.Stat(filepath.Join(root, m))
			if err != nil || !info.IsDir() {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			dirs = append(dirs, m)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func prependUnique(dirs []string, dir string) []string {
	for _, d := range dirs {
		if d == dir {
			return dirs
		}
	}
	return append([]string{dir}, dirs...)
}

// Bump applies increments (indexed by Projects()) to every project whose
// slot is not increment.None: computes next versions, rewrites each
// manifest's text on disk, and invokes the flavor's Sync callback once
// against the workspace root, per §4.9.
func (w *Workspace) Bump(increments []increment.Kind) error {
	if len(increments) != len(w.projects) {
		return fmt.Errorf("workspace: increments length %d does not match %d projects", len(increments), len(w.projects))
	}

	versions := manifest.NewVersions()
	for i, inc := range increments {
		if inc == increment.None {
			continue
		}
		p := w.projects[i]
		cur, ok := p.Manifest.Version()
		if !ok {
			continue
		}
		versions.Set(p.Name, increment.Bump(cur, inc))
	}

	for _, p := range w.projects {
		raw, err := os.ReadFile(p.ManifestPath)
		if err != nil {
			return fmt.Errorf("workspace: read %s: %w", p.ManifestPath, err)
		}
		m, err := parseManifest(string(raw), w.flavor)
		if err != nil {
			return err
		}
		out, err := m.Rewrite(versions)
		if err != nil {
			return fmt.Errorf("workspace: rewrite %s: %w", p.ManifestPath, err)
		}
		if err := os.WriteFile(p.ManifestPath, []byte(out), 0o644); err != nil {
			return fmt.Errorf("workspace: write %s: %w", p.ManifestPath, err)
		}
	}

	if len(w.projects) == 0 {
		return nil
	}
	return w.projects[0].Manifest.Sync(w.root)
}
