// Package manifest implements the two workspace manifest flavors — Cargo
// (TOML) and Node (JSON) — behind a common interface, plus the Versions set
// that the rewriter consumes.
package manifest

import "github.com/Masterminds/semver/v3"

// Manifest captures the structural surface the core needs from a workspace
// manifest file, independent of its on-disk flavor.
type Manifest interface {
	// Name returns the package name declared by the manifest, if any.
	// Workspace-root-only manifests may declare no name.
	Name() (string, bool)
	// Version returns the package's current version, if any.
	Version() (*semver.Version, bool)
	// Members returns glob patterns identifying workspace member
	// directories, relative to the manifest's directory.
	Members() []string
	// Dependencies returns the names of packages this manifest declares a
	// dependency on, across all recognized dependency sections.
	Dependencies() []string
	// Rewrite returns the manifest text with bumped versions spliced in,
	// for every name present in versions that this manifest references.
	Rewrite(versions *Versions) (string, error)
	// Sync runs the flavor's post-update lockfile sync command in root. A
	// missing toolchain binary is not an error — it is logged and ignored,
	// since sync is a best-effort convenience.
	Sync(root string) error
}

// Versions is a computed name -> next-version mapping, consumed by
// Manifest.Rewrite.
type Versions struct {
	next map[string]*semver.Version
}

// NewVersions returns an empty Versions set.
func NewVersions() *Versions {
	return &Versions{next: make(map[string]*semver.Version)}
}

// Set records the next version for a package name.
func (v *Versions) Set(name string, version *semver.Version) {
	v.next[name] = version
}

// Get returns the next version for name, if one was recorded.
func (v *Versions) Get(name string) (*semver.Version, bool) {
	ver, ok := v.next[name]
	return ver, ok
}

// Names returns the package names carrying a recorded bump.
func (v *Versions) Names() []string {
	names := make([]string, 0, len(v.next))
	for name := range v.next {
		names = append(names, name)
	}
	return names
}
