package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

// NodeFilename is the manifest file name for the Node flavor.
const NodeFilename = "package.json"

type nodeDoc struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Workspaces      []string          `json:"workspaces"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// NodeManifest is the Node/JSON Manifest implementation. Unlike Cargo,
// rewriting re-serializes the decoded document rather than splicing text:
// §4.9 does not require format preservation for this flavor.
type NodeManifest struct {
	doc nodeDoc
}

// ParseNode decodes a package.json document.
func ParseNode(raw string) (*NodeManifest, error) {
	var doc nodeDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("manifest: parse package.json: %w", err)
	}
	return &NodeManifest{doc: doc}, nil
}

func (m *NodeManifest) Name() (string, bool) {
	return m.doc.Name, m.doc.Name != ""
}

func (m *NodeManifest) Version() (*semver.Version, bool) {
	if m.doc.Version == "" {
		return nil, false
	}
	v, err := semver.NewVersion(m.doc.Version)
	if err != nil {
		return nil, false
	}
	return v, true
}

func (m *NodeManifest) Members() []string {
	return append([]string(nil), m.doc.Workspaces...)
}

func (m *NodeManifest) Dependencies() []string {
	names := make(map[string]struct{})
	for name := range m.doc.Dependencies {
		names[name] = struct{}{}
	}
	for name := range m.doc.DevDependencies {
		names[name] = struct{}{}
	}
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	return out
}

// Rewrite sets the package's own version and "^"-prefixes bumped
// dependency/devDependency entries, then pretty-prints the result with a
// trailing newline.
func (m *NodeManifest) Rewrite(versions *Versions) (string, error) {
	doc := m.doc // shallow copy; maps below are replaced wholesale, not mutated in place

	if name, ok := m.Name(); ok {
		if v, ok := versions.Get(name); ok {
			doc.Version = v.String()
		}
	}
	doc.Dependencies = bumpNodeDeps(doc.Dependencies, versions)
	doc.DevDependencies = bumpNodeDeps(doc.DevDependencies, versions)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("manifest: render package.json: %w", err)
	}
	return string(out) + "\n", nil
}

func bumpNodeDeps(deps map[string]string, versions *Versions) map[string]string {
	if deps == nil {
		return nil
	}
	out := make(map[string]string, len(deps))
	for name, requirement := range deps {
		if v, ok := versions.Get(name); ok {
			out[name] = "^" + v.String()
			continue
		}
		out[name] = requirement
	}
	return out
}

// Sync runs `npm install --package-lock-only --ignore-scripts` in root. A
// missing npm binary is logged and treated as a no-op.
func (m *NodeManifest) Sync(root string) error {
	binary, err := exec.LookPath("npm")
	if err != nil {
		slog.Warn("npm not found on PATH; skipping lockfile sync", "root", root)
		return nil
	}
	cmd := exec.Command(binary, "install", "--package-lock-only", "--ignore-scripts")
	cmd.Dir = root
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("manifest: npm install failed: %w\n%s", err, stderr.String())
	}
	return nil
}

// NodeManifestPath returns the package.json path within dir.
func NodeManifestPath(dir string) string {
	return filepath.Join(dir, NodeFilename)
}
