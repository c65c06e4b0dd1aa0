package manifest

import (
	"bytes"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// CargoFilename is the manifest file name for the Cargo flavor.
const CargoFilename = "Cargo.toml"

// cargoDoc is the structural shape BurntSushi/toml decodes, used to answer
// Name/Version/Members/Dependencies. The actual rewrite splices the
// original text directly rather than re-serializing this struct, so that
// formatting, comments, and ordering survive untouched.
type cargoDoc struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Workspace struct {
		Members      []string               `toml:"members"`
		Dependencies map[string]interface{} `toml:"dependencies"`
	} `toml:"workspace"`
	Dependencies    map[string]interface{} `toml:"dependencies"`
	DevDependencies map[string]interface{} `toml:"dev-dependencies"`
}

// CargoManifest is the Cargo/TOML Manifest implementation.
type CargoManifest struct {
	raw string
	doc cargoDoc
}

// ParseCargo decodes a Cargo.toml document, retaining the original text for
// format-preserving rewrites.
func ParseCargo(raw string) (*CargoManifest, error) {
	var doc cargoDoc
	if _, err := toml.Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("manifest: parse Cargo.toml: %w", err)
	}
	return &CargoManifest{raw: raw, doc: doc}, nil
}

func (m *CargoManifest) Name() (string, bool) {
	return m.doc.Package.Name, m.doc.Package.Name != ""
}

func (m *CargoManifest) Version() (*semver.Version, bool) {
	if m.doc.Package.Version == "" {
		return nil, false
	}
	v, err := semver.NewVersion(m.doc.Package.Version)
	if err != nil {
		return nil, false
	}
	return v, true
}

func (m *CargoManifest) Members() []string {
	return append([]string(nil), m.doc.Workspace.Members...)
}

func (m *CargoManifest) Dependencies() []string {
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

type cargoTable int

const (
	cargoTableOther cargoTable = iota
	cargoTablePackage
	cargoTableWorkspaceDependencies
	cargoTableDependencies
	cargoTableDevDependencies
)

var (
	cargoTableHeaderRe   = regexp.MustCompile(`^\s*\[([^\[\]]+)\]\s*(#.*)?$`)
	cargoSimpleAssignRe  = regexp.MustCompile(`^(\s*)([A-Za-z0-9_\-]+)(\s*=\s*)"([^"]*)"(\s*(?:#.*)?)$`)
	cargoInlineAssignRe  = regexp.MustCompile(`^(\s*)([A-Za-z0-9_\-]+)(\s*=\s*)\{(.*)\}(\s*(?:#.*)?)$`)
	cargoWorkspaceTrueRe = regexp.MustCompile(`workspace\s*=\s*true`)
	cargoVersionFieldRe  = regexp.MustCompile(`(version\s*=\s*")([^"]*)(")`)
)

func classifyCargoTable(header string) cargoTable {
	switch strings.TrimSpace(header) {
	case "package":
		return cargoTablePackage
	case "workspace.dependencies":
		return cargoTableWorkspaceDependencies
	case "dependencies":
		return cargoTableDependencies
	case "dev-dependencies":
		return cargoTableDevDependencies
	default:
		return cargoTableOther
	}
}

// Rewrite splices bumped versions directly into the source text: the
// package's own version in [package], and dependency versions in
// [workspace.dependencies], [dependencies], and [dev-dependencies]. Entries
// whose inline table carries `workspace = true` are left byte-identical.
func (m *CargoManifest) Rewrite(versions *Versions) (string, error) {
	lines := strings.Split(m.raw, "\n")
	current := cargoTableOther
	name, hasName := m.Name()

	for i, line := range lines {
		if match := cargoTableHeaderRe.FindStringSubmatch(line); match != nil {
			current = classifyCargoTable(match[1])
			continue
		}

		switch current {
		case cargoTablePackage:
			if hasName {
				if v, ok := versions.Get(name); ok {
					lines[i] = rewritePackageVersionLine(line, v.String())
				}
			}
		case cargoTableWorkspaceDependencies, cargoTableDependencies, cargoTableDevDependencies:
			lines[i] = rewriteDependencyLine(line, versions)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func rewritePackageVersionLine(line, newVersion string) string {
	m := cargoSimpleAssignRe.FindStringSubmatch(line)
	if m == nil || m[2] != "version" {
		return line
	}
	return m[1] + m[2] + m[3] + `"` + newVersion + `"` + m[5]
}

func rewriteDependencyLine(line string, versions *Versions) string {
	if m := cargoSimpleAssignRe.FindStringSubmatch(line); m != nil {
		name := m[2]
		if v, ok := versions.Get(name); ok {
			return m[1] + m[2] + m[3] + `"` + v.String() + `"` + m[5]
		}
		return line
	}
	if m := cargoInlineAssignRe.FindStringSubmatch(line); m != nil {
		name, body := m[2], m[4]
		if cargoWorkspaceTrueRe.MatchString(body) {
			return line
		}
		if v, ok := versions.Get(name); ok {
			newBody := cargoVersionFieldRe.ReplaceAllString(body, "${1}"+v.String()+"$3")
			return m[1] + m[2] + m[3] + "{" + newBody + "}" + m[5]
		}
		return line
	}
	return line
}

// Sync runs `cargo update --workspace --offline` in root. If the cargo
// binary is not on PATH, this is logged at warn level and treated as a
// no-op rather than a fatal error.
func (m *CargoManifest) Sync(root string) error {
	binary, err := exec.LookPath("cargo")
	if err != nil {
		slog.Warn("cargo not found on PATH; skipping lockfile sync", "root", root)
		return nil
	}
	cmd := exec.Command(binary, "update", "--workspace", "--offline")
	cmd.Dir = root
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("manifest: cargo update failed: %w\n%s", err, stderr.String())
	}
	return nil
}

// CargoManifestPath returns the Cargo.toml path within dir.
func CargoManifestPath(dir string) string {
	return filepath.Join(dir, CargoFilename)
}
