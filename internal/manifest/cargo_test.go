package manifest

import (
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
)

const samplePackageManifest = `[package]
name = "mono-core"
version = "0.4.2"
edition = "2021"

[dependencies]
serde = "1.0.0"
mono-util = { version = "0.1.0", features = ["derive"] }
mono-shared = { workspace = true }

[dev-dependencies]
mono-core = "0.4.2"
`

func mustVersion(t *testing.T, s string) *semver.Version {
	t.Helper()
	v, err := semver.NewVersion(s)
	if err != nil {
		t.Fatalf("parse version %q: %v", s, err)
	}
	return v
}

func TestCargoRewritePackageVersion(t *testing.T) {
	m, err := ParseCargo(samplePackageManifest)
	if err != nil {
		t.Fatalf("ParseCargo: %v", err)
	}
	versions := NewVersions()
	versions.Set("mono-core", mustVersion(t, "0.5.0"))
	versions.Set("mono-util", mustVersion(t, "0.2.0"))

	out, err := m.Rewrite(versions)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	if !strings.Contains(out, `version = "0.5.0"`) {
		t.Errorf("expected package version bumped, got:\n%s", out)
	}
	if !strings.Contains(out, `mono-util = { version = "0.2.0", features = ["derive"] }`) {
		t.Errorf("expected inline table version bumped in place, got:\n%s", out)
	}
	if !strings.Contains(out, `mono-shared = { workspace = true }`) {
		t.Errorf("expected workspace=true entry untouched, got:\n%s", out)
	}
	if !strings.Contains(out, `mono-core = "0.5.0"`) {
		t.Errorf("expected dev-dependency on self-package bumped too, got:\n%s", out)
	}
	if !strings.Contains(out, `serde = "1.0.0"`) {
		t.Errorf("expected untouched dependency preserved, got:\n%s", out)
	}
	if !strings.Contains(out, `edition = "2021"`) {
		t.Errorf("expected unrelated fields preserved, got:\n%s", out)
	}
}

func TestCargoRewriteIsMinimalDiff(t *testing.T) {
	m, err := ParseCargo(samplePackageManifest)
	if err != nil {
		t.Fatalf("ParseCargo: %v", err)
	}
	versions := NewVersions()
	versions.Set("mono-core", mustVersion(t, "0.5.0"))

	out, err := m.Rewrite(versions)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	origLines := strings.Split(samplePackageManifest, "\n")
	newLines := strings.Split(out, "\n")
	if len(origLines) != len(newLines) {
		t.Fatalf("line count changed: %d vs %d", len(origLines), len(newLines))
	}
	changed := 0
	for i := range origLines {
		if origLines[i] != newLines[i] {
			changed++
		}
	}
	// Only [package].version and the self-referencing dev-dependency line
	// should change for this fixture and this versions set.
	if changed != 2 {
		t.Errorf("expected exactly 2 changed lines, got %d", changed)
	}
}

func TestCargoParseNameAndDependencies(t *testing.T) {
	m, err := ParseCargo(samplePackageManifest)
	if err != nil {
		t.Fatalf("ParseCargo: %v", err)
	}
	name, ok := m.Name()
	if !ok || name != "mono-core" {
		t.Errorf("Name() = %q, %v", name, ok)
	}
	deps := m.Dependencies()
	want := map[string]bool{"serde": true, "mono-util": true, "mono-shared": true, "mono-core": true}
	if len(deps) != len(want) {
		t.Errorf("Dependencies() = %v, want keys of %v", deps, want)
	}
	for _, d := range deps {
		if !want[d] {
			t.Errorf("unexpected dependency %q", d)
		}
	}
}
