package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/relcraft/mono/internal/increment"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func newCargoWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Cargo.toml"), `[workspace]
members = ["crates/*"]
`)
	writeFile(t, filepath.Join(root, "crates/core/Cargo.toml"), `[package]
name = "mono-core"
version = "0.4.2"

[dependencies]
`)
	writeFile(t, filepath.Join(root, "crates/cli/Cargo.toml"), `[package]
name = "mono-cli"
version = "1.2.0"

[dependencies]
mono-core = "0.4.2"
`)
	return root
}

func TestDiscoverFindsMembersAndEdges(t *testing.T) {
	root := newCargoWorkspace(t)
	ws, err := Discover(root, Cargo)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(ws.Projects()) != 2 {
		t.Fatalf("expected 2 projects, got %d: %+v", len(ws.Projects()), ws.Projects())
	}

	coreIdx, ok := ws.IndexOf("mono-core")
	if !ok {
		t.Fatalf("mono-core not indexed")
	}
	cliIdx, ok := ws.IndexOf("mono-cli")
	if !ok {
		t.Fatalf("mono-cli not indexed")
	}

	found := false
	for _, dependent := range ws.Graph().Outgoing(coreIdx) {
		if dependent == cliIdx {
			found = true
		}
	}
	if !found {
		t.Errorf("expected edge mono-core -> mono-cli")
	}
}

func TestDiscoverSkipsDirectoriesWithoutManifest(t *testing.T) {
	root := newCargoWorkspace(t)
	if err := os.MkdirAll(filepath.Join(root, "crates/empty"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	ws, err := Discover(root, Cargo)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	for _, p := range ws.Projects() {
		if p.Dir == "crates/empty" {
			t.Errorf("expected crates/empty to be skipped, no manifest present")
		}
	}
}

func TestBumpRewritesManifestsOnDisk(t *testing.T) {
	root := newCargoWorkspace(t)
	ws, err := Discover(root, Cargo)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	increments := make([]increment.Kind, len(ws.Projects()))
	for i, p := range ws.Projects() {
		if p.Name == "mono-core" {
			increments[i] = increment.Minor
		}
	}

	if err := ws.Bump(increments); err != nil {
		t.Fatalf("Bump: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(root, "crates/core/Cargo.toml"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(raw), `version = "0.5.0"`) {
		t.Errorf("expected mono-core bumped to 0.5.0, got:\n%s", raw)
	}

	cliRaw, err := os.ReadFile(filepath.Join(root, "crates/cli/Cargo.toml"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(cliRaw), `mono-core = "0.5.0"`) {
		t.Errorf("expected dependent's requirement on mono-core bumped, got:\n%s", cliRaw)
	}
	if !strings.Contains(string(cliRaw), `version = "1.2.0"`) {
		t.Errorf("expected mono-cli's own version untouched, got:\n%s", cliRaw)
	}
}
