package manifest

import (
	"encoding/json"
	"strings"
	"testing"
)

const sampleNodeManifest = `{
  "name": "mono-cli",
  "version": "0.4.2",
  "workspaces": ["packages/*"],
  "dependencies": {
    "left-pad": "^1.3.0",
    "mono-shared": "^0.4.2"
  },
  "devDependencies": {
    "jest": "^29.0.0"
  }
}
`

func TestNodeRewriteBumpsVersionAndDeps(t *testing.T) {
	m, err := ParseNode(sampleNodeManifest)
	if err != nil {
		t.Fatalf("ParseNode: %v", err)
	}
	versions := NewVersions()
	versions.Set("mono-cli", mustVersion(t, "0.5.0"))
	versions.Set("mono-shared", mustVersion(t, "0.5.0"))

	out, err := m.Rewrite(versions)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("expected trailing newline")
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("rewritten manifest does not parse as JSON: %v", err)
	}
	if doc["version"] != "0.5.0" {
		t.Errorf("version = %v, want 0.5.0", doc["version"])
	}
	deps := doc["dependencies"].(map[string]interface{})
	if deps["mono-shared"] != "^0.5.0" {
		t.Errorf("mono-shared = %v, want ^0.5.0", deps["mono-shared"])
	}
	if deps["left-pad"] != "^1.3.0" {
		t.Errorf("left-pad should be untouched, got %v", deps["left-pad"])
	}
}

func TestNodeParseMembersAndDependencies(t *testing.T) {
	m, err := ParseNode(sampleNodeManifest)
	if err != nil {
		t.Fatalf("ParseNode: %v", err)
	}
	members := m.Members()
	if len(members) != 1 || members[0] != "packages/*" {
		t.Errorf("Members() = %v", members)
	}
	deps := m.Dependencies()
	want := map[string]bool{"left-pad": true, "mono-shared": true, "jest": true}
	if len(deps) != len(want) {
		t.Errorf("Dependencies() = %v", deps)
	}
}
