package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// newSinglePackageRepo builds a one-package Cargo repository (root
// Cargo.toml declares its own name, so Discover treats "." as the sole
// project) with a tagged init commit and a pending Minor change on HEAD.
func newSinglePackageRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: time.Unix(1700000000, 0)}

	writeFile(t, filepath.Join(dir, "Cargo.toml"), "[package]\nname = \"mono-app\"\nversion = \"0.1.0\"\n")
	if _, err := wt.Add("Cargo.toml"); err != nil {
		t.Fatalf("add Cargo.toml: %v", err)
	}
	h1, err := wt.Commit("chore: init project", &git.CommitOptions{Author: sig})
	if err != nil {
		t.Fatalf("commit 1: %v", err)
	}
	if _, err := repo.CreateTag("v0.1.0", h1, nil); err != nil {
		t.Fatalf("create tag: %v", err)
	}

	writeFile(t, filepath.Join(dir, "src.rs"), "fn greet() {}\n")
	if _, err := wt.Add("src.rs"); err != nil {
		t.Fatalf("add src.rs: %v", err)
	}
	if _, err := wt.Commit("feature: add greeting", &git.CommitOptions{Author: sig}); err != nil {
		t.Fatalf("commit 2: %v", err)
	}

	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// resetFlags restores the persistent flags cobra commands read from
// package-level state, mirroring the reference codebase's own global-flag
// reset-between-tests pattern.
func resetFlags(t *testing.T, dir string) {
	t.Helper()
	origDir, origConfig := flagDir, flagConfig
	flagDir, flagConfig = dir, ""
	versionListAll = false
	t.Cleanup(func() { flagDir, flagConfig = origDir, origConfig })
}

func TestValidateCommitAcceptsConventionalSummary(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader("feature: add greeting\n"))
	if err := runValidateCommit(rootCmd, nil); err != nil {
		t.Fatalf("runValidateCommit: %v", err)
	}
	if got := out.String(); got != "ok: feature: add greeting\n" {
		t.Errorf("output = %q", got)
	}
}

func TestValidateCommitRejectsMalformedSummary(t *testing.T) {
	rootCmd.SetIn(strings.NewReader("fix:no space\n"))
	err := runValidateCommit(rootCmd, nil)
	if err == nil || !strings.Contains(err.Error(), "Format") {
		t.Fatalf("expected a Format error, got %v", err)
	}
}

func TestScopeListPrintsDiscoveredScope(t *testing.T) {
	dir := newSinglePackageRepo(t)
	resetFlags(t, dir)

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	if err := runScopeList(cmd, nil); err != nil {
		t.Fatalf("runScopeList: %v", err)
	}
	if !strings.Contains(out.String(), "mono-app") {
		t.Errorf("expected scope output to name mono-app, got %q", out.String())
	}
}

func TestVersionListReportsPendingMinor(t *testing.T) {
	dir := newSinglePackageRepo(t)
	resetFlags(t, dir)

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	if err := runVersionList(cmd, nil); err != nil {
		t.Fatalf("runVersionList: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "mono-app: 0.1.0 → 0.2.0 (minor)") {
		t.Errorf("output = %q", got)
	}
}

func TestVersionChangedUnknownVersionErrors(t *testing.T) {
	dir := newSinglePackageRepo(t)
	resetFlags(t, dir)

	err := runVersionChanged(rootCmd, []string{"v9.9.9"})
	if err == nil || !strings.Contains(err.Error(), "unknown version") {
		t.Fatalf("expected an unknown-version error, got %v", err)
	}
}

func TestVersionChangedKnownVersionPrintsRange(t *testing.T) {
	dir := newSinglePackageRepo(t)
	resetFlags(t, dir)

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	if err := runVersionChanged(cmd, []string{"v0.1.0"}); err != nil {
		t.Fatalf("runVersionChanged: %v", err)
	}
	if !strings.Contains(out.String(), "(root)") {
		t.Errorf("expected the oldest tag's range to be unbounded, got %q", out.String())
	}
}
