package gitrepo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// IsClean reports whether the worktree has no staged, unstaged, or
// untracked changes.
func (r *Repository) IsClean() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("gitrepo: open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("gitrepo: worktree status: %w", err)
	}
	return status.IsClean(), nil
}

// OnDefaultBranch reports whether HEAD's short branch name is main or
// master.
func (r *Repository) OnDefaultBranch() (bool, error) {
	head, err := r.repo.Head()
	if err != nil {
		return false, fmt.Errorf("gitrepo: read HEAD: %w", err)
	}
	name := head.Name().Short()
	return name == "main" || name == "master", nil
}

// Stage adds each pathspec to the index.
func (r *Repository) Stage(pathspecs ...string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("gitrepo: open worktree: %w", err)
	}
	for _, p := range pathspecs {
		if _, err := wt.Add(p); err != nil {
			return fmt.Errorf("gitrepo: stage %s: %w", p, err)
		}
	}
	return nil
}

// Commit commits the staged index verbatim with message, returning the new
// commit id. go-git never invokes local hooks, so this is always a
// hookless, unsigned commit.
func (r *Repository) Commit(message string) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("gitrepo: open worktree: %w", err)
	}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: r.signature()})
	if err != nil {
		return "", fmt.Errorf("gitrepo: commit: %w", err)
	}
	return hash.String(), nil
}

// Branch creates and checks out a new branch named name, rooted at the
// current HEAD.
func (r *Repository) Branch(name string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("gitrepo: open worktree: %w", err)
	}
	ref := plumbing.NewBranchReferenceName(name)
	if err := wt.Checkout(&git.CheckoutOptions{Branch: ref, Create: true}); err != nil {
		return fmt.Errorf("gitrepo: create branch %s: %w", name, err)
	}
	return nil
}
