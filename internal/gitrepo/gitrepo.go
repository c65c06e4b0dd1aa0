// Package gitrepo is the git backend (§4.11, §6): a thin object-level
// wrapper around go-git/go-git/v5 exposing exactly the operations the core
// needs — tag enumeration, revision resolution, commit walking, delta
// computation, trailer trimming, and the handful of write operations the
// release flow performs (stage, commit, branch).
package gitrepo

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository wraps an opened git repository.
type Repository struct {
	repo *git.Repository
	root string
}

// Open opens the repository containing path, walking upward to find the
// enclosing .git directory the same way the reference codebase's config
// loader walks upward for its own dotfile.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("gitrepo: open %s: %w", path, err)
	}
	root := path
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &Repository{repo: repo, root: root}, nil
}

// Root returns the working-tree root directory.
func (r *Repository) Root() string { return r.root }

// Resolve resolves a revision specifier (commit id, tag, or branch name) to
// a Commit.
func (r *Repository) Resolve(spec string) (*Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(spec))
	if err != nil {
		return nil, fmt.Errorf("gitrepo: resolve %q: %w", spec, err)
	}
	obj, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("gitrepo: load commit %s: %w", hash, err)
	}
	return newCommit(obj), nil
}

func (r *Repository) signature() *object.Signature {
	name, email := "mono", "mono@localhost"
	if cfg, err := r.repo.Config(); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}
