package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/relcraft/mono/internal/changeset"
)

// Commit is a single commit's object-level view.
type Commit struct {
	obj *object.Commit
}

func newCommit(obj *object.Commit) *Commit {
	return &Commit{obj: obj}
}

// ID returns the full commit hash.
func (c *Commit) ID() string { return c.obj.Hash.String() }

// ShortID returns a 7-hex-character prefix of the commit hash.
func (c *Commit) ShortID() string {
	id := c.ID()
	if len(id) > 7 {
		return id[:7]
	}
	return id
}

// Summary returns the commit message's first line.
func (c *Commit) Summary() string {
	if i := strings.IndexByte(c.obj.Message, '\n'); i >= 0 {
		return c.obj.Message[:i]
	}
	return c.obj.Message
}

// Body returns the commit message with the summary line removed, and
// whether any non-whitespace body text remains.
func (c *Commit) Body() (string, bool) {
	i := strings.IndexByte(c.obj.Message, '\n')
	if i < 0 {
		return "", false
	}
	body := strings.TrimPrefix(c.obj.Message[i+1:], "\n")
	if strings.TrimSpace(body) == "" {
		return "", false
	}
	return body, true
}

// Deltas computes the file-level changes against the commit's first parent,
// or the empty tree for root commits. Copy and typechange deltas are folded
// into Modify. A delete/insert pair sharing the same blob hash is reported
// as a single Rename.
func (c *Commit) Deltas() ([]changeset.Delta, error) {
	var fromTree *object.Tree
	if c.obj.NumParents() > 0 {
		parent, err := c.obj.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("gitrepo: load parent of %s: %w", c.ShortID(), err)
		}
		fromTree, err = parent.Tree()
		if err != nil {
			return nil, fmt.Errorf("gitrepo: load parent tree of %s: %w", c.ShortID(), err)
		}
	}
	toTree, err := c.obj.Tree()
	if err != nil {
		return nil, fmt.Errorf("gitrepo: load tree of %s: %w", c.ShortID(), err)
	}

	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return nil, fmt.Errorf("gitrepo: diff %s: %w", c.ShortID(), err)
	}
	return foldDeltas(changes)
}

// blobRef pairs a tree path with the blob hash it pointed to, used to
// recognize delete/insert pairs that are really a rename.
type blobRef struct {
	path string
	hash string
}

func foldDeltas(changes object.Changes) ([]changeset.Delta, error) {
	var deletes, inserts []blobRef
	var deltas []changeset.Delta

	for _, ch := range changes {
		action, err := ch.Action()
		if err != nil {
			return nil, fmt.Errorf("gitrepo: classify change: %w", err)
		}
		switch action {
		case merkletrie.Insert:
			deltas = append(deltas, changeset.Delta{Kind: changeset.Create, Path: ch.To.Name})
			inserts = append(inserts, blobRef{path: ch.To.Name, hash: ch.To.TreeEntry.Hash.String()})
		case merkletrie.Delete:
			deltas = append(deltas, changeset.Delta{Kind: changeset.Delete, Path: ch.From.Name})
			deletes = append(deletes, blobRef{path: ch.From.Name, hash: ch.From.TreeEntry.Hash.String()})
		default: // Modify, and go-git's Copy/Typechange surface as Modify already
			deltas = append(deltas, changeset.Delta{Kind: changeset.Modify, Path: ch.To.Name})
		}
	}

	return mergeRenames(deltas, deletes, inserts), nil
}

// mergeRenames collapses a Delete/Create pair whose blob hash matches into a
// single Rename delta.
func mergeRenames(deltas []changeset.Delta, deletes, inserts []blobRef) []changeset.Delta {
	usedDelete := make(map[string]bool)
	usedInsert := make(map[string]bool)
	renames := make(map[string]string) // new path -> old path

	for _, d := range deletes {
		if usedDelete[d.path] {
			continue
		}
		for _, ins := range inserts {
			if usedInsert[ins.path] || ins.hash != d.hash {
				continue
			}
			renames[ins.path] = d.path
			usedDelete[d.path] = true
			usedInsert[ins.path] = true
			break
		}
	}
	if len(renames) == 0 {
		return deltas
	}

	out := make([]changeset.Delta, 0, len(deltas))
	for _, d := range deltas {
		switch d.Kind {
		case changeset.Delete:
			if usedDelete[d.Path] {
				continue
			}
		case changeset.Create:
			if from, ok := renames[d.Path]; ok {
				out = append(out, changeset.Delta{Kind: changeset.Rename, Path: d.Path, From: from})
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

// Commits walks commits reachable from start down to (but excluding) end, in
// topological order (every commit is visited before its parents), or
// unbounded from start when end is "".
func (r *Repository) Commits(ctx context.Context, start, end string) iter.Seq2[*Commit, error] {
	return func(yield func(*Commit, error) bool) {
		startHash, err := r.repo.ResolveRevision(plumbing.Revision(start))
		if err != nil {
			yield(nil, fmt.Errorf("gitrepo: resolve %q: %w", start, err))
			return
		}

		var endHash *string
		if end != "" {
			h, err := r.repo.ResolveRevision(plumbing.Revision(end))
			if err != nil {
				yield(nil, fmt.Errorf("gitrepo: resolve %q: %w", end, err))
				return
			}
			s := h.String()
			endHash = &s
		}

		commitIter, err := r.repo.Log(&git.LogOptions{From: *startHash, Order: git.LogOrderDFS})
		if err != nil {
			yield(nil, fmt.Errorf("gitrepo: log from %s: %w", start, err))
			return
		}
		defer commitIter.Close()

		for {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			obj, err := commitIter.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("gitrepo: walk commits: %w", err))
				return
			}
			if endHash != nil && obj.Hash.String() == *endHash {
				return
			}
			if !yield(newCommit(obj), nil) {
				return
			}
		}
	}
}
