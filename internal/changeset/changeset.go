// Package changeset accumulates parsed commits against a fixed scope set,
// producing per-scope version increments and an ordered revision history.
package changeset

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/relcraft/mono/internal/change"
	"github.com/relcraft/mono/internal/increment"
	"github.com/relcraft/mono/internal/scope"
)

// ErrSummary is returned by Summary when the newest revision has no
// non-empty commit body.
var ErrSummary = errors.New("changeset: newest revision has no summary body")

// PackageScope is a (path, name) pair used to seed the scope resolver from
// workspace package discovery.
type PackageScope struct {
	Path string
	Name string
}

// Revision pairs a commit with its parsed change, the sorted set of scope
// indices it touches, and the sorted set of issue numbers in its body.
type Revision struct {
	Commit Commit
	Change change.Change
	Scopes []int
	Issues []uint32
}

// Changeset holds a scope set, an ordered (typically newest-first) list of
// revisions, and a per-scope increment vector.
type Changeset struct {
	scopes     *scope.Set
	revisions  []Revision
	increments []increment.Kind
}

// New builds a Changeset from the workspace's package scopes plus any
// config-provided extra scopes (name -> path).
func New(packages []PackageScope, extraScopes map[string]string) (*Changeset, error) {
	b := scope.NewBuilder()
	for _, p := range packages {
		if err := b.Add(p.Path, p.Name); err != nil {
			return nil, err
		}
	}
	for name, path := range extraScopes {
		if err := b.Add(path, name); err != nil {
			return nil, err
		}
	}
	set := b.Build()
	return &Changeset{
		scopes:     set,
		increments: make([]increment.Kind, set.Len()),
	}, nil
}

// Scopes returns the changeset's scope set.
func (c *Changeset) Scopes() *scope.Set { return c.scopes }

// Revisions returns the accumulated revisions in insertion order.
func (c *Changeset) Revisions() []Revision { return c.revisions }

// Increments returns the per-scope increment vector. Index i corresponds to
// scope i in Scopes().
func (c *Changeset) Increments() []increment.Kind {
	out := make([]increment.Kind, len(c.increments))
	copy(out, c.increments)
	return out
}

// Add parses commit.Summary() as a Change and, if parsing succeeds, folds it
// into the changeset: affected scopes are resolved from the commit's
// deltas, the scope-level increments are raised to the change's increment
// where higher, and a Revision is appended. If the summary does not parse as
// a Change, the commit is silently ignored — this is the changeset's only
// silent-drop path, covering merge commits and other non-conforming
// history.
func (c *Changeset) Add(commit Commit) error {
	parsed, err := change.Parse(commit.Summary())
	if err != nil {
		return nil
	}

	deltas, err := commit.Deltas()
	if err != nil {
		return err
	}

	scopeSet := make(map[int]struct{})
	for _, d := range deltas {
		if idx, ok := c.scopes.Get(d.Path); ok {
			scopeSet[idx] = struct{}{}
		}
	}
	scopes := make([]int, 0, len(scopeSet))
	for idx := range scopeSet {
		scopes = append(scopes, idx)
	}
	sort.Ints(scopes)

	inc := parsed.AsIncrement()
	for _, idx := range scopes {
		c.increments[idx] = increment.Max(c.increments[idx], inc)
	}

	var issues []uint32
	if body, ok := commit.Body(); ok {
		issues = parseIssues(body)
	}

	c.revisions = append(c.revisions, Revision{
		Commit: commit,
		Change: parsed,
		Scopes: scopes,
		Issues: issues,
	})
	return nil
}

// Extend adds each commit in order, stopping at the first error returned by
// the underlying git backend (parse failures are never errors; see Add).
func (c *Changeset) Extend(commits []Commit) error {
	for _, commit := range commits {
		if err := c.Add(commit); err != nil {
			return err
		}
	}
	return nil
}

// Summary returns the first (newest) revision's commit body, with
// git-style trailers trimmed by trimTrailers and then whitespace-trimmed.
// trimTrailers is supplied by the git backend (internal/gitrepo) so this
// package never depends on it directly.
func (c *Changeset) Summary(trimTrailers func(string) string) (string, error) {
	if len(c.revisions) == 0 {
		return "", ErrSummary
	}
	body, ok := c.revisions[0].Commit.Body()
	if !ok {
		return "", ErrSummary
	}
	trimmed := strings.TrimSpace(trimTrailers(body))
	if trimmed == "" {
		return "", ErrSummary
	}
	return trimmed, nil
}

// parseIssues scans whitespace-delimited tokens in body, stripping leading
// and trailing characters that are neither an ASCII digit nor '#', and
// collects the numbers from tokens of the resulting form "#<digits>" into a
// sorted, de-duplicated slice.
func parseIssues(body string) []uint32 {
	seen := make(map[uint32]struct{})
	var out []uint32
	for _, word := range strings.Fields(body) {
		trimmed := strings.TrimFunc(word, func(r rune) bool {
			return r != '#' && (r < '0' || r > '9')
		})
		rest, ok := strings.CutPrefix(trimmed, "#")
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(rest, 10, 32)
		if err != nil {
			continue
		}
		if _, ok := seen[uint32(n)]; !ok {
			seen[uint32(n)] = struct{}{}
			out = append(out, uint32(n))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
