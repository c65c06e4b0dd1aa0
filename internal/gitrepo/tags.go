package gitrepo

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"golang.org/x/mod/semver"
)

// TagRef is a single tag reference: its short name and the hash it points
// at (already resolved through an annotated tag object, if any, to the
// commit it tags).
type TagRef struct {
	Name string
	Hash string
}

// Tags lists tag references whose short name matches pattern (a glob-like
// prefix pattern such as "v*"), resolving annotated tags to the commit they
// point at.
func (r *Repository) Tags(pattern string) ([]TagRef, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("gitrepo: list tags: %w", err)
	}
	defer iter.Close()

	var out []TagRef
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		matched, err := path.Match(pattern, name)
		if err != nil {
			return fmt.Errorf("gitrepo: invalid tag pattern %q: %w", pattern, err)
		}
		if !matched {
			return nil
		}
		hash, err := r.resolveTagCommit(ref.Hash())
		if err != nil {
			return err
		}
		out = append(out, TagRef{Name: name, Hash: hash.String()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolveTagCommit follows an annotated tag object to the commit it tags;
// lightweight tags already point directly at a commit.
func (r *Repository) resolveTagCommit(hash plumbing.Hash) (plumbing.Hash, error) {
	tagObj, err := r.repo.TagObject(hash)
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return hash, nil
		}
		return plumbing.ZeroHash, fmt.Errorf("gitrepo: load tag object: %w", err)
	}
	commit, err := tagObj.Commit()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("gitrepo: resolve annotated tag to commit: %w", err)
	}
	return commit.Hash, nil
}

// ErrUnknownVersion is returned when a requested version has no matching tag.
var ErrUnknownVersion = errors.New("gitrepo: unknown version")

// VersionTag pairs a released version with the commit its tag resolved to.
type VersionTag struct {
	Version string
	Commit  string
}

// VersionSet is the repository's tags matching "v<semver>", parsed and
// ordered ascending by version (§4.10).
type VersionSet struct {
	tags []taggedVersion
}

type taggedVersion struct {
	raw    string
	commit string
}

// NewVersionSet enumerates repo's version tags and sorts them ascending.
func NewVersionSet(r *Repository) (*VersionSet, error) {
	refs, err := r.Tags("v*")
	if err != nil {
		return nil, err
	}

	var tags []taggedVersion
	for _, ref := range refs {
		if !semver.IsValid(ref.Name) {
			continue
		}
		tags = append(tags, taggedVersion{raw: strings.TrimPrefix(ref.Name, "v"), commit: ref.Hash})
	}
	sort.Slice(tags, func(i, j int) bool {
		return semver.Compare("v"+tags[i].raw, "v"+tags[j].raw) < 0
	})
	return &VersionSet{tags: tags}, nil
}

// Versions returns the recorded versions newest first.
func (vs *VersionSet) Versions() []VersionTag {
	out := make([]VersionTag, len(vs.tags))
	for i, t := range vs.tags {
		out[len(vs.tags)-1-i] = VersionTag{Version: t.raw, Commit: t.commit}
	}
	return out
}

// Range is a half-open commit range [Start, End). End == "" means unbounded
// (walk to the root of history).
type Range struct {
	Start string
	End   string
}

// Commits computes the commit range for version per §4.10: the range since
// the newest tag (or all history) when version is empty, or the half-open
// range between a specific released version and its predecessor tag.
func (vs *VersionSet) Commits(version string) (Range, error) {
	if version == "" {
		if len(vs.tags) == 0 {
			return Range{Start: "HEAD"}, nil
		}
		newest := vs.tags[len(vs.tags)-1]
		return Range{Start: "HEAD", End: newest.commit}, nil
	}

	target := strings.TrimPrefix(version, "v")
	idx := -1
	for i, t := range vs.tags {
		if semver.Compare("v"+t.raw, "v"+target) == 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Range{}, fmt.Errorf("%w: %s", ErrUnknownVersion, version)
	}
	if idx == 0 {
		return Range{Start: vs.tags[0].commit}, nil
	}
	return Range{Start: vs.tags[idx].commit, End: vs.tags[idx-1].commit}, nil
}
