// Package scope maps repository-relative file paths to the package (scope)
// that owns them, using longest-prefix-match over a glob set built from
// workspace package paths.
package scope

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrPathAbsolute is returned when a scope path is not relative.
	ErrPathAbsolute = errors.New("scope: path must be relative")
	// ErrPathExists is returned when a scope path is added twice.
	ErrPathExists = errors.New("scope: path already registered")
	// ErrGlob is returned when a scope path cannot be compiled into a glob.
	ErrGlob = errors.New("scope: invalid glob pattern")
)

// entry is a single (path, name) scope registration.
type entry struct {
	path  string
	name  string
	glob  string
	depth int
}

// Builder accumulates (path, name) pairs before compiling a Set.
type Builder struct {
	entries []entry
	paths   map[string]struct{}
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{paths: make(map[string]struct{})}
}

// Add registers a scope at the given repository-relative directory path.
// The path must be relative and must not already be registered.
func (b *Builder) Add(dirPath, name string) error {
	clean := path.Clean(filepathToSlash(dirPath))
	if path.IsAbs(clean) {
		return fmt.Errorf("%w: %q", ErrPathAbsolute, dirPath)
	}
	if _, ok := b.paths[clean]; ok {
		return fmt.Errorf("%w: %q", ErrPathExists, dirPath)
	}

	glob := clean + "/**"
	if clean == "." {
		glob = "**"
	}
	if !doublestar.ValidatePattern(glob) {
		return fmt.Errorf("%w: %q", ErrGlob, glob)
	}

	b.paths[clean] = struct{}{}
	b.entries = append(b.entries, entry{
		path:  clean,
		name:  name,
		glob:  glob,
		depth: depthOf(clean),
	})
	return nil
}

// Build compiles the accumulated entries into an immutable Set.
func (b *Builder) Build() *Set {
	entries := make([]entry, len(b.entries))
	copy(entries, b.entries)
	return &Set{entries: entries}
}

// Set is an immutable, queryable collection of scopes.
type Set struct {
	entries []entry
}

// Len returns the number of registered scopes.
func (s *Set) Len() int { return len(s.entries) }

// Path returns the directory path of the scope at index i.
func (s *Set) Path(i int) string { return s.entries[i].path }

// Name returns the name of the scope at index i.
func (s *Set) Name(i int) string { return s.entries[i].name }

// Get returns the index of the deepest scope whose glob matches path, or
// (-1, false) if no scope matches.
func (s *Set) Get(filePath string) (int, bool) {
	clean := filepathToSlash(filePath)
	best := -1
	bestDepth := -1
	for i, e := range s.entries {
		ok, err := doublestar.Match(e.glob, clean)
		if err != nil || !ok {
			continue
		}
		if e.depth > bestDepth {
			best = i
			bestDepth = e.depth
		}
	}
	if best < 0 {
		return -1, false
	}
	return best, true
}

func depthOf(p string) int {
	if p == "." || p == "" {
		return 0
	}
	return strings.Count(p, "/") + 1
}

// filepathToSlash normalizes OS-specific separators to forward slashes, since
// glob-set construction always expects forward slashes regardless of the
// build platform.
func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
