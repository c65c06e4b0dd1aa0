// Package changelog renders a changeset's release-relevant revisions as
// grouped Markdown, ordered Breaking < Feature < Fix < Performance <
// Refactor.
package changelog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/relcraft/mono/internal/changeset"
)

// Item is a single rendered changelog line.
type Item struct {
	ShortID string
	Scopes  []string // bold scope names, in changeset-insertion order
	Summary string
	Issues  []uint32
}

// String renders the item as:
// "<short-id>[ __scope__[, __scope__]…] – <summary>[ (#n[, #n]…)]".
func (it Item) String() string {
	var b strings.Builder
	b.WriteString(it.ShortID)
	for i, s := range it.Scopes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(" __")
		b.WriteString(s)
		b.WriteString("__")
	}
	b.WriteString(" – ")
	b.WriteString(it.Summary)
	if len(it.Issues) > 0 {
		b.WriteString(" (")
		for i, n := range it.Issues {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('#')
			b.WriteString(strconv.FormatUint(uint64(n), 10))
		}
		b.WriteByte(')')
	}
	return b.String()
}

// Section is one category's heading plus its items, in revision order.
type Section struct {
	Category Category
	Items    []Item
}

// Changelog is a Category-ordered, non-empty-only set of sections.
type Changelog struct {
	sections []Section
}

// New builds a Changelog from cs's revisions and scope set. Revisions whose
// change maps to no category are omitted.
func New(cs *changeset.Changeset) *Changelog {
	byCategory := make(map[Category][]Item)

	for _, rev := range cs.Revisions() {
		cat, ok := categoryFor(rev.Change)
		if !ok {
			continue
		}
		var scopeNames []string
		for _, idx := range rev.Scopes {
			scopeNames = append(scopeNames, cs.Scopes().Name(idx))
		}
		issues := append([]uint32(nil), rev.Issues...)
		sort.Slice(issues, func(i, j int) bool { return issues[i] < issues[j] })

		byCategory[cat] = append(byCategory[cat], Item{
			ShortID: rev.Commit.ShortID(),
			Scopes:  scopeNames,
			Summary: rev.Change.Summary(),
			Issues:  issues,
		})
	}

	cl := &Changelog{}
	for cat := Breaking; cat <= Refactor; cat++ {
		items, ok := byCategory[cat]
		if !ok || len(items) == 0 {
			continue
		}
		cl.sections = append(cl.sections, Section{Category: cat, Items: items})
	}
	return cl
}

// Sections returns the non-empty sections in category order.
func (cl *Changelog) Sections() []Section { return cl.sections }

// Empty reports whether the changelog has no release-relevant revisions.
func (cl *Changelog) Empty() bool { return len(cl.sections) == 0 }

// String renders the exact Markdown shape specified for this changelog: an
// empty changelog renders to the empty string.
func (cl *Changelog) String() string {
	if cl.Empty() {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Changelog\n")
	for _, sec := range cl.sections {
		b.WriteString("\n### ")
		b.WriteString(sec.Category.heading())
		b.WriteString("\n\n")
		for i, item := range sec.Items {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "- %s", item.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
