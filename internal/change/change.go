// Package change parses conventional-commit summaries into a closed,
// strictly validated representation used to drive version increments.
package change

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/relcraft/mono/internal/increment"
)

// Change is an immutable, parsed conventional-commit summary.
type Change struct {
	kind       Kind
	summary    string
	references []uint32
	breaking   bool
}

// Kind returns the change's kind.
func (c Change) Kind() Kind { return c.kind }

// Summary returns the cleaned summary text, with issue references removed.
func (c Change) Summary() string { return c.summary }

// References returns the sorted, de-duplicated issue numbers found in the
// summary.
func (c Change) References() []uint32 { return c.references }

// Breaking reports whether the change's type token carried a "!" marker.
func (c Change) Breaking() bool { return c.breaking }

// AsIncrement maps the change's kind (and breaking flag) to the version
// increment it implies, or increment.None if the kind carries no release
// weight on its own.
func (c Change) AsIncrement() increment.Kind {
	var base increment.Kind
	switch c.kind {
	case Feature:
		base = increment.Minor
	case Fix, Performance, Refactor:
		base = increment.Patch
	default:
		return increment.None
	}
	if c.breaking {
		return increment.Major
	}
	return base
}

// String renders the change back to conventional-commit form:
// "<kind>[!]: <summary>[ (#n, #n, …)]".
func (c Change) String() string {
	var b strings.Builder
	b.WriteString(c.kind.String())
	if c.breaking {
		b.WriteByte('!')
	}
	b.WriteString(": ")
	b.WriteString(c.summary)
	if len(c.references) > 0 {
		b.WriteString(" (")
		for i, ref := range c.references {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('#')
			b.WriteString(strconv.FormatUint(uint64(ref), 10))
		}
		b.WriteByte(')')
	}
	return b.String()
}

// Parse parses a single-line conventional-commit summary. Rules are checked
// in a fixed order: format, kind, whitespace, casing, punctuation, then
// reference extraction.
func Parse(value string) (Change, error) {
	typeToken, summary, ok := strings.Cut(value, ": ")
	if !ok {
		return Change{}, ErrFormat
	}

	breaking := false
	kindToken := typeToken
	if bang := strings.IndexByte(typeToken, '!'); bang >= 0 {
		kindToken = typeToken[:bang]
		breaking = true
	}
	kind, err := ParseKind(kindToken)
	if err != nil {
		return Change{}, err
	}

	if summary != strings.TrimSpace(summary) {
		return Change{}, ErrWhitespace
	}

	if r := firstRune(summary); r != 0 && unicode.IsUpper(r) {
		word := firstField(summary)
		if !isAcronym(word) {
			return Change{}, ErrCasing
		}
	}

	if summary != "" && strings.ContainsAny(summary[len(summary)-1:], ".!?,;:") {
		return Change{}, ErrPunctuation
	}

	cleaned, refs, err := extractReferences(summary)
	if err != nil {
		return Change{}, err
	}

	return Change{
		kind:       kind,
		summary:    cleaned,
		references: refs,
		breaking:   breaking,
	}, nil
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func isAcronym(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// extractReferences scans summary for "#<digits>" occurrences. Each must be
// wrapped in parentheses as "(#N)", or listed in one parenthesized group as
// "(#N, #M)" (the form String renders); any occurrence that is not produces
// ErrReference. Matched occurrences are removed and their numbers collected
// into a sorted, de-duplicated slice; the remaining text is trimmed and
// rejoined with single spaces.
//
// A "#" at the very start of the string is never treated as a reference
// (there is no character before it that could open a wrapping paren), and is
// left untouched as literal text — this mirrors the reference parser this
// package is modeled on.
func extractReferences(summary string) (string, []uint32, error) {
	seen := make(map[uint32]struct{})
	var refs []uint32
	var parts []string

	start := 0
	i := 0
	inGroup := false
	for i < len(summary) {
		if summary[i] != '#' {
			i++
			continue
		}

		j := i + 1
		for j < len(summary) && isDigit(summary[j]) {
			j++
		}
		if j == i+1 {
			i++
			continue
		}

		if i == 0 {
			i = j
			continue
		}

		n, err := strconv.ParseUint(summary[i+1:j], 10, 32)
		if err != nil {
			i++
			continue
		}

		opening := summary[i-1]
		if inGroup {
			if i != start+1 || opening != ' ' {
				return "", nil, ErrReference
			}
			opening = '('
		}
		closing := byte(0)
		if j < len(summary) {
			closing = summary[j]
		}
		if opening != '(' || (closing != ')' && closing != ',') {
			return "", nil, ErrReference
		}
		inGroup = closing == ','

		if _, ok := seen[uint32(n)]; !ok {
			seen[uint32(n)] = struct{}{}
			refs = append(refs, uint32(n))
		}

		parts = append(parts, strings.TrimSpace(summary[start:i-1]))
		start = j + 1
		i = j + 1
	}
	if inGroup {
		return "", nil, ErrReference
	}
	parts = append(parts, strings.TrimSpace(summary[start:]))

	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	sort.Slice(refs, func(a, b int) bool { return refs[a] < refs[b] })
	return strings.Join(nonEmpty, " "), refs, nil
}
