package change

import "fmt"

// Kind is one of the closed set of conventional-commit type tokens.
type Kind int

const (
	Feature Kind = iota
	Fix
	Performance
	Refactor
	Build
	Docs
	Style
	Test
	Chore
)

var kindNames = map[Kind]string{
	Feature:     "feature",
	Fix:         "fix",
	Performance: "performance",
	Refactor:    "refactor",
	Build:       "build",
	Docs:        "docs",
	Style:       "style",
	Test:        "test",
	Chore:       "chore",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return name
}

// ParseKind resolves a lowercase kind keyword, returning ErrKind if it is not
// one of the closed set.
func ParseKind(s string) (Kind, error) {
	k, ok := kindsByName[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrKind, s)
	}
	return k, nil
}
