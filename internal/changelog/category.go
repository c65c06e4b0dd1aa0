package changelog

import "github.com/relcraft/mono/internal/change"

// Category groups changes for rendering, ordered Breaking < Feature < Fix <
// Performance < Refactor.
type Category int

const (
	Breaking Category = iota
	Feature
	Fix
	Performance
	Refactor
)

func (c Category) heading() string {
	switch c {
	case Breaking:
		return "Breaking changes"
	case Feature:
		return "Features"
	case Fix:
		return "Bug fixes"
	case Performance:
		return "Performance improvements"
	case Refactor:
		return "Refactorings"
	default:
		return ""
	}
}

// categoryFor maps a change to its changelog category. Changes whose kind
// falls outside {Feature, Fix, Performance, Refactor} and which are not
// breaking produce no category.
func categoryFor(c change.Change) (Category, bool) {
	if c.Breaking() {
		return Breaking, true
	}
	switch c.Kind() {
	case change.Feature:
		return Feature, true
	case change.Fix:
		return Fix, true
	case change.Performance:
		return Performance, true
	case change.Refactor:
		return Refactor, true
	default:
		return 0, false
	}
}
