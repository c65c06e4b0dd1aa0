package workspace

import (
	"sort"

	"github.com/relcraft/mono/internal/graph"
	"github.com/relcraft/mono/internal/increment"
)

// Suggestion is offered to a Decide function for a single project during
// propagation: the project's index and name, plus the sorted, deduplicated
// set of increment options implied by its own current slot and its
// already-finalized upstream dependencies.
type Suggestion struct {
	ProjectIndex int
	ProjectName  string
	Options      []increment.Kind
}

// Decide chooses an increment for a Suggestion, or increment.None to leave
// the project unreleased.
type Decide func(Suggestion) increment.Kind

// AcceptHighest is the non-interactive Decide used by `mono version list`
// (with or without --all) and by tests: it always chooses the richest option
// offered.
func AcceptHighest(s Suggestion) increment.Kind {
	best := increment.None
	for _, k := range s.Options {
		best = increment.Max(best, k)
	}
	return best
}

// Propagate walks g in topological order starting from the nodes with a set
// increment in current, folding each node's upstream dependency increments
// into a Suggestion and writing the Decide function's choice back into
// current. current is read and mutated in place; the final vector is also
// returned for convenience. Per §4.7, by the time a node is visited every
// upstream dependency that is reachable from the seed set has already been
// finalized.
func Propagate(g *graph.Graph, current []increment.Kind, names []string, decide Decide) ([]increment.Kind, error) {
	var seeds []int
	for i, k := range current {
		if k != increment.None {
			seeds = append(seeds, i)
		}
	}

	order, err := g.Traverse(seeds)
	if err != nil {
		return nil, err
	}

	for _, node := range order {
		options := map[increment.Kind]struct{}{current[node]: {}}
		for _, dep := range g.Incoming(node) {
			if current[dep] > current[node] {
				options[current[dep]] = struct{}{}
			}
		}
		sorted := make([]increment.Kind, 0, len(options))
		for k := range options {
			sorted = append(sorted, k)
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		name := ""
		if node < len(names) {
			name = names[node]
		}
		current[node] = decide(Suggestion{ProjectIndex: node, ProjectName: name, Options: sorted})
	}

	return current, nil
}
