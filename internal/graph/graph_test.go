package graph

import "testing"

func TestTraverseVisitsDependenciesFirst(t *testing.T) {
	g := New(3) // A=0, B=1, C=2
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)

	order, err := g.Traverse([]int{0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 3 {
		t.Fatalf("expected all 3 reachable nodes, got %v", order)
	}
	pos := make(map[int]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	if pos[0] > pos[1] || pos[1] > pos[2] {
		t.Errorf("expected order A,B,C got %v", order)
	}
}

func TestTraverseRestrictedToReachable(t *testing.T) {
	g := New(4)
	g.AddEdge(0, 1)
	g.AddEdge(2, 3)

	order, err := g.Traverse([]int{0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 {
		t.Fatalf("expected only {0,1} reachable, got %v", order)
	}
}

func TestTraverseDetectsCycle(t *testing.T) {
	g := New(2)
	g.AddEdge(0, 1)
	g.AddEdge(1, 0)

	if _, err := g.Traverse([]int{0}); err != ErrCycle {
		t.Errorf("expected ErrCycle, got %v", err)
	}
}

func TestSourcesAndSinks(t *testing.T) {
	g := New(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)

	sources := g.Sources()
	if len(sources) != 1 || sources[0] != 0 {
		t.Errorf("Sources() = %v, want [0]", sources)
	}
	sinks := g.Sinks()
	if len(sinks) != 1 || sinks[0] != 2 {
		t.Errorf("Sinks() = %v, want [2]", sinks)
	}
}

func TestTraverseDiamond(t *testing.T) {
	// A -> B, A -> C, B -> D, C -> D
	g := New(4)
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)

	order, err := g.Traverse([]int{0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pos := make(map[int]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	if pos[3] < pos[1] || pos[3] < pos[2] {
		t.Errorf("D must come after both B and C: order=%v", order)
	}
}
