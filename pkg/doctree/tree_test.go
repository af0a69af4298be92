package doctree

import (
	"fmt"
	"testing"

	"github.com/hellenic-development/backlog-exporter/pkg/backlog"
)

func doc(id, parentID string) backlog.DocumentSummary {
	return backlog.DocumentSummary{ID: id, Title: "Doc " + id, ParentID: parentID}
}

func collectIDs(roots []*Node) []string {
	var ids []string
	Walk(roots, func(n *Node, _ int) {
		ids = append(ids, n.Document.ID)
	})
	return ids
}

func TestBuildPreservesAllIDs(t *testing.T) {
	tests := []struct {
		name  string
		input []backlog.DocumentSummary
	}{
		{
			name:  "flat list without parents",
			input: []backlog.DocumentSummary{doc("a", ""), doc("b", ""), doc("c", "")},
		},
		{
			name:  "simple hierarchy",
			input: []backlog.DocumentSummary{doc("a", ""), doc("b", "a"), doc("c", "a"), doc("d", "b")},
		},
		{
			name:  "child listed before its parent",
			input: []backlog.DocumentSummary{doc("b", "a"), doc("a", "")},
		},
		{
			name:  "unknown parents",
			input: []backlog.DocumentSummary{doc("a", "missing"), doc("b", "gone")},
		},
		{
			name:  "empty input",
			input: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots := Build(tt.input)

			ids := collectIDs(roots)
			if len(ids) != len(tt.input) {
				t.Fatalf("forest has %d nodes, want %d", len(ids), len(tt.input))
			}
			seen := make(map[string]bool, len(ids))
			for _, id := range ids {
				if seen[id] {
					t.Errorf("id %q appears more than once", id)
				}
				seen[id] = true
			}
			for _, s := range tt.input {
				if !seen[s.ID] {
					t.Errorf("id %q missing from forest", s.ID)
				}
			}
			if got := Count(roots); got != len(tt.input) {
				t.Errorf("Count() = %d, want %d", got, len(tt.input))
			}
		})
	}
}

func TestBuildParentAttachment(t *testing.T) {
	input := []backlog.DocumentSummary{
		doc("root", ""),
		doc("child", "root"),
		doc("orphan", "missing"),
		doc("self", "self"),
	}

	roots := Build(input)

	if len(roots) != 3 {
		t.Fatalf("got %d roots, want 3", len(roots))
	}
	if roots[0].Document.ID != "root" || roots[1].Document.ID != "orphan" || roots[2].Document.ID != "self" {
		t.Errorf("roots = %v, want [root orphan self]", collectRootIDs(roots))
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Document.ID != "child" {
		t.Errorf("children of root = %v, want [child]", roots[0].Children)
	}
}

func collectRootIDs(roots []*Node) []string {
	ids := make([]string, 0, len(roots))
	for _, n := range roots {
		ids = append(ids, n.Document.ID)
	}
	return ids
}

func TestBuildSiblingOrder(t *testing.T) {
	input := []backlog.DocumentSummary{
		doc("p", ""),
		doc("c3", "p"),
		doc("c1", "p"),
		doc("c2", "p"),
	}

	roots := Build(input)
	if len(roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(roots))
	}

	want := []string{"c3", "c1", "c2"}
	children := roots[0].Children
	if len(children) != len(want) {
		t.Fatalf("got %d children, want %d", len(children), len(want))
	}
	for i, w := range want {
		if children[i].Document.ID != w {
			t.Errorf("children[%d] = %q, want %q", i, children[i].Document.ID, w)
		}
	}
}

func TestBuildDeepChain(t *testing.T) {
	const depth = 500

	input := []backlog.DocumentSummary{doc("n0", "")}
	for i := 1; i < depth; i++ {
		input = append(input, doc(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i-1)))
	}

	roots := Build(input)
	if len(roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(roots))
	}

	maxDepth := 0
	Walk(roots, func(_ *Node, d int) {
		if d > maxDepth {
			maxDepth = d
		}
	})
	if maxDepth != depth-1 {
		t.Errorf("max depth = %d, want %d", maxDepth, depth-1)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	input := []backlog.DocumentSummary{
		doc("a", ""),
		doc("b", "a"),
		doc("c", ""),
		doc("d", "c"),
	}

	first := collectIDs(Build(input))
	second := collectIDs(Build(input))
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("walk order differs between runs: %v vs %v", first, second)
		}
	}
}

func TestOrphans(t *testing.T) {
	input := []backlog.DocumentSummary{
		doc("a", ""),
		doc("b", "a"),
		doc("c", "missing"),
		doc("d", "d"),
	}

	orphans := Orphans(input)
	if len(orphans) != 1 {
		t.Fatalf("got %d orphans, want 1", len(orphans))
	}
	if orphans[0].ID != "c" {
		t.Errorf("orphan = %q, want %q", orphans[0].ID, "c")
	}
}
