// Package doctree reconstructs the document hierarchy from the flat
// parent-pointer list returned by the document list endpoint.
package doctree

import "github.com/hellenic-development/backlog-exporter/pkg/backlog"

// Node is one document in the reconstructed hierarchy.
type Node struct {
	Document backlog.DocumentSummary
	Children []*Node
}

// Build converts a flat collection of summaries into a forest of root nodes.
// A document becomes a child of the document its ParentID names when that
// document is part of the input set; a document with no parent, an unknown
// parent, or a parent id equal to its own id becomes a root. Sibling and
// root order is first-seen input order. Build is a pure function of its
// input: the same sequence always yields the same forest.
func Build(summaries []backlog.DocumentSummary) []*Node {
	// Arena of nodes indexed by id; children are references into the arena,
	// never copies, so a parent appearing after its children still works.
	arena := make(map[string]*Node, len(summaries))
	order := make([]*Node, 0, len(summaries))
	for i := range summaries {
		if _, seen := arena[summaries[i].ID]; seen {
			continue
		}
		n := &Node{Document: summaries[i]}
		arena[summaries[i].ID] = n
		order = append(order, n)
	}

	var roots []*Node
	for _, n := range order {
		parentID := n.Document.ParentID
		if parentID != "" && parentID != n.Document.ID {
			if parent, ok := arena[parentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}

// Walk visits every node of the forest depth-first, children directly after
// their parent in sibling order, passing each node's depth (roots are 0).
func Walk(roots []*Node, visit func(n *Node, depth int)) {
	for _, n := range roots {
		walkNode(n, 0, visit)
	}
}

func walkNode(n *Node, depth int, visit func(*Node, int)) {
	visit(n, depth)
	for _, child := range n.Children {
		walkNode(child, depth+1, visit)
	}
}

// Count returns the total number of nodes in the forest.
func Count(roots []*Node) int {
	total := 0
	Walk(roots, func(*Node, int) { total++ })
	return total
}

// Orphans returns the documents whose ParentID names a document outside the
// input set. Such documents are still placed in the forest as roots; callers
// use this to surface the inconsistency.
func Orphans(summaries []backlog.DocumentSummary) []backlog.DocumentSummary {
	ids := make(map[string]bool, len(summaries))
	for _, s := range summaries {
		ids[s.ID] = true
	}
	var orphans []backlog.DocumentSummary
	for _, s := range summaries {
		if s.ParentID != "" && s.ParentID != s.ID && !ids[s.ParentID] {
			orphans = append(orphans, s)
		}
	}
	return orphans
}
