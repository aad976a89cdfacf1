package navigation

import (
	"fmt"
	"strings"
)

// Position locates a node in a tree by its index path and the labels of the
// nodes along that path.
type Position struct {
	indices []int
	labels  []string
}

// Indices returns the zero-based index of each node on the path from the root.
func (p Position) Indices() []int { return p.indices }

// Labels returns the label of each node on the path from the root.
func (p Position) Labels() []string { return p.labels }

// Depth returns the nesting level, 1 for top-level nodes.
func (p Position) Depth() int { return len(p.indices) }

// child returns the position of the index-th child labelled label.
func (p Position) child(index int, label string) Position {
	indices := make([]int, len(p.indices), len(p.indices)+1)
	copy(indices, p.indices)
	labels := make([]string, len(p.labels), len(p.labels)+1)
	copy(labels, p.labels)
	return Position{
		indices: append(indices, index),
		labels:  append(labels, label),
	}
}

// String renders the position as "Modules > Persistence > Introduction [0 4 0]".
// Unlabelled nodes are shown as "#index".
func (p Position) String() string {
	if len(p.indices) == 0 {
		return "<root>"
	}
	parts := make([]string, len(p.labels))
	for i, l := range p.labels {
		if strings.TrimSpace(l) == "" {
			l = fmt.Sprintf("#%d", p.indices[i])
		}
		parts[i] = l
	}
	return fmt.Sprintf("%s %v", strings.Join(parts, " > "), p.indices)
}
