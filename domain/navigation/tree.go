package navigation

// Tree is the complete sidebar: an ordered list of top-level nodes.
type Tree struct {
	roots []Node
}

// NewTree creates a Tree from its top-level nodes.
func NewTree(roots ...Node) Tree {
	r := make([]Node, len(roots))
	copy(r, roots)
	return Tree{roots: r}
}

// Roots returns the top-level nodes in declaration order.
func (t Tree) Roots() []Node { return t.roots }

// Walk visits every node depth-first in declaration order. Returning false
// from fn stops the walk.
func (t Tree) Walk(fn func(pos Position, n Node) bool) {
	walk(t.roots, Position{}, fn)
}

func walk(nodes []Node, parent Position, fn func(Position, Node) bool) bool {
	for i, n := range nodes {
		pos := parent.child(i, n.label)
		if !fn(pos, n) {
			return false
		}
		if !walk(n.items, pos, fn) {
			return false
		}
	}
	return true
}

// Leaves returns every node that declares a slug, in declaration order.
func (t Tree) Leaves() []Node {
	var leaves []Node
	t.Walk(func(_ Position, n Node) bool {
		if n.hasSlug {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// Slugs returns the slug of every leaf in declaration order. Duplicates are
// kept.
func (t Tree) Slugs() []string {
	leaves := t.Leaves()
	slugs := make([]string, len(leaves))
	for i, l := range leaves {
		slugs[i] = l.slug
	}
	return slugs
}

// Find returns the first node declaring slug and its position.
func (t Tree) Find(slug string) (Node, Position, bool) {
	var (
		found Node
		at    Position
		ok    bool
	)
	t.Walk(func(pos Position, n Node) bool {
		if n.hasSlug && n.slug == slug {
			found, at, ok = n, pos, true
			return false
		}
		return true
	})
	return found, at, ok
}

// Count returns the total number of nodes.
func (t Tree) Count() int {
	count := 0
	t.Walk(func(Position, Node) bool {
		count++
		return true
	})
	return count
}

// Depth returns the deepest nesting level, 0 for an empty tree.
func (t Tree) Depth() int {
	depth := 0
	t.Walk(func(pos Position, _ Node) bool {
		if pos.Depth() > depth {
			depth = pos.Depth()
		}
		return true
	})
	return depth
}

// Equal reports whether two trees are structurally identical.
func (t Tree) Equal(other Tree) bool {
	if len(t.roots) != len(other.roots) {
		return false
	}
	for i := range t.roots {
		if !t.roots[i].Equal(other.roots[i]) {
			return false
		}
	}
	return true
}
