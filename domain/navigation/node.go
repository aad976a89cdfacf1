// Package navigation models the sidebar of a documentation site: a tree of
// labelled entries where leaves point at content documents by slug and groups
// hold ordered children.
package navigation

// Node is a single sidebar entry.
//
// A well-formed node is either a leaf (slug set, no items) or a group (a
// non-empty items list, no slug). Node can also carry malformed shapes so that
// decoded site files reach Validate intact and get reported instead of being
// silently repaired.
type Node struct {
	label    string
	slug     string
	items    []Node
	hasSlug  bool
	hasItems bool
}

// NodeOption configures a Node.
type NodeOption func(*Node)

// WithSlug sets the slug of the node.
func WithSlug(slug string) NodeOption {
	return func(n *Node) {
		n.slug = slug
		n.hasSlug = true
	}
}

// WithItems sets the children of the node. Passing no items marks the node
// as a group with an empty items list.
func WithItems(items ...Node) NodeOption {
	return func(n *Node) {
		n.items = make([]Node, len(items))
		copy(n.items, items)
		n.hasItems = true
	}
}

// NewNode creates a Node from options.
func NewNode(label string, options ...NodeOption) Node {
	n := Node{label: label}
	for _, opt := range options {
		opt(&n)
	}
	return n
}

// Leaf creates a node that links to the content document identified by slug.
func Leaf(label, slug string) Node {
	return NewNode(label, WithSlug(slug))
}

// Group creates a node holding the given children in order.
func Group(label string, items ...Node) Node {
	return NewNode(label, WithItems(items...))
}

// Label returns the display text.
func (n Node) Label() string { return n.label }

// Slug returns the content slug, empty for groups.
func (n Node) Slug() string { return n.slug }

// Items returns the children in declaration order.
func (n Node) Items() []Node { return n.items }

// HasSlug reports whether a slug was declared, even an empty one.
func (n Node) HasSlug() bool { return n.hasSlug }

// HasItems reports whether an items list was declared, even an empty one.
func (n Node) HasItems() bool { return n.hasItems }

// IsLeaf reports whether the node is a well-formed leaf.
func (n Node) IsLeaf() bool { return n.hasSlug && !n.hasItems }

// IsGroup reports whether the node is a well-formed group.
func (n Node) IsGroup() bool { return n.hasItems && !n.hasSlug && len(n.items) > 0 }

// Equal reports whether two nodes are structurally identical, children
// included and in the same order.
func (n Node) Equal(other Node) bool {
	if n.label != other.label ||
		n.slug != other.slug ||
		n.hasSlug != other.hasSlug ||
		n.hasItems != other.hasItems ||
		len(n.items) != len(other.items) {
		return false
	}
	for i := range n.items {
		if !n.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}
