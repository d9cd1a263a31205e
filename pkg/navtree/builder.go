package navtree

// Node is one element of the built hierarchy. A node owns its children;
// the whole hierarchy is replaced on every rebuild, so only Code is stable.
type Node struct {
	Code     string
	Label    string
	Opened   bool
	Children []*Node

	// Box is the screen area of the node's label, assigned by Render.
	Box Box
}

// IsLeaf reports whether the node currently has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Walk visits n and all of its descendants in pre-order, including those
// below closed nodes. It stops early when fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the node with the given code below (or at) n.
func (n *Node) Find(code string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.Code == code {
			found = node
			return false
		}
		return true
	})
	return found
}

// Build turns entries into a single-rooted hierarchy.
//
// The first entry in tree order becomes the root. Consumption stops at the
// first entry that does not descend from the root, so later top-level codes
// are not part of the result. Build returns nil for an empty mapping.
//
// Tree order compares codes segment by segment (see CompareCodes) and
// differs from raw byte order on purpose: "a-x" is a sibling of "a", not a
// descendant placed between "a" and "a.b".
//
// Every visited code is observed in state: unknown codes are recorded as
// opened, known codes have their stored flag copied into the node.
func Build(entries Entries, state *ExpansionState) *Node {
	b := builder{sorted: entries.Sorted(), state: state}
	if len(b.sorted) == 0 {
		return nil
	}
	return b.node()
}

// BuildForest is like Build but keeps building sibling roots until every
// entry has been consumed.
func BuildForest(entries Entries, state *ExpansionState) []*Node {
	b := builder{sorted: entries.Sorted(), state: state}
	var roots []*Node
	for b.pos < len(b.sorted) {
		roots = append(roots, b.node())
	}
	return roots
}

type builder struct {
	sorted []Entry
	pos    int
	state  *ExpansionState
}

// node consumes the entry at pos and, recursively, every following entry
// that descends from it.
func (b *builder) node() *Node {
	entry := b.sorted[b.pos]
	b.pos++

	n := &Node{
		Code:   entry.Code,
		Label:  entry.Label,
		Opened: b.state.Observe(entry.Code),
	}
	for b.pos < len(b.sorted) && IsDescendant(b.sorted[b.pos].Code, n.Code) {
		n.Children = append(n.Children, b.node())
	}
	return n
}
