package navtree

// HitTest returns the first rendered node, in depth-first order, whose box
// contains (x, y). Children of closed nodes are not rendered and are never
// hit. It returns nil on a miss.
func HitTest(roots []*Node, x, y int) *Node {
	for _, root := range roots {
		if n := hitNode(root, x, y); n != nil {
			return n
		}
	}
	return nil
}

func hitNode(n *Node, x, y int) *Node {
	if n.Box.Contains(x, y) {
		return n
	}
	if !n.Opened {
		return nil
	}
	for _, child := range n.Children {
		if hit := hitNode(child, x, y); hit != nil {
			return hit
		}
	}
	return nil
}
