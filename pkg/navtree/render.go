package navtree

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Branch markers and continuation markers. All four have the same cell
// width so a prefix can be rewritten segment by segment.
const (
	MarkerLast     = "└─ "
	MarkerInterior = "├─ "
	MarkerBar      = "│  "
	MarkerBlank    = "   "
)

// Point is a screen coordinate in cells.
type Point struct {
	X, Y int
}

// Box is an inclusive rectangle of screen cells.
type Box struct {
	MinX, MaxX int
	MinY, MaxY int
}

// Contains reports whether (x, y) lies inside the box.
// The zero Box contains (0, 0); use Empty to test for unassigned boxes.
func (b Box) Contains(x, y int) bool {
	return !b.Empty() && x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Empty reports whether the box covers no cell.
func (b Box) Empty() bool {
	return b.MaxX < b.MinX || b.MaxY < b.MinY
}

// noBox is assigned to nodes that were not rendered in the last pass.
var noBox = Box{MinX: 0, MaxX: -1, MinY: 0, MaxY: -1}

// Line is one rendered row.
type Line struct {
	Code   string
	Prefix string
	Label  string
	Depth  int  // 0 for roots
	Opened bool // flag of the node at render time
	Leaf   bool // the node had no children
	Box    Box
}

func (l Line) String() string {
	return l.Prefix + l.Label
}

// Render emits one line per visible node of roots in depth-first pre-order
// and assigns every node's Box. Rows start at origin.Y; the label of each
// row starts after its prefix, offset by origin.X.
//
// With more than one root, every root but the last gets an interior marker,
// as if the roots were children of an invisible last node.
func Render(roots []*Node, origin Point) []Line {
	return RenderClipped(roots, origin, Point{})
}

// RenderClipped is like Render for a viewport of size.X columns and size.Y
// rows starting at origin. Boxes are cut to the viewport, so a label cell
// outside it is never hit. Rows below the viewport are still returned, with
// empty boxes. A zero dimension means no limit.
func RenderClipped(roots []*Node, origin, size Point) []Line {
	r := renderer{origin: origin, size: size}
	for _, root := range roots {
		root.Walk(func(n *Node) bool {
			n.Box = noBox
			return true
		})
	}
	for i, root := range roots {
		last := i == len(roots)-1
		marker := MarkerInterior
		if last {
			marker = MarkerLast
		}
		r.node(root, marker, last, 0)
	}
	return r.lines
}

type renderer struct {
	origin Point
	size   Point
	lines  []Line
}

// clip cuts b to the viewport.
func (r *renderer) clip(b Box) Box {
	if r.size.Y > 0 && b.MinY >= r.origin.Y+r.size.Y {
		return noBox
	}
	if r.size.X > 0 {
		edge := r.origin.X + r.size.X - 1
		if b.MinX > edge {
			return noBox
		}
		b.MaxX = min(b.MaxX, edge)
	}
	return b
}

// node renders n with the given prefix. last tells whether n is the final
// node of its own sibling sequence.
func (r *renderer) node(n *Node, prefix string, last bool, depth int) {
	row := r.origin.Y + len(r.lines)
	minX := r.origin.X + runewidth.StringWidth(prefix)
	width := runewidth.StringWidth(n.Label)
	if width == 0 {
		width = 1
	}
	n.Box = r.clip(Box{MinX: minX, MaxX: minX + width - 1, MinY: row, MaxY: row})
	r.lines = append(r.lines, Line{
		Code:   n.Code,
		Prefix: prefix,
		Label:  n.Label,
		Depth:  depth,
		Opened: n.Opened,
		Leaf:   len(n.Children) == 0,
		Box:    n.Box,
	})

	if !n.Opened || len(n.Children) == 0 {
		return
	}

	continuation := MarkerBar
	if last {
		continuation = MarkerBlank
	}
	next := strings.TrimSuffix(prefix, branchMarker(prefix)) + continuation
	for i, child := range n.Children {
		childLast := i == len(n.Children)-1
		marker := MarkerInterior
		if childLast {
			marker = MarkerLast
		}
		r.node(child, next+marker, childLast, depth+1)
	}
}

// branchMarker returns the trailing branch marker of prefix.
func branchMarker(prefix string) string {
	if strings.HasSuffix(prefix, MarkerInterior) {
		return MarkerInterior
	}
	return MarkerLast
}
