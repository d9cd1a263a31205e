package navtree

// Tree is the navigation tree component. It owns the backing mapping, the
// expansion state and the hierarchy built from them.
//
// A Tree is not safe for concurrent use; it expects to be driven by a
// single event loop.
type Tree struct {
	entries Entries
	state   *ExpansionState
	loader  Loader
	forest  bool
	origin  Point
	size    Point // viewport, zero means unlimited

	roots    []*Node
	rendered bool // boxes match the current hierarchy
}

// Option configures a Tree.
type Option func(*Tree)

// WithForest makes the tree show every top-level code as a root instead of
// stopping after the first one.
func WithForest() Option {
	return func(t *Tree) { t.forest = true }
}

// WithOrigin sets the screen cell where the first line is drawn.
func WithOrigin(x, y int) Option {
	return func(t *Tree) { t.origin = Point{X: x, Y: y} }
}

// WithExpansionState makes the tree read and record flags in state, so
// several trees (or successive ones) can share expansion.
func WithExpansionState(state *ExpansionState) Option {
	return func(t *Tree) {
		if state != nil {
			t.state = state
		}
	}
}

// ToggleResult describes what a toggle did.
type ToggleResult struct {
	Code       string
	Opened     bool // state after the toggle
	Loaded     bool // the loader was consulted
	LoadFailed bool // the loader returned an error or panicked
	Added      int  // new codes merged from the loader
}

// New builds a tree from entries. The mapping is copied; entries with
// invalid codes are dropped and logged. loader may be nil.
func New(entries Entries, loader Loader, opts ...Option) *Tree {
	t := &Tree{
		entries: sanitize(entries),
		state:   NewExpansionState(),
		loader:  loader,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.rebuild()
	return t
}

// rebuild discards the hierarchy and builds a new one from the backing
// mapping and the expansion state.
func (t *Tree) rebuild() {
	if t.forest {
		t.roots = BuildForest(t.entries, t.state)
	} else if root := Build(t.entries, t.state); root != nil {
		t.roots = []*Node{root}
	} else {
		t.roots = nil
	}
	t.rendered = false
}

// Roots returns the current root nodes. The slice is empty for an empty
// mapping and holds at most one node unless WithForest was given.
func (t *Tree) Roots() []*Node {
	return t.roots
}

// Root returns the first root, or nil.
func (t *Tree) Root() *Node {
	if len(t.roots) == 0 {
		return nil
	}
	return t.roots[0]
}

// Node returns the node with the given code in the current hierarchy.
func (t *Tree) Node(code string) *Node {
	for _, root := range t.roots {
		if n := root.Find(code); n != nil {
			return n
		}
	}
	return nil
}

// Entries returns a copy of the backing mapping.
func (t *Tree) Entries() Entries {
	return t.entries.Clone()
}

// Len returns the number of entries in the backing mapping.
func (t *Tree) Len() int {
	return len(t.entries)
}

// State returns the expansion state.
func (t *Tree) State() *ExpansionState {
	return t.state
}

// Origin returns the screen cell of the first line.
func (t *Tree) Origin() Point {
	return t.origin
}

// SetOrigin moves the tree on screen. Boxes are updated on the next Render.
func (t *Tree) SetOrigin(x, y int) {
	if t.origin.X == x && t.origin.Y == y {
		return
	}
	t.origin = Point{X: x, Y: y}
	t.rendered = false
}

// SetViewport limits hit-testing to width columns and height rows from the
// origin. Zero means no limit in that direction.
func (t *Tree) SetViewport(width, height int) {
	size := Point{X: max(width, 0), Y: max(height, 0)}
	if t.size == size {
		return
	}
	t.size = size
	t.rendered = false
}

// Render lays out the visible nodes and returns one line per node.
// It must run once per frame before presses for that frame are valid.
func (t *Tree) Render() []Line {
	lines := RenderClipped(t.roots, t.origin, t.size)
	t.rendered = true
	return lines
}

// Lines renders the tree and returns the plain text of every line.
func (t *Tree) Lines() []string {
	lines := t.Render()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// NodeAt returns the visible node whose label box contains (x, y), or nil.
func (t *Tree) NodeAt(x, y int) *Node {
	if !t.rendered {
		t.Render()
	}
	return HitTest(t.roots, x, y)
}

// Press handles a primary-button press at (x, y). It reports false when no
// node was hit, leaving the press to the caller.
func (t *Tree) Press(x, y int) (ToggleResult, bool) {
	n := t.NodeAt(x, y)
	if n == nil {
		return ToggleResult{}, false
	}
	return t.toggle(n), true
}

// Toggle applies the toggle policy to the node with the given code. It
// reports false if the code is not part of the current hierarchy.
func (t *Tree) Toggle(code string) (ToggleResult, bool) {
	n := t.Node(code)
	if n == nil {
		return ToggleResult{}, false
	}
	return t.toggle(n), true
}

// toggle closes an opened node that has children. Any other node is opened
// and the loader is asked for more entries, after which the hierarchy is
// rebuilt. A childless node counts as not loaded yet, so reopening it asks
// the loader again.
func (t *Tree) toggle(n *Node) ToggleResult {
	result := ToggleResult{Code: n.Code}

	if n.Opened && len(n.Children) > 0 {
		n.Opened = false
		t.state.Set(n.Code, false)
		t.rendered = false
		return result
	}

	n.Opened = true
	t.state.Set(n.Code, true)
	result.Opened = true
	result.Loaded = true

	loaded, err := safeLoad(t.loader, n.Code)
	if err != nil {
		logLoadError(err)
		result.LoadFailed = true
	}
	report := t.entries.Merge(loaded)
	logRejected(report)
	result.Added = report.Added

	t.rebuild()
	return result
}

// Merge adds entries to the backing mapping outside of a toggle, for
// example after a data source changed. The hierarchy is rebuilt when the
// mapping changed.
func (t *Tree) Merge(entries Entries) MergeReport {
	report := t.entries.Merge(entries)
	logRejected(report)
	if report.Changed() {
		t.rebuild()
	}
	return report
}
