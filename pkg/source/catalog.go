package source

import (
	"github.com/vanderheijden86/navtree/pkg/navtree"
)

// Catalog holds a complete mapping but hands it out one level at a time:
// the tree starts with the shallow codes and every open of a childless
// node loads its direct children.
type Catalog struct {
	all navtree.Entries
}

// NewCatalog returns a catalog over a copy of all.
func NewCatalog(all navtree.Entries) *Catalog {
	return &Catalog{all: all.Clone()}
}

// Initial returns every code whose depth is at most maxDepth.
func (c *Catalog) Initial(maxDepth int) navtree.Entries {
	out := navtree.Entries{}
	for code, label := range c.all {
		if navtree.Depth(code) <= maxDepth {
			out[code] = label
		}
	}
	return out
}

// Load returns the direct children of code.
func (c *Catalog) Load(code string) (navtree.Entries, error) {
	return directChildren(c.all, code), nil
}

// Len returns the size of the full mapping.
func (c *Catalog) Len() int {
	return len(c.all)
}

func directChildren(all navtree.Entries, code string) navtree.Entries {
	out := navtree.Entries{}
	depth := navtree.Depth(code) + 1
	for child, label := range all {
		if navtree.IsDescendant(child, code) && navtree.Depth(child) == depth {
			out[child] = label
		}
	}
	return out
}
