package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vanderheijden86/navtree/pkg/navtree"
)

// dirRootCode is the code of the browsed root directory.
const dirRootCode = "root"

// DirLoader browses a directory tree. File names may contain the code
// delimiter, so codes are built from zero-padded positions instead of
// names: the third entry of the root is "root.0002". Labels carry the
// name, with a trailing "/" for directories.
//
// A path keeps the code it was first given. Listing a directory again only
// numbers names not seen before, after the existing ones, so new entries sort
// last and entries that disappeared on disk keep their codes until the
// process restarts.
type DirLoader struct {
	root       string
	ignore     *IgnoreRules
	showHidden bool
	paths      map[string]string // code -> absolute path
	codes      map[string]string // absolute path -> code
	dirs       map[string]bool   // code -> is directory
	next       map[string]int    // directory code -> next free position
	widths     map[string]int    // directory code -> digits per position
}

// DirOption configures a DirLoader.
type DirOption func(*DirLoader)

// WithHidden includes dot files.
func WithHidden() DirOption {
	return func(d *DirLoader) { d.showHidden = true }
}

// NewDirLoader prepares browsing of root, honoring root/.gitignore.
func NewDirLoader(root string, opts ...DirOption) (*DirLoader, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &LoadError{Source: "dir", Path: root, Cause: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &LoadError{Source: "dir", Path: root, Cause: err}
	}
	if !info.IsDir() {
		return nil, &LoadError{Source: "dir", Path: root, Cause: fmt.Errorf("not a directory")}
	}
	ignore, err := ReadIgnoreRules(abs)
	if err != nil {
		return nil, &LoadError{Source: "dir", Path: root, Cause: err}
	}

	d := &DirLoader{
		root:   abs,
		ignore: ignore,
		paths:  map[string]string{dirRootCode: abs},
		codes:  map[string]string{abs: dirRootCode},
		dirs:   map[string]bool{dirRootCode: true},
		next:   make(map[string]int),
		widths: make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Initial returns the root directory and its immediate entries.
func (d *DirLoader) Initial() (navtree.Entries, error) {
	entries := navtree.Entries{dirRootCode: filepath.Base(d.root) + "/"}
	children, err := d.Load(dirRootCode)
	if err != nil {
		return nil, err
	}
	entries.Merge(children)
	return entries, nil
}

// Path returns the filesystem path behind code.
func (d *DirLoader) Path(code string) (string, bool) {
	p, ok := d.paths[code]
	return p, ok
}

// Load lists the directory behind code. Files have no children.
func (d *DirLoader) Load(code string) (navtree.Entries, error) {
	dir, ok := d.paths[code]
	if !ok || !d.dirs[code] {
		return nil, nil
	}
	listing, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Source: "dir", Path: dir, Cause: err}
	}

	visible := listing[:0]
	for _, entry := range listing {
		name := entry.Name()
		if name == ".git" || (!d.showHidden && name[0] == '.') {
			continue
		}
		rel, err := filepath.Rel(d.root, filepath.Join(dir, name))
		if err != nil || d.ignore.Match(rel, entry.IsDir()) {
			continue
		}
		visible = append(visible, entry)
	}

	// The first listing fixes the width so later codes line up with earlier ones.
	width, ok := d.widths[code]
	if !ok {
		width = max(len(strconv.Itoa(len(visible))), 4)
		d.widths[code] = width
	}
	out := make(navtree.Entries, len(visible))
	for _, entry := range visible {
		path := filepath.Join(dir, entry.Name())
		child, ok := d.codes[path]
		if !ok {
			child = fmt.Sprintf("%s%s%0*d", code, navtree.Delimiter, width, d.next[code])
			d.next[code]++
			d.codes[path] = child
			d.paths[child] = path
		}
		label := entry.Name()
		if entry.IsDir() {
			label += "/"
		}
		out[child] = label
		d.dirs[child] = entry.IsDir()
	}
	return out, nil
}
