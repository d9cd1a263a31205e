package navtree

import (
	"fmt"
	"log"
	"runtime/debug"
)

// Loader fetches the children of a node that is being opened while it has
// none. It is called synchronously from the press handler, so a slow
// loader stalls the caller's event loop.
//
// Returned entries are merged into the backing mapping. They are not
// required to be direct children of code. An empty result means nothing
// was found; the node is opened either way.
type Loader interface {
	Load(code string) (Entries, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(code string) (Entries, error)

// Load calls f(code).
func (f LoaderFunc) Load(code string) (Entries, error) {
	return f(code)
}

// safeLoad calls loader and converts any failure, panics included, into an
// empty result. The error is returned for reporting only.
func safeLoad(loader Loader, code string) (entries Entries, err error) {
	if loader == nil {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			entries = nil
			err = fmt.Errorf("loader panic for %q: %v\n%s", code, r, debug.Stack())
		}
	}()
	entries, err = loader.Load(code)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", code, err)
	}
	return entries, nil
}

func logLoadError(err error) {
	log.Printf("warning: navtree: %v", err)
}
