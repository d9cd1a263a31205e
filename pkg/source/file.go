// Package source provides backing mappings and lazy loaders for navtree:
// entry files, an in-memory catalog, a SQLite store, a directory browser and
// a file watcher for live reload.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/navtree/pkg/navtree"
)

// LoadError wraps a failure of a named source.
type LoadError struct {
	Source string // "file", "sqlite", "dir", ...
	Path   string
	Cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s source %s: %v", e.Source, e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Format of an entry file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the file format from the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported entry file extension %q", filepath.Ext(path))
}

// ReadFile reads a flat code -> label mapping from a JSON or YAML file.
//
// Example (YAML):
//
//	n1: desc1
//	n1.n11: desc2
//	n1.n11.n111: desc3
func ReadFile(path string) (navtree.Entries, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, &LoadError{Source: "file", Path: path, Cause: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: "file", Path: path, Cause: err}
	}
	entries, err := Decode(data, format)
	if err != nil {
		return nil, &LoadError{Source: "file", Path: path, Cause: err}
	}
	return entries, nil
}

// Decode parses entry file content.
func Decode(data []byte, format Format) (navtree.Entries, error) {
	entries := navtree.Entries{}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &entries)
	case FormatYAML:
		err = yaml.Unmarshal(data, &entries)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s entries: %w", format, err)
	}
	return entries, nil
}

// WriteFile stores entries as JSON or YAML, chosen by extension.
func WriteFile(path string, entries navtree.Entries) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	var data []byte
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(entries, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(entries)
	}
	if err != nil {
		return fmt.Errorf("encode %s entries: %w", format, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
