// Package config loads the navtree configuration file (.navtree/config.yaml).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	KindDemo    = "demo"
	KindFile    = "file"
	KindCatalog = "catalog"
	KindSQLite  = "sqlite"
	KindDir     = "dir"
)

// Config represents a navtree configuration file
type Config struct {
	// Title is shown in the window frame (default: "navtree")
	Title string `yaml:"title,omitempty"`

	// Source selects where entries come from
	Source SourceConfig `yaml:"source,omitempty"`

	// Forest renders every top-level code as its own root
	Forest bool `yaml:"forest,omitempty"`

	// LogFile receives warnings while the TUI runs (default: discarded)
	LogFile string `yaml:"log_file,omitempty"`

	// AltScreen runs the TUI in the alternate screen (default: true)
	AltScreen *bool `yaml:"alt_screen,omitempty"`

	// Watch reloads a file source when it changes
	Watch bool `yaml:"watch,omitempty"`

	// Theme overrides colors
	Theme ThemeConfig `yaml:"theme,omitempty"`
}

// SourceConfig describes the backing mapping and its loader.
type SourceConfig struct {
	// Kind is one of demo, file, catalog, sqlite, dir (default: demo)
	Kind string `yaml:"kind,omitempty"`

	// Path is the entry file, database or directory
	Path string `yaml:"path,omitempty"`

	// Depth is the deepest level shown before any load (catalog and sqlite)
	Depth int `yaml:"depth,omitempty"`
}

// ThemeConfig holds hex colors. Empty fields keep the defaults.
type ThemeConfig struct {
	Primary  string `yaml:"primary,omitempty"`
	Muted    string `yaml:"muted,omitempty"`
	Label    string `yaml:"label,omitempty"`
	Selected string `yaml:"selected,omitempty"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{
		Title:  "navtree",
		Source: SourceConfig{Kind: KindDemo},
	}
}

// UseAltScreen reports whether the TUI should use the alternate screen.
func (c *Config) UseAltScreen() bool {
	if c.AltScreen == nil {
		return true
	}
	return *c.AltScreen
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case KindDemo:
	case KindFile, KindCatalog, KindSQLite, KindDir:
		if c.Source.Path == "" {
			return fmt.Errorf("source: path is required for kind %q", c.Source.Kind)
		}
	default:
		return fmt.Errorf("source: unknown kind %q", c.Source.Kind)
	}
	if c.Source.Depth < 0 {
		return fmt.Errorf("source: depth must not be negative, got %d", c.Source.Depth)
	}
	if c.Watch && c.Source.Kind != KindFile {
		return fmt.Errorf("watch: only file sources can be watched, not %q", c.Source.Kind)
	}
	return nil
}

// applyDefaults fills unset fields.
func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = "navtree"
	}
	if c.Source.Kind == "" {
		c.Source.Kind = KindDemo
	}
}

// Resolve makes relative paths absolute against base and expands "~".
func (c *Config) Resolve(base string) {
	c.Source.Path = resolvePath(base, c.Source.Path)
	c.LogFile = resolvePath(base, c.LogFile)
}

func resolvePath(base, p string) string {
	if p == "" {
		return ""
	}
	p = expandHome(p)
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}

// Load reads a configuration file. Relative paths in the file are resolved
// against the project directory, the parent of .navtree/.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.Resolve(ProjectRoot(path))
	return &cfg, nil
}
