package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Dir is the per-project configuration directory.
const Dir = ".navtree"

// FileName is the configuration file inside Dir.
const FileName = "config.yaml"

// FindConfig walks up from dir looking for .navtree/config.yaml. An empty
// dir means the working directory. The walk stops at the home directory.
func FindConfig(dir string) (string, bool) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", false
		}
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	home, _ := os.UserHomeDir()

	for {
		candidate := filepath.Join(dir, Dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		// Don't go above home directory
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}

// ProjectRoot returns the directory that holds .navtree/ for a config path.
func ProjectRoot(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == Dir {
		return filepath.Dir(dir)
	}
	return dir
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
