package source

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IgnoreRules is a small subset of .gitignore matching: glob patterns
// matched against the entry name or its slash-separated path relative to
// the root, a leading "/" anchoring to the root and a trailing "/" limiting
// the rule to directories. Negation ("!") is not supported and such lines
// are skipped.
type IgnoreRules struct {
	rules []ignoreRule
}

type ignoreRule struct {
	pattern  string
	anchored bool
	dirOnly  bool
}

// ReadIgnoreRules parses the .gitignore in dir. A missing file yields an
// empty rule set.
func ReadIgnoreRules(dir string) (*IgnoreRules, error) {
	file, err := os.Open(filepath.Join(dir, ".gitignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return &IgnoreRules{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var rules IgnoreRules
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		rules.Add(scanner.Text())
	}
	return &rules, scanner.Err()
}

// Add parses one .gitignore line.
func (r *IgnoreRules) Add(line string) {
	line = strings.TrimSpace(line)
	// Skip empty lines, comments and negations
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
		return
	}
	rule := ignoreRule{}
	if strings.HasSuffix(line, "/") {
		rule.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		rule.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	// "dir/**" hides the directory itself while browsing.
	line = strings.TrimSuffix(line, "/**")
	if line == "" {
		return
	}
	rule.pattern = line
	r.rules = append(r.rules, rule)
}

// Len returns the number of rules.
func (r *IgnoreRules) Len() int {
	return len(r.rules)
}

// Match reports whether rel (slash-separated, relative to the root) is
// ignored.
func (r *IgnoreRules) Match(rel string, isDir bool) bool {
	rel = filepath.ToSlash(rel)
	name := rel[strings.LastIndex(rel, "/")+1:]
	for _, rule := range r.rules {
		if rule.dirOnly && !isDir {
			continue
		}
		if matchGlob(rule.pattern, rel) {
			return true
		}
		// Unanchored patterns without a slash match at any depth.
		if !rule.anchored && !strings.Contains(rule.pattern, "/") && matchGlob(rule.pattern, name) {
			return true
		}
	}
	return false
}

func matchGlob(pattern, s string) bool {
	ok, err := path.Match(pattern, s)
	return err == nil && ok
}
