// Package navtree implements a mouse-driven navigation tree for terminal UIs.
//
// A Tree is built from a flat mapping of hierarchical codes ("n1.n11.n111")
// to display labels. Codes are split on Delimiter to express ancestry. The
// tree renders as connector-prefixed lines, and a primary-button press on a
// label toggles that node. Opening a node that has no children asks a Loader
// for more entries, which are merged into the mapping before the hierarchy is
// rebuilt.
package navtree

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
)

// Delimiter separates the segments of a code.
const Delimiter = "."

// ErrInvalidCode is wrapped by every EntryError.
var ErrInvalidCode = errors.New("invalid code")

// EntryError describes an entry rejected at construction or merge time.
type EntryError struct {
	Code   string
	Reason string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrInvalidCode, e.Code, e.Reason)
}

func (e *EntryError) Unwrap() error {
	return ErrInvalidCode
}

// ValidateCode reports whether code can name a node.
// A code must be non-empty and every delimiter-separated segment must be
// non-empty.
func ValidateCode(code string) error {
	switch {
	case code == "":
		return &EntryError{Code: code, Reason: "empty code"}
	case strings.HasPrefix(code, Delimiter):
		return &EntryError{Code: code, Reason: "leading delimiter"}
	case strings.HasSuffix(code, Delimiter):
		return &EntryError{Code: code, Reason: "trailing delimiter"}
	case strings.Contains(code, Delimiter+Delimiter):
		return &EntryError{Code: code, Reason: "empty segment"}
	}
	return nil
}

// Entry is one code/label pair of the backing mapping.
type Entry struct {
	Code  string
	Label string
}

// Entries is the backing mapping: code -> label.
type Entries map[string]string

// MergeReport summarizes a Merge.
type MergeReport struct {
	Added    int     // codes not present before
	Updated  int     // existing codes whose label was overwritten
	Rejected []error // *EntryError for every dropped entry
}

// Changed reports whether the merge modified the mapping.
func (r MergeReport) Changed() bool {
	return r.Added > 0 || r.Updated > 0
}

// Merge copies every valid entry of other into e, overwriting labels on key
// collision. Invalid codes are dropped and reported.
func (e Entries) Merge(other Entries) MergeReport {
	var report MergeReport
	// Sorted so rejections are reported in a stable order.
	for _, entry := range other.Sorted() {
		if err := ValidateCode(entry.Code); err != nil {
			report.Rejected = append(report.Rejected, err)
			continue
		}
		old, exists := e[entry.Code]
		switch {
		case !exists:
			report.Added++
		case old != entry.Label:
			report.Updated++
		}
		e[entry.Code] = entry.Label
	}
	return report
}

// Clone returns a copy of e.
func (e Entries) Clone() Entries {
	out := make(Entries, len(e))
	for code, label := range e {
		out[code] = label
	}
	return out
}

// Sorted returns the entries in tree order. See CompareCodes.
func (e Entries) Sorted() []Entry {
	out := make([]Entry, 0, len(e))
	for code, label := range e {
		out = append(out, Entry{Code: code, Label: label})
	}
	sort.Slice(out, func(i, j int) bool {
		return CompareCodes(out[i].Code, out[j].Code) < 0
	})
	return out
}

// CompareCodes orders codes segment by segment, so that every code is
// immediately followed by its descendants. For codes whose segments only
// contain bytes sorting after the delimiter this is plain lexicographic
// order.
func CompareCodes(a, b string) int {
	for {
		aSeg, aRest, aMore := strings.Cut(a, Delimiter)
		bSeg, bRest, bMore := strings.Cut(b, Delimiter)
		if c := strings.Compare(aSeg, bSeg); c != 0 {
			return c
		}
		switch {
		case !aMore && !bMore:
			return 0
		case !aMore:
			return -1
		case !bMore:
			return 1
		}
		a, b = aRest, bRest
	}
}

// IsDescendant reports whether code lies strictly below ancestor.
func IsDescendant(code, ancestor string) bool {
	return len(code) > len(ancestor)+len(Delimiter) &&
		strings.HasPrefix(code, ancestor) &&
		strings.HasPrefix(code[len(ancestor):], Delimiter)
}

// ParentCode returns the code one level up, or "" for a top-level code.
func ParentCode(code string) string {
	i := strings.LastIndex(code, Delimiter)
	if i < 0 {
		return ""
	}
	return code[:i]
}

// Depth returns the number of ancestors a code names (0 for "a").
func Depth(code string) int {
	return strings.Count(code, Delimiter)
}

// sanitize returns a copy of in holding only valid entries.
// Rejected entries are logged.
func sanitize(in Entries) Entries {
	out := make(Entries, len(in))
	report := out.Merge(in)
	logRejected(report)
	return out
}

func logRejected(report MergeReport) {
	for _, err := range report.Rejected {
		log.Printf("warning: navtree: dropping entry: %v", err)
	}
}
