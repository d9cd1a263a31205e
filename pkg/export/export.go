// Package export writes a rendered navtree to text, Markdown, JSON or SVG.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/navtree/pkg/navtree"
)

// Format of an export file.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatSVG      Format = "svg"
)

// FormatFor picks the export format from the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", "":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".json":
		return FormatJSON, nil
	case ".svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unsupported export extension %q", filepath.Ext(path))
}

// Write renders lines to w in the given format.
func Write(w io.Writer, format Format, title string, lines []navtree.Line) error {
	switch format {
	case FormatText:
		return WriteText(w, lines)
	case FormatMarkdown:
		return WriteMarkdown(w, title, lines)
	case FormatJSON:
		return WriteJSON(w, lines)
	case FormatSVG:
		return WriteSVG(w, title, lines)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// ExportFile writes lines to path, choosing the format by extension.
func ExportFile(path, title string, lines []navtree.Line) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := Write(f, format, title, lines); err != nil {
		f.Close()
		return fmt.Errorf("write %s export: %w", format, err)
	}
	return f.Close()
}

// WriteText writes the lines exactly as the terminal shows them.
func WriteText(w io.Writer, lines []navtree.Line) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteMarkdown writes a nested bullet list, one item per visible node.
// Closed nodes that hide children are marked with a trailing "(+)".
func WriteMarkdown(w io.Writer, title string, lines []navtree.Line) error {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	}
	for _, line := range lines {
		sb.WriteString(strings.Repeat("  ", line.Depth))
		sb.WriteString(fmt.Sprintf("- %s `%s`", escapeMarkdown(line.Label), line.Code))
		if !line.Opened && !line.Leaf {
			sb.WriteString(" (+)")
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// JSONLine is the JSON form of one rendered line.
type JSONLine struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Prefix string `json:"prefix"`
	Depth  int    `json:"depth"`
	Opened bool   `json:"opened"`
	Leaf   bool   `json:"leaf"`
	Box    [4]int `json:"box"` // min_x, max_x, min_y, max_y
}

// WriteJSON writes the lines as an indented JSON array.
func WriteJSON(w io.Writer, lines []navtree.Line) error {
	out := make([]JSONLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, JSONLine{
			Code:   line.Code,
			Label:  line.Label,
			Prefix: line.Prefix,
			Depth:  line.Depth,
			Opened: line.Opened,
			Leaf:   line.Leaf,
			Box:    [4]int{line.Box.MinX, line.Box.MaxX, line.Box.MinY, line.Box.MaxY},
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
