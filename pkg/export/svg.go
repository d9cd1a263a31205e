package export

import (
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/navtree/pkg/navtree"
)

// SVG layout in pixels per terminal cell.
const (
	svgCellWidth  = 9
	svgRowHeight  = 18
	svgPadding    = 12
	svgTitleSpace = 28
)

// WriteSVG draws the lines as monospace text, one terminal cell per
// svgCellWidth pixels. Labels of closed nodes are underlined with a box.
func WriteSVG(w io.Writer, title string, lines []navtree.Line) error {
	cols := len(title)
	for _, line := range lines {
		if n := runewidth.StringWidth(line.String()); n > cols {
			cols = n
		}
	}
	top := svgPadding
	if title != "" {
		top += svgTitleSpace
	}
	width := cols*svgCellWidth + 2*svgPadding
	height := top + len(lines)*svgRowHeight + svgPadding

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1e2030")
	if title != "" {
		canvas.Text(svgPadding, svgPadding+16, title,
			"font-family:monospace;font-size:16px;font-weight:bold;fill:#82aaff")
	}

	canvas.Gstyle("font-family:monospace;font-size:14px;white-space:pre")
	for i, line := range lines {
		baseline := top + (i+1)*svgRowHeight - 5
		prefixWidth := runewidth.StringWidth(line.Prefix)
		if line.Prefix != "" {
			canvas.Text(svgPadding, baseline, line.Prefix, "fill:#697098")
		}
		x := svgPadding + prefixWidth*svgCellWidth
		labelStyle := "fill:#bfc7d5"
		if !line.Opened && !line.Leaf {
			labelStyle = "fill:#82aaff;font-weight:bold"
			labelWidth := runewidth.StringWidth(line.Label)
			canvas.Rect(x, baseline+2, labelWidth*svgCellWidth, 1, "fill:#82aaff")
		}
		canvas.Text(x, baseline, line.Label, labelStyle)
	}
	canvas.Gend()
	canvas.End()
	return ew.err
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
