package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/navtree/pkg/config"
	"github.com/vanderheijden86/navtree/pkg/navtree"
)

func newTestApp(t *testing.T, opts ...AppOption) App {
	t.Helper()
	tree := navtree.New(navtree.Entries{"a": "A", "a.b": "B", "a.c": "C"}, nil)
	return NewApp(tree, "Test", DefaultStyles(lipgloss.NewRenderer(nil)), opts...)
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return app, cmd
}

func press(button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: button, Action: tea.MouseActionPress}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// TestAppViewLayout draws the tree inside the frame below the title
func TestAppViewLayout(t *testing.T) {
	a := newTestApp(t)
	rows := strings.Split(a.View(), "\n")
	if len(rows) < 6 {
		t.Fatalf("too few rows:\n%s", a.View())
	}
	if !strings.HasPrefix(rows[0], "╭") {
		t.Errorf("row 0 = %q, want top border", rows[0])
	}
	if !strings.HasPrefix(rows[1], "│ Test") {
		t.Errorf("row 1 = %q, want title", rows[1])
	}
	for i, want := range []string{"└─ A", "   ├─ B", "   └─ C"} {
		if !strings.HasPrefix(rows[2+i], "│ "+want) {
			t.Errorf("row %d = %q, want tree line %q", 2+i, rows[2+i], want)
		}
	}
	if got := a.Tree().Origin(); got != (navtree.Point{X: 2, Y: 2}) {
		t.Errorf("tree origin = %+v", got)
	}
}

// TestAppLeftPressTogglesAtScreenPosition maps screen cells to labels
func TestAppLeftPressTogglesAtScreenPosition(t *testing.T) {
	a := newTestApp(t)
	a.View()

	// "A" sits after the frame (2 cells) and the root marker (3 cells).
	a, cmd := update(t, a, press(tea.MouseButtonLeft, 5, 2))
	if cmd == nil {
		t.Fatal("expected a toggle command")
	}
	a, _ = update(t, a, cmd())
	if a.Status() != "closed a" {
		t.Errorf("status = %q", a.Status())
	}
	if a.Tree().Node("a").Opened {
		t.Error("a should be closed")
	}

	// The frame column itself is not part of any label.
	if _, cmd := update(t, a, press(tea.MouseButtonLeft, 0, 2)); cmd != nil {
		t.Error("press on the border should be ignored")
	}
}

// TestAppRightClickCopiesCode copies the code under the pointer
func TestAppRightClickCopiesCode(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	a := newTestApp(t)
	a.View()

	// "B" is on row 3 after "│ " and "   ├─ ".
	a, cmd := update(t, a, press(tea.MouseButtonRight, 8, 3))
	if cmd == nil {
		t.Fatal("expected a copy command")
	}
	a, _ = update(t, a, cmd())
	if copied != "a.b" {
		t.Errorf("copied %q, want a.b", copied)
	}
	if a.Status() != "copied a.b" {
		t.Errorf("status = %q", a.Status())
	}
	if !a.Tree().Node("a").Opened {
		t.Error("right click must not toggle")
	}
}

// TestAppCopyFailure reports clipboard errors in the status line
func TestAppCopyFailure(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { writeClipboard = orig })

	a := newTestApp(t)
	a.View()
	a, cmd := update(t, a, press(tea.MouseButtonRight, 5, 2))
	a, _ = update(t, a, cmd())
	if !strings.Contains(a.Status(), "no clipboard") {
		t.Errorf("status = %q", a.Status())
	}
}

// TestAppReloadMsgMerges applies watcher updates
func TestAppReloadMsgMerges(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, ReloadMsg{Entries: navtree.Entries{"a.c": "C2", "a.d": "D", "..": "bad"}})

	if a.Tree().Node("a.d") == nil {
		t.Error("a.d not merged")
	}
	if a.Tree().Node("a.c").Label != "C2" {
		t.Error("a.c label not updated")
	}
	if a.Status() != "reloaded: 1 added, 1 updated, 1 rejected" {
		t.Errorf("status = %q", a.Status())
	}

	a, _ = update(t, a, ReloadMsg{Err: errors.New("disk gone")})
	if a.Status() != "reload failed: disk gone" {
		t.Errorf("status = %q", a.Status())
	}
}

// TestAppReloadKey runs the reload function
func TestAppReloadKey(t *testing.T) {
	calls := 0
	a := newTestApp(t, WithReload(func() (navtree.Entries, error) {
		calls++
		return navtree.Entries{"a.z": "Z"}, nil
	}))

	a, cmd := update(t, a, runeKey("r"))
	if cmd == nil {
		t.Fatal("expected reload command")
	}
	a, _ = update(t, a, cmd())
	if calls != 1 || a.Tree().Node("a.z") == nil {
		t.Errorf("reload not applied: calls=%d", calls)
	}
}

// TestAppDisabledKeys ignores reload and export when not configured
func TestAppDisabledKeys(t *testing.T) {
	a := newTestApp(t)
	for _, k := range []string{"r", "e"} {
		if _, cmd := update(t, a, runeKey(k)); cmd != nil {
			t.Errorf("key %q should be disabled", k)
		}
	}
}

// TestAppExportKey writes the current view
func TestAppExportKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.txt")
	a := newTestApp(t, WithExportPath(path))

	a, cmd := update(t, a, runeKey("e"))
	if cmd == nil {
		t.Fatal("expected export command")
	}
	a, _ = update(t, a, cmd())
	if a.Status() != "exported to "+path {
		t.Errorf("status = %q", a.Status())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "└─ A\n   ├─ B\n   └─ C\n" {
		t.Errorf("export = %q", data)
	}
}

// TestAppQuitAndHelp handles the window keys
func TestAppQuitAndHelp(t *testing.T) {
	a := newTestApp(t)

	_, cmd := update(t, a, runeKey("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}

	_, cmd = update(t, a, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c should quit")
	}

	short := a.View()
	a, _ = update(t, a, runeKey("?"))
	if full := a.View(); !strings.Contains(full, "right-click") || strings.Contains(short, "right-click") {
		t.Error("? should expand the help view with mouse gestures")
	}
}

// TestAppWindowSize clips tree lines to the frame
func TestAppWindowSize(t *testing.T) {
	tree := navtree.New(navtree.Entries{"a": strings.Repeat("x", 50)}, nil)
	a := NewApp(tree, "T", DefaultStyles(lipgloss.NewRenderer(nil)))
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 20, Height: 10})

	for i, row := range strings.Split(a.View(), "\n") {
		if w := lipgloss.Width(row); w > 20 {
			t.Errorf("row %d is %d cells wide: %q", i, w, row)
		}
	}
}

// TestAppFitsShortTerminal keeps every drawn label where a press lands
func TestAppFitsShortTerminal(t *testing.T) {
	entries := navtree.Entries{"r": "R"}
	for i := 0; i < 30; i++ {
		entries[fmt.Sprintf("r.c%02d", i)] = fmt.Sprintf("L%02d", i)
	}
	a := NewApp(navtree.New(entries, nil), "Tall", DefaultStyles(lipgloss.NewRenderer(nil)))
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 80, Height: 20})

	rows := strings.Split(a.View(), "\n")
	if len(rows) > 20 {
		t.Fatalf("view has %d rows on a 20-row terminal", len(rows))
	}
	if !strings.HasPrefix(rows[treeOriginY], "│ └─ R") {
		t.Errorf("row %d = %q, want the first tree line", treeOriginY, rows[treeOriginY])
	}

	var last navtree.Line
	visible := 0
	for _, line := range a.Tree().Render() {
		if line.Box.Empty() {
			continue
		}
		row := []rune(rows[line.Box.MinY])
		if got := string(row[line.Box.MinX : line.Box.MinX+len(line.Label)]); got != line.Label {
			t.Errorf("box of %s covers %q, want %q", line.Code, got, line.Label)
		}
		last = line
		visible++
	}
	// Border and title rows, bottom border and help line.
	if visible != 16 {
		t.Errorf("%d lines are hittable, want 16", visible)
	}

	// The position the next line would have is the bottom border now.
	if _, cmd := update(t, a, press(tea.MouseButtonLeft, 8, last.Box.MinY+1)); cmd != nil {
		t.Error("press below the last drawn line should be ignored")
	}

	a, cmd := update(t, a, press(tea.MouseButtonLeft, last.Box.MinX, last.Box.MinY))
	if cmd == nil {
		t.Fatal("expected a toggle command")
	}
	msg, ok := cmd().(navtree.ToggledMsg)
	if !ok || msg.Code != last.Code {
		t.Errorf("press on %s toggled %+v", last.Code, msg)
	}
	a, _ = update(t, a, msg)
	if n := len(strings.Split(a.View(), "\n")); n > 20 {
		t.Errorf("view has %d rows with a status line", n)
	}
}

// TestAppNarrowTitle keeps a long title on one row
func TestAppNarrowTitle(t *testing.T) {
	tree := navtree.New(navtree.Entries{"a": "A"}, nil)
	a := NewApp(tree, "A very long window title", DefaultStyles(lipgloss.NewRenderer(nil)))
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 12, Height: 10})

	rows := strings.Split(a.View(), "\n")
	if !strings.HasPrefix(rows[1], "│ A very") {
		t.Errorf("row 1 = %q, want the cut title", rows[1])
	}
	if !strings.HasPrefix(rows[treeOriginY], "│ └─ A") {
		t.Errorf("row %d = %q, want the tree line", treeOriginY, rows[treeOriginY])
	}
	if n := a.Tree().NodeAt(5, treeOriginY); n == nil || n.Code != "a" {
		t.Errorf("NodeAt(5, %d) = %v, want a", treeOriginY, n)
	}
}

// TestDescribeToggle formats toggle results
func TestDescribeToggle(t *testing.T) {
	tests := []struct {
		r    navtree.ToggleResult
		want string
	}{
		{navtree.ToggleResult{Code: "a"}, "closed a"},
		{navtree.ToggleResult{Code: "a", Opened: true, Loaded: true}, "opened a"},
		{navtree.ToggleResult{Code: "a", Opened: true, Loaded: true, Added: 2}, "opened a (+2)"},
		{navtree.ToggleResult{Code: "a", Opened: true, Loaded: true, LoadFailed: true}, "opened a (load failed)"},
	}
	for _, tt := range tests {
		if got := describeToggle(tt.r); got != tt.want {
			t.Errorf("describeToggle(%+v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

// TestPaletteOverrides applies configured colors
func TestPaletteOverrides(t *testing.T) {
	p := Palette(config.ThemeConfig{Primary: "#010203"})
	if p.Primary.Dark != "#010203" || p.Primary.Light != "#010203" {
		t.Errorf("primary = %+v", p.Primary)
	}
	if p.Muted != navtree.DefaultPalette().Muted {
		t.Error("muted should keep the default")
	}
}
