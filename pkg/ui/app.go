// Package ui hosts the navigation tree in a titled terminal window with a
// status line, key help, clipboard copy, export and reload.
package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/navtree/pkg/export"
	"github.com/vanderheijden86/navtree/pkg/navtree"
)

// Screen cell of the first tree line: inside the rounded border and its
// one-cell padding, below the title row.
const (
	treeOriginX = 2
	treeOriginY = 2
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// ReloadMsg carries a fresh mapping from the data source. The CLI sends it
// from the file watcher; the reload key produces it too.
type ReloadMsg struct {
	Entries navtree.Entries
	Err     error
}

type copiedMsg struct {
	code string
	err  error
}

type exportedMsg struct {
	path string
	err  error
}

// App is the top-level Bubble Tea model.
type App struct {
	tree   navtree.Model
	title  string
	keys   KeyMap
	help   help.Model
	styles Styles

	reload     func() (navtree.Entries, error)
	exportPath string

	width  int
	height int
	status string
}

// AppOption configures an App.
type AppOption func(*App)

// WithReload enables the reload key. fn runs off the event loop.
func WithReload(fn func() (navtree.Entries, error)) AppOption {
	return func(a *App) { a.reload = fn }
}

// WithExportPath enables the export key, writing to path.
func WithExportPath(path string) AppOption {
	return func(a *App) { a.exportPath = path }
}

// NewApp wraps tree in a window titled title. The tree origin is moved to
// where the window draws it.
func NewApp(tree *navtree.Tree, title string, styles Styles, opts ...AppOption) App {
	tree.SetOrigin(treeOriginX, treeOriginY)
	if styles.Tree.Renderer == nil {
		styles = DefaultStyles(nil)
	}
	a := App{
		tree:   navtree.NewModel(tree, styles.Tree),
		title:  title,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: styles,
	}
	for _, opt := range opts {
		opt(&a)
	}
	a.keys.Reload.SetEnabled(a.reload != nil)
	a.keys.Export.SetEnabled(a.exportPath != "")
	return a
}

// Tree returns the hosted tree.
func (a App) Tree() *navtree.Tree {
	return a.tree.Tree()
}

// Status returns the current status line text.
func (a App) Status() string {
	return a.status
}

func (a App) Init() tea.Cmd {
	return tea.SetWindowTitle(a.title)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a, cmd := a.update(msg)
	a.fitTree()
	return a, cmd
}

func (a App) update(msg tea.Msg) (App, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.tree.SetWidth(max(msg.Width-2*treeOriginX, 0))
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
		case key.Matches(msg, a.keys.Reload):
			a.status = "reloading..."
			return a, reloadCmd(a.reload)
		case key.Matches(msg, a.keys.Export):
			return a, exportCmd(a.exportPath, a.title, a.tree.Tree().Render())
		}
		return a, nil

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonRight && msg.Action == tea.MouseActionPress {
			if n := a.tree.Tree().NodeAt(msg.X, msg.Y); n != nil {
				return a, copyCmd(n.Code)
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.tree, cmd = a.tree.Update(msg)
		return a, cmd

	case navtree.ToggledMsg:
		a.status = describeToggle(msg.ToggleResult)
		return a, nil

	case ReloadMsg:
		if msg.Err != nil {
			a.status = fmt.Sprintf("reload failed: %v", msg.Err)
			return a, nil
		}
		report := a.tree.Tree().Merge(msg.Entries)
		a.status = fmt.Sprintf("reloaded: %d added, %d updated", report.Added, report.Updated)
		if n := len(report.Rejected); n > 0 {
			a.status += fmt.Sprintf(", %d rejected", n)
		}
		return a, nil

	case copiedMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			a.status = fmt.Sprintf("copied %s", msg.code)
		}
		return a, nil

	case exportedMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("export failed: %v", msg.err)
		} else {
			a.status = fmt.Sprintf("exported to %s", msg.path)
		}
		return a, nil
	}
	return a, nil
}

func describeToggle(r navtree.ToggleResult) string {
	if !r.Opened {
		return fmt.Sprintf("closed %s", r.Code)
	}
	switch {
	case r.LoadFailed:
		return fmt.Sprintf("opened %s (load failed)", r.Code)
	case r.Added > 0:
		return fmt.Sprintf("opened %s (+%d)", r.Code, r.Added)
	}
	return fmt.Sprintf("opened %s", r.Code)
}

func reloadCmd(fn func() (navtree.Entries, error)) tea.Cmd {
	return func() tea.Msg {
		entries, err := fn()
		return ReloadMsg{Entries: entries, Err: err}
	}
}

func exportCmd(path, title string, lines []navtree.Line) tea.Cmd {
	return func() tea.Msg {
		return exportedMsg{path: path, err: export.ExportFile(path, title, lines)}
	}
}

func copyCmd(code string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{code: code, err: writeClipboard(code)}
	}
}

// fitTree limits the tree to the rows left between the frame and the
// footer, so the window never grows past the terminal and the first tree
// line stays at the tree origin.
func (a *App) fitTree() {
	if a.height <= 0 {
		return
	}
	// Top border and title above the tree, bottom border below it.
	rows := a.height - treeOriginY - 1 - lipgloss.Height(a.footer())
	a.tree.SetHeight(max(rows, 1))
}

func (a App) footer() string {
	help := a.styles.Help.Render(a.help.View(a.keys))
	if a.status == "" {
		return help
	}
	return a.styles.Status.Render(a.status) + "\n" + help
}

// View renders the window. Rendering the tree also lays out the label boxes
// used by the next mouse event.
func (a App) View() string {
	frame := a.styles.Frame
	title := a.styles.Title
	if a.width > 0 {
		frame = frame.Width(max(a.width-2, 0))
		title = title.MaxWidth(max(a.width-2*treeOriginX, 1))
	}
	body := title.Render(a.title) + "\n" + a.tree.View()
	return lipgloss.JoinVertical(lipgloss.Left, frame.Render(body), a.footer())
}
