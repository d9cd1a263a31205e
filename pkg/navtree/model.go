package navtree

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ToggledMsg is emitted by Model.Update after a press toggled a node.
type ToggledMsg struct {
	ToggleResult
}

// Model is a Bubble Tea component wrapping a Tree.
//
// The tree receives screen coordinates, so a parent that draws the model
// away from the top-left corner must tell it where with Tree().SetOrigin.
type Model struct {
	tree   *Tree
	theme  Theme
	width  int
	height int
}

// NewModel returns a component for tree.
func NewModel(tree *Tree, theme Theme) Model {
	if theme.Renderer == nil {
		theme = DefaultTheme(nil)
	}
	return Model{tree: tree, theme: theme}
}

// Tree returns the wrapped tree.
func (m Model) Tree() *Tree {
	return m.tree
}

// SetWidth limits rendered lines to width cells. Zero means no limit.
// Label cells beyond the limit are not hit.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.tree.SetViewport(m.width, m.height)
}

// SetHeight limits the view to the first height lines. Zero means no limit.
// Nodes below the limit are not hit.
func (m *Model) SetHeight(height int) {
	m.height = height
	m.tree.SetViewport(m.width, m.height)
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles primary-button presses. Every other message is ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return m, nil
	}
	result, handled := m.HandleMouse(mouse)
	if !handled {
		return m, nil
	}
	return m, func() tea.Msg { return ToggledMsg{result} }
}

// HandleMouse applies a mouse event to the tree and reports whether it was
// handled. Only a left-button press on a label is handled.
func (m Model) HandleMouse(msg tea.MouseMsg) (ToggleResult, bool) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		// The tree does not scroll; wheel events are left to the parent.
		return ToggleResult{}, false
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return ToggleResult{}, false
		}
		return m.tree.Press(msg.X, msg.Y)
	}
	return ToggleResult{}, false
}

// View renders the tree. It also lays out the label boxes that the next
// press is tested against.
func (m Model) View() string {
	lines := m.tree.Render()
	if m.height > 0 && len(lines) > m.height {
		lines = lines[:m.height]
	}
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		label := m.theme.Label
		if !line.Opened && !line.Leaf {
			label = m.theme.Collapsed
		}
		row := m.theme.Connector.Render(line.Prefix) + label.Render(line.Label)
		if m.width > 0 {
			row = m.theme.Renderer.NewStyle().MaxWidth(m.width).Render(row)
		}
		sb.WriteString(row)
	}
	return sb.String()
}
