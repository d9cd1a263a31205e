package navtree

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func newTestModel(loader Loader) Model {
	tree := New(Entries{"a": "A", "a.b": "B", "a.c": "C"}, loader)
	return NewModel(tree, DefaultTheme(lipgloss.NewRenderer(nil)))
}

func leftPress(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

// TestModelView verifies the view is the plain lines without a color profile
func TestModelView(t *testing.T) {
	m := newTestModel(nil)
	want := strings.Join([]string{"└─ A", "   ├─ B", "   └─ C"}, "\n")
	if got := m.View(); got != want {
		t.Errorf("view mismatch\n got: %q\nwant: %q", got, want)
	}
}

// TestModelLeftPressToggles verifies a left press emits a ToggledMsg
func TestModelLeftPressToggles(t *testing.T) {
	m := newTestModel(nil)
	m.View()

	m, cmd := m.Update(leftPress(3, 0))
	if cmd == nil {
		t.Fatal("expected a command after toggling")
	}
	msg, ok := cmd().(ToggledMsg)
	if !ok {
		t.Fatalf("expected ToggledMsg, got %T", cmd())
	}
	if msg.Code != "a" || msg.Opened {
		t.Errorf("unexpected toggle %+v", msg.ToggleResult)
	}
	if got := m.View(); got != "└─ A" {
		t.Errorf("expected collapsed view, got %q", got)
	}
}

// TestModelIgnoresOtherInput verifies wheel, release, other buttons and keys are unhandled
func TestModelIgnoresOtherInput(t *testing.T) {
	loader := &countingLoader{}
	m := newTestModel(loader)
	before := m.View()

	msgs := []tea.Msg{
		tea.MouseMsg{X: 3, Y: 0, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress},
		tea.MouseMsg{X: 3, Y: 0, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress},
		tea.MouseMsg{X: 3, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease},
		tea.MouseMsg{X: 3, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion},
		tea.MouseMsg{X: 3, Y: 0, Button: tea.MouseButtonRight, Action: tea.MouseActionPress},
		tea.MouseMsg{X: 3, Y: 0, Button: tea.MouseButtonMiddle, Action: tea.MouseActionPress},
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")},
		tea.WindowSizeMsg{Width: 80, Height: 24},
	}
	for _, msg := range msgs {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		if cmd != nil {
			t.Errorf("%T %+v should produce no command", msg, msg)
		}
	}
	if got := m.View(); got != before {
		t.Errorf("view changed\nbefore: %q\n after: %q", before, got)
	}
	if len(loader.calls) != 0 {
		t.Errorf("loader called: %v", loader.calls)
	}
}

// TestModelMissIsUnhandled verifies a press outside every label is left to the parent
func TestModelMissIsUnhandled(t *testing.T) {
	m := newTestModel(nil)
	m.View()
	if _, handled := m.HandleMouse(leftPress(40, 10)); handled {
		t.Error("press outside the tree should be unhandled")
	}
}

// TestModelWidthClips verifies SetWidth limits line width
func TestModelWidthClips(t *testing.T) {
	tree := New(Entries{"a": "a very long label"}, nil)
	m := NewModel(tree, DefaultTheme(lipgloss.NewRenderer(nil)))
	m.SetWidth(8)
	if got := lipgloss.Width(m.View()); got > 8 {
		t.Errorf("expected width <= 8, got %d (%q)", got, m.View())
	}
}

// TestModelWidthClipsBoxes verifies label cells cut off by SetWidth are not hit
func TestModelWidthClipsBoxes(t *testing.T) {
	tree := New(Entries{"a": "abcdefghij"}, nil)
	m := NewModel(tree, DefaultTheme(lipgloss.NewRenderer(nil)))
	m.SetWidth(5)
	if got := m.View(); got != "└─ ab" {
		t.Fatalf("view = %q", got)
	}
	if n := tree.NodeAt(4, 0); n == nil || n.Code != "a" {
		t.Errorf("NodeAt(4, 0) = %v, want a", n)
	}
	if n := tree.NodeAt(5, 0); n != nil {
		t.Errorf("NodeAt(5, 0) = %q, want nil past the edge", n.Code)
	}

	m.SetWidth(3)
	m.View()
	if n := tree.NodeAt(3, 0); n != nil {
		t.Errorf("NodeAt(3, 0) = %q, want nil for a fully hidden label", n.Code)
	}
}

// TestModelHeightClips verifies SetHeight drops trailing lines and their boxes
func TestModelHeightClips(t *testing.T) {
	m := newTestModel(nil)
	m.SetHeight(2)
	want := strings.Join([]string{"└─ A", "   ├─ B"}, "\n")
	if got := m.View(); got != want {
		t.Fatalf("view mismatch\n got: %q\nwant: %q", got, want)
	}
	if n := m.Tree().NodeAt(6, 1); n == nil || n.Code != "a.b" {
		t.Errorf("NodeAt(6, 1) = %v, want a.b", n)
	}
	if _, handled := m.HandleMouse(leftPress(6, 2)); handled {
		t.Error("press on a line below the view should be unhandled")
	}
	if !m.Tree().Node("a").Opened {
		t.Error("a should stay opened")
	}
}

// TestNewModelZeroTheme verifies a zero theme falls back to the default
func TestNewModelZeroTheme(t *testing.T) {
	m := NewModel(New(Entries{"a": "A"}, nil), Theme{})
	if m.View() == "" {
		t.Error("expected output with the default theme")
	}
}
