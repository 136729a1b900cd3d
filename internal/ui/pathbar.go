package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jansuchomel/cadence/internal/theme"
)

// PathBar shows the current directory and doubles as a path input.
type PathBar struct {
	input  textinput.Model
	path   string
	active bool
	busy   bool
	width  int
}

// NewPathBar creates a new path bar.
func NewPathBar() PathBar {
	ti := textinput.New()
	ti.Placeholder = "Enter directory..."
	ti.CharLimit = 1024
	ti.Width = 60

	return PathBar{
		input: ti,
	}
}

// SetWidth updates the bar width.
func (pb *PathBar) SetWidth(w int) {
	pb.width = w
	pb.input.Width = w - 8 // account for prompt and padding
}

// SetPath updates the displayed directory.
func (pb *PathBar) SetPath(path string) {
	pb.path = path
}

// Path returns the displayed directory.
func (pb *PathBar) Path() string {
	return pb.path
}

// SetBusy toggles the busy indicator.
func (pb *PathBar) SetBusy(b bool) {
	pb.busy = b
}

// Focus switches the bar into input mode, pre-filled with the current path.
func (pb *PathBar) Focus() tea.Cmd {
	pb.active = true
	pb.input.SetValue(pb.path)
	pb.input.CursorEnd()
	return pb.input.Focus()
}

// Blur leaves input mode.
func (pb *PathBar) Blur() {
	pb.active = false
	pb.input.Blur()
}

// IsActive reports whether the bar is in input mode.
func (pb *PathBar) IsActive() bool {
	return pb.active
}

// Value returns the typed path.
func (pb *PathBar) Value() string {
	return pb.input.Value()
}

// Reset clears the input.
func (pb *PathBar) Reset() {
	pb.input.Reset()
}

// Update handles messages while in input mode.
func (pb *PathBar) Update(msg tea.Msg) (*PathBar, tea.Cmd) {
	if !pb.active {
		return pb, nil
	}
	var cmd tea.Cmd
	pb.input, cmd = pb.input.Update(msg)
	return pb, cmd
}

// View renders the path bar.
func (pb *PathBar) View() string {
	t := theme.Current

	var barStyle lipgloss.Style
	if pb.active {
		barStyle = lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1).
			Width(pb.width - 2)
	} else {
		barStyle = lipgloss.NewStyle().
			Foreground(t.TextDim).
			Background(t.Surface).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1).
			Width(pb.width - 2)
	}

	promptStyle := lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	prompt := ""
	if pb.busy {
		prompt = ""
	}

	if pb.active {
		return barStyle.Render(promptStyle.Render(prompt) + " " + pb.input.View())
	}
	return barStyle.Render(promptStyle.Render(prompt) + " " + pb.path)
}
