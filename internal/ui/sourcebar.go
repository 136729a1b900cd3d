package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jansuchomel/cadence/internal/theme"
)

// Source identifies one of the fixed application views.
type Source int

const (
	SourceFiles Source = iota
	SourceLibrary
	SourcePodcasts
)

var sourceNames = map[Source]string{
	SourceFiles:    "Files",
	SourceLibrary:  "Library",
	SourcePodcasts: "Podcasts",
}

// SourceBar renders the switcher between the application's sources.
type SourceBar struct {
	sources []Source
	active  int
	width   int
}

// NewSourceBar creates the source bar with the fixed source set.
func NewSourceBar() SourceBar {
	return SourceBar{
		sources: []Source{SourceFiles, SourceLibrary, SourcePodcasts},
	}
}

// SetWidth sets the bar width.
func (sb *SourceBar) SetWidth(w int) {
	sb.width = w
}

// Active returns the active source.
func (sb *SourceBar) Active() Source {
	return sb.sources[sb.active]
}

// Select switches to the given source.
func (sb *SourceBar) Select(s Source) {
	for i, src := range sb.sources {
		if src == s {
			sb.active = i
			return
		}
	}
}

// Next switches to the following source.
func (sb *SourceBar) Next() {
	sb.active = (sb.active + 1) % len(sb.sources)
}

// Prev switches to the preceding source.
func (sb *SourceBar) Prev() {
	sb.active--
	if sb.active < 0 {
		sb.active = len(sb.sources) - 1
	}
}

// View renders the source bar.
func (sb *SourceBar) View() string {
	t := theme.Current

	activeStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.SourceActive).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.SourceInactive).
		Padding(0, 1)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	var result string
	for i, src := range sb.sources {
		label := fmt.Sprintf(" %s ", sourceNames[src])
		if i == sb.active {
			result += activeStyle.Render(label)
		} else {
			result += inactiveStyle.Render(label)
		}
		if i < len(sb.sources)-1 {
			result += separatorStyle.Render("|")
		}
	}

	barStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(sb.width)

	return barStyle.Render(result)
}
