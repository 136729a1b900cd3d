package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# cadence

A terminal music player.

## Browsing

| Key | Action |
|-----|--------|
| j / k | Move down / up |
| gg / G | First / last entry |
| ctrl+d / ctrl+u | Half page down / up |
| enter | Enter directory or play file |
| backspace | Parent directory |
| ~ | Home directory |
| u / ctrl+r | Undo / redo navigation |
| o | Edit path |
| space | Mark entry |
| a | Append to play queue |
| y / m | Copy / move to library |
| d | Delete marked files |
| r | Refresh listing |

## Playback

| Key | Action |
|-----|--------|
| p | Play / pause |
| n / N | Next / previous track |
| s | Stop |

## Sources

| Key | Action |
|-----|--------|
| tab / shift+tab | Next / previous source |
| / | Search (podcasts, library) |
| : | Command mode |
| ? | This help |
| q | Quit |

## Commands

` + "`:theme <name>`" + ` switch theme, ` + "`:open <path>`" + ` jump to a
directory, ` + "`:feed <url>`" + ` load a podcast feed, ` + "`:clear`" + `
clear the play queue, ` + "`:q`" + ` quit.
`

// HelpView renders the keybinding reference in a scrollable viewport.
type HelpView struct {
	viewport viewport.Model
	visible  bool
	ready    bool
	rendered bool
}

// NewHelpView creates a hidden help view.
func NewHelpView() HelpView {
	return HelpView{}
}

// SetSize updates the view dimensions and re-renders the content.
func (hv *HelpView) SetSize(width, height int) {
	if !hv.ready {
		hv.viewport = viewport.New(width, height)
		hv.ready = true
	} else {
		hv.viewport.Width = width
		hv.viewport.Height = height
	}
	hv.rendered = false
}

// Show makes the help view visible.
func (hv *HelpView) Show() {
	hv.visible = true
	if hv.ready && !hv.rendered {
		hv.viewport.SetContent(hv.renderMarkdown())
		hv.rendered = true
	}
	hv.viewport.GotoTop()
}

// Hide closes the help view.
func (hv *HelpView) Hide() {
	hv.visible = false
}

// IsVisible reports whether the help view is shown.
func (hv *HelpView) IsVisible() bool {
	return hv.visible
}

// Update forwards messages to the viewport.
func (hv *HelpView) Update(msg tea.Msg) (*HelpView, tea.Cmd) {
	if !hv.ready || !hv.visible {
		return hv, nil
	}
	var cmd tea.Cmd
	hv.viewport, cmd = hv.viewport.Update(msg)
	return hv, cmd
}

// View renders the help view.
func (hv *HelpView) View() string {
	if !hv.visible || !hv.ready {
		return ""
	}
	return hv.viewport.View()
}

func (hv *HelpView) renderMarkdown() string {
	width := hv.viewport.Width - 2
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}

	out, err := r.Render(helpMarkdown)
	if err != nil {
		return fmt.Sprintf("%s\n\n(render error: %v)", helpMarkdown, err)
	}
	return out
}
