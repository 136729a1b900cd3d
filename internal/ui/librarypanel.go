package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jansuchomel/cadence/internal/library"
	"github.com/jansuchomel/cadence/internal/theme"
)

// LibraryPanel displays the track library with an optional filter.
type LibraryPanel struct {
	tracks []library.Track
	filter string
	cursor int
	offset int
	width  int
	height int
}

// NewLibraryPanel creates an empty library panel.
func NewLibraryPanel() LibraryPanel {
	return LibraryPanel{}
}

// SetTracks replaces the displayed tracks.
func (lp *LibraryPanel) SetTracks(tracks []library.Track, filter string) {
	lp.tracks = tracks
	lp.filter = filter
	lp.cursor = 0
	lp.offset = 0
}

// SetSize updates the panel dimensions.
func (lp *LibraryPanel) SetSize(w, h int) {
	lp.width = w
	lp.height = h
}

// Selected returns the track under the cursor, or nil if empty.
func (lp *LibraryPanel) Selected() *library.Track {
	if len(lp.tracks) == 0 || lp.cursor < 0 || lp.cursor >= len(lp.tracks) {
		return nil
	}
	t := lp.tracks[lp.cursor]
	return &t
}

// Count returns the number of displayed tracks.
func (lp *LibraryPanel) Count() int {
	return len(lp.tracks)
}

// CursorUp moves the cursor up one track.
func (lp *LibraryPanel) CursorUp() {
	if lp.cursor > 0 {
		lp.cursor--
		lp.ensureVisible()
	}
}

// CursorDown moves the cursor down one track.
func (lp *LibraryPanel) CursorDown() {
	if lp.cursor < len(lp.tracks)-1 {
		lp.cursor++
		lp.ensureVisible()
	}
}

// GotoTop moves to the first track.
func (lp *LibraryPanel) GotoTop() {
	lp.cursor = 0
	lp.offset = 0
}

// GotoBottom moves to the last track.
func (lp *LibraryPanel) GotoBottom() {
	if len(lp.tracks) > 0 {
		lp.cursor = len(lp.tracks) - 1
		lp.ensureVisible()
	}
}

func (lp *LibraryPanel) visibleCount() int {
	available := lp.height - 2
	if available < 1 {
		return 1
	}
	return available
}

func (lp *LibraryPanel) ensureVisible() {
	visible := lp.visibleCount()
	if lp.cursor < lp.offset {
		lp.offset = lp.cursor
	}
	if lp.cursor >= lp.offset+visible {
		lp.offset = lp.cursor - visible + 1
	}
	if lp.offset < 0 {
		lp.offset = 0
	}
}

// View renders the panel.
func (lp *LibraryPanel) View() string {
	t := theme.Current

	panelStyle := lipgloss.NewStyle().
		Width(lp.width).
		Height(lp.height).
		Background(t.Background)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(lp.width).
		Padding(0, 1)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	selectedStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.SourceActive).
		Bold(true).
		Width(lp.width).
		Padding(0, 1)

	normalStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Width(lp.width).
		Padding(0, 1)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 1)

	var sb strings.Builder

	header := fmt.Sprintf("Library (%d tracks)", len(lp.tracks))
	if lp.filter != "" {
		header = fmt.Sprintf("Library /%s/ (%d tracks)", lp.filter, len(lp.tracks))
	}
	sb.WriteString(titleStyle.Render(header))
	sb.WriteString("\n")

	sepWidth := lp.width - 2
	if sepWidth < 1 {
		sepWidth = 1
	}
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", sepWidth)))
	sb.WriteString("\n")

	if len(lp.tracks) == 0 {
		msg := "Library is empty. Import files with y or m in the file browser."
		if lp.filter != "" {
			msg = "No tracks match the filter."
		}
		sb.WriteString(dimStyle.Render(msg))
		sb.WriteString("\n")
		return panelStyle.Render(sb.String())
	}

	visible := lp.visibleCount()
	end := lp.offset + visible
	if end > len(lp.tracks) {
		end = len(lp.tracks)
	}

	maxLen := lp.width - 12
	if maxLen < 10 {
		maxLen = 10
	}

	for i := lp.offset; i < end; i++ {
		track := lp.tracks[i]
		line := trackLine(track)
		if len(line) > maxLen {
			line = line[:maxLen-3] + "..."
		}

		length := ""
		if track.Length > 0 {
			length = formatDuration(track.Length)
		}

		row := line
		if length != "" {
			pad := lp.width - lipgloss.Width(line) - len(length) - 5
			if pad > 0 {
				row += strings.Repeat(" ", pad)
			} else {
				row += " "
			}
			row += length
		}

		if i == lp.cursor {
			sb.WriteString(selectedStyle.Render("▸ " + row))
		} else {
			sb.WriteString(normalStyle.Render("  " + row))
		}
		sb.WriteString("\n")
	}

	return panelStyle.Render(sb.String())
}

func trackLine(t library.Track) string {
	if t.Artist != "" {
		return fmt.Sprintf("%s - %s", t.Artist, t.Title)
	}
	return t.Title
}
