package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jansuchomel/cadence/internal/fsbrowser"
	"github.com/jansuchomel/cadence/internal/theme"
)

// BrowserPanel displays a scrollable directory listing with vim navigation.
type BrowserPanel struct {
	entries  []fsbrowser.Entry
	marked   map[string]bool
	cursor   int
	offset   int // scroll offset for visible window
	width    int
	height   int
	err      error
	lastGKey bool // for gg detection within the panel
}

// NewBrowserPanel creates a new browser panel.
func NewBrowserPanel() BrowserPanel {
	return BrowserPanel{marked: make(map[string]bool)}
}

// SetEntries replaces the displayed listing and resets the view.
func (bp *BrowserPanel) SetEntries(entries []fsbrowser.Entry, err error) {
	bp.entries = entries
	bp.err = err
	bp.cursor = 0
	bp.offset = 0
	bp.marked = make(map[string]bool)
}

// RefreshEntries replaces the listing but keeps cursor and marks where
// the named entries still exist.
func (bp *BrowserPanel) RefreshEntries(entries []fsbrowser.Entry, err error) {
	selected := bp.SelectedName()
	marked := bp.marked

	bp.entries = entries
	bp.err = err
	bp.marked = make(map[string]bool)
	for _, e := range entries {
		if marked[e.Name] {
			bp.marked[e.Name] = true
		}
	}

	bp.cursor = 0
	for i, e := range entries {
		if e.Name == selected {
			bp.cursor = i
			break
		}
	}
	bp.ensureVisible()
}

// SetSize updates the panel dimensions.
func (bp *BrowserPanel) SetSize(w, h int) {
	bp.width = w
	bp.height = h
}

// ScrollPos returns the current scroll offset.
func (bp *BrowserPanel) ScrollPos() int {
	return bp.offset
}

// SelectedName returns the name of the entry under the cursor.
func (bp *BrowserPanel) SelectedName() string {
	if bp.cursor < 0 || bp.cursor >= len(bp.entries) {
		return ""
	}
	return bp.entries[bp.cursor].Name
}

// RestoreView moves the view to the given scroll offset and selection.
func (bp *BrowserPanel) RestoreView(scrollPos int, selected string) {
	bp.cursor = 0
	for i, e := range bp.entries {
		if e.Name == selected {
			bp.cursor = i
			break
		}
	}

	bp.offset = scrollPos
	max := len(bp.entries) - bp.visibleCount()
	if bp.offset > max {
		bp.offset = max
	}
	if bp.offset < 0 {
		bp.offset = 0
	}
	bp.ensureVisible()
}

// Selected returns the entry under the cursor, or nil if empty.
func (bp *BrowserPanel) Selected() *fsbrowser.Entry {
	if len(bp.entries) == 0 || bp.cursor < 0 || bp.cursor >= len(bp.entries) {
		return nil
	}
	e := bp.entries[bp.cursor]
	return &e
}

// ToggleMark marks or unmarks the entry under the cursor and advances.
func (bp *BrowserPanel) ToggleMark() {
	e := bp.Selected()
	if e == nil {
		return
	}
	if bp.marked[e.Name] {
		delete(bp.marked, e.Name)
	} else {
		bp.marked[e.Name] = true
	}
	bp.CursorDown()
}

// MarkedNames returns the marked entry names, falling back to the entry
// under the cursor when nothing is marked.
func (bp *BrowserPanel) MarkedNames() []string {
	if len(bp.marked) == 0 {
		if e := bp.Selected(); e != nil {
			return []string{e.Name}
		}
		return nil
	}
	var names []string
	for _, e := range bp.entries {
		if bp.marked[e.Name] {
			names = append(names, e.Name)
		}
	}
	return names
}

// ClearMarks removes all marks.
func (bp *BrowserPanel) ClearMarks() {
	bp.marked = make(map[string]bool)
}

// CursorUp moves the cursor up one entry.
func (bp *BrowserPanel) CursorUp() {
	bp.lastGKey = false
	if bp.cursor > 0 {
		bp.cursor--
		bp.ensureVisible()
	}
}

// CursorDown moves the cursor down one entry.
func (bp *BrowserPanel) CursorDown() {
	bp.lastGKey = false
	if bp.cursor < len(bp.entries)-1 {
		bp.cursor++
		bp.ensureVisible()
	}
}

// GotoTop moves to the first entry.
func (bp *BrowserPanel) GotoTop() {
	bp.lastGKey = false
	bp.cursor = 0
	bp.offset = 0
}

// GotoBottom moves to the last entry.
func (bp *BrowserPanel) GotoBottom() {
	bp.lastGKey = false
	if len(bp.entries) > 0 {
		bp.cursor = len(bp.entries) - 1
		bp.ensureVisible()
	}
}

// HalfPageDown scrolls down half a page.
func (bp *BrowserPanel) HalfPageDown() {
	bp.lastGKey = false
	visible := bp.visibleCount()
	bp.cursor += visible / 2
	if bp.cursor >= len(bp.entries) {
		bp.cursor = len(bp.entries) - 1
	}
	if bp.cursor < 0 {
		bp.cursor = 0
	}
	bp.ensureVisible()
}

// HalfPageUp scrolls up half a page.
func (bp *BrowserPanel) HalfPageUp() {
	bp.lastGKey = false
	visible := bp.visibleCount()
	bp.cursor -= visible / 2
	if bp.cursor < 0 {
		bp.cursor = 0
	}
	bp.ensureVisible()
}

// HandleGKey handles the "g" key for gg detection.
// Returns true if "gg" was completed (go to top).
func (bp *BrowserPanel) HandleGKey() bool {
	if bp.lastGKey {
		bp.GotoTop()
		return true
	}
	bp.lastGKey = true
	return false
}

// ResetGKey resets the g key state (called on any non-g key press).
func (bp *BrowserPanel) ResetGKey() {
	bp.lastGKey = false
}

// visibleCount returns how many entries fit in the visible area.
func (bp *BrowserPanel) visibleCount() int {
	// 2 lines for the header, 1 line per entry.
	available := bp.height - 2
	if available < 1 {
		return 1
	}
	return available
}

// ensureVisible adjusts offset so the cursor is within the visible window.
func (bp *BrowserPanel) ensureVisible() {
	visible := bp.visibleCount()
	if bp.cursor < bp.offset {
		bp.offset = bp.cursor
	}
	if bp.cursor >= bp.offset+visible {
		bp.offset = bp.cursor - visible + 1
	}
	if bp.offset < 0 {
		bp.offset = 0
	}
}

// View renders the panel.
func (bp *BrowserPanel) View() string {
	t := theme.Current

	panelStyle := lipgloss.NewStyle().
		Width(bp.width).
		Height(bp.height).
		Background(t.Background)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	selectedStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.SourceActive).
		Bold(true).
		Width(bp.width).
		Padding(0, 1)

	dirStyle := lipgloss.NewStyle().
		Foreground(t.Directory).
		Width(bp.width).
		Padding(0, 1)

	fileStyle := lipgloss.NewStyle().
		Foreground(t.File).
		Width(bp.width).
		Padding(0, 1)

	markStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Width(bp.width).
		Padding(0, 1)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 1)

	errStyle := lipgloss.NewStyle().
		Foreground(t.Error).
		Padding(0, 1)

	var sb strings.Builder

	sepWidth := bp.width - 2
	if sepWidth < 1 {
		sepWidth = 1
	}
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", sepWidth)))
	sb.WriteString("\n")

	if bp.err != nil {
		sb.WriteString(errStyle.Render(fmt.Sprintf("Cannot read directory: %v", bp.err)))
		sb.WriteString("\n")
		return panelStyle.Render(sb.String())
	}

	if len(bp.entries) == 0 {
		sb.WriteString(dimStyle.Render("Empty directory."))
		sb.WriteString("\n")
		return panelStyle.Render(sb.String())
	}

	visible := bp.visibleCount()
	end := bp.offset + visible
	if end > len(bp.entries) {
		end = len(bp.entries)
	}

	for i := bp.offset; i < end; i++ {
		entry := bp.entries[i]
		sb.WriteString(bp.renderEntry(entry, i == bp.cursor, selectedStyle, dirStyle, fileStyle, markStyle))
		sb.WriteString("\n")
	}

	return panelStyle.Render(sb.String())
}

func (bp *BrowserPanel) renderEntry(entry fsbrowser.Entry, selected bool,
	selectedStyle, dirStyle, fileStyle, markStyle lipgloss.Style) string {

	mark := " "
	if bp.marked[entry.Name] {
		mark = "*"
	}

	name := entry.Name
	detail := formatSize(entry.Size)
	if entry.Dir {
		name += "/"
		detail = ""
	}

	maxName := bp.width - len(detail) - 8
	if maxName < 10 {
		maxName = 10
	}
	if len(name) > maxName {
		name = name[:maxName-3] + "..."
	}

	line := fmt.Sprintf("%s %s", mark, name)
	if detail != "" {
		pad := bp.width - lipgloss.Width(line) - len(detail) - 4
		if pad > 0 {
			line += strings.Repeat(" ", pad)
		} else {
			line += " "
		}
		line += detail
	}

	switch {
	case selected:
		return selectedStyle.Render("▸" + line[1:])
	case bp.marked[entry.Name]:
		return markStyle.Render(line)
	case entry.Dir:
		return dirStyle.Render(line)
	default:
		return fileStyle.Render(line)
	}
}

// formatSize renders a byte count compactly.
func formatSize(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1fG", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
