package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jansuchomel/cadence/internal/podcasts"
	"github.com/jansuchomel/cadence/internal/theme"
)

// PodcastPanel displays discovered podcasts and, once one is opened,
// its episodes.
type PodcastPanel struct {
	shows    []podcasts.Podcast
	episodes []podcasts.Episode
	showing  *podcasts.Podcast // non-nil while episodes are listed
	busy     bool
	message  string
	cursor   int
	offset   int
	width    int
	height   int
}

// NewPodcastPanel creates an empty podcast panel.
func NewPodcastPanel() PodcastPanel {
	return PodcastPanel{message: "Press / to search for podcasts."}
}

// SetSize updates the panel dimensions.
func (pp *PodcastPanel) SetSize(w, h int) {
	pp.width = w
	pp.height = h
}

// SetBusy toggles the busy indicator.
func (pp *PodcastPanel) SetBusy(b bool) {
	pp.busy = b
}

// SetMessage shows a message instead of the listing.
func (pp *PodcastPanel) SetMessage(msg string) {
	pp.message = msg
}

// SetShows replaces the listed podcasts and leaves episode view.
func (pp *PodcastPanel) SetShows(shows []podcasts.Podcast) {
	pp.shows = shows
	pp.showing = nil
	pp.episodes = nil
	pp.message = ""
	pp.cursor = 0
	pp.offset = 0
	if len(shows) == 0 {
		pp.message = "No podcasts found."
	}
}

// OpenShow switches to the episode listing of the given podcast.
func (pp *PodcastPanel) OpenShow(p podcasts.Podcast) {
	pp.showing = &p
	pp.episodes = p.Episodes
	pp.message = ""
	pp.cursor = 0
	pp.offset = 0
	if len(p.Episodes) == 0 {
		pp.message = "No episodes in this feed."
	}
}

// Back leaves the episode listing. Reports false when already at the
// show listing.
func (pp *PodcastPanel) Back() bool {
	if pp.showing == nil {
		return false
	}
	pp.showing = nil
	pp.episodes = nil
	pp.cursor = 0
	pp.offset = 0
	if pp.message == "No episodes in this feed." {
		pp.message = ""
	}
	return true
}

// InEpisodes reports whether episodes are listed.
func (pp *PodcastPanel) InEpisodes() bool {
	return pp.showing != nil
}

// SelectedShow returns the podcast under the cursor in show view.
func (pp *PodcastPanel) SelectedShow() *podcasts.Podcast {
	if pp.showing != nil || pp.cursor < 0 || pp.cursor >= len(pp.shows) {
		return nil
	}
	p := pp.shows[pp.cursor]
	return &p
}

// SelectedEpisode returns the episode under the cursor in episode view.
func (pp *PodcastPanel) SelectedEpisode() *podcasts.Episode {
	if pp.showing == nil || pp.cursor < 0 || pp.cursor >= len(pp.episodes) {
		return nil
	}
	e := pp.episodes[pp.cursor]
	return &e
}

// CursorUp moves the cursor up one row.
func (pp *PodcastPanel) CursorUp() {
	if pp.cursor > 0 {
		pp.cursor--
		pp.ensureVisible()
	}
}

// CursorDown moves the cursor down one row.
func (pp *PodcastPanel) CursorDown() {
	if pp.cursor < pp.rowCount()-1 {
		pp.cursor++
		pp.ensureVisible()
	}
}

// GotoTop moves to the first row.
func (pp *PodcastPanel) GotoTop() {
	pp.cursor = 0
	pp.offset = 0
}

// GotoBottom moves to the last row.
func (pp *PodcastPanel) GotoBottom() {
	if n := pp.rowCount(); n > 0 {
		pp.cursor = n - 1
		pp.ensureVisible()
	}
}

func (pp *PodcastPanel) rowCount() int {
	if pp.showing != nil {
		return len(pp.episodes)
	}
	return len(pp.shows)
}

// visibleCount returns how many rows fit. Each row takes 2 lines.
func (pp *PodcastPanel) visibleCount() int {
	available := pp.height - 3
	if available <= 0 {
		return 1
	}
	count := available / 2
	if count < 1 {
		count = 1
	}
	return count
}

func (pp *PodcastPanel) ensureVisible() {
	visible := pp.visibleCount()
	if pp.cursor < pp.offset {
		pp.offset = pp.cursor
	}
	if pp.cursor >= pp.offset+visible {
		pp.offset = pp.cursor - visible + 1
	}
	if pp.offset < 0 {
		pp.offset = 0
	}
}

// View renders the panel.
func (pp *PodcastPanel) View() string {
	t := theme.Current

	panelStyle := lipgloss.NewStyle().
		Width(pp.width).
		Height(pp.height).
		Background(t.Background)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(pp.width).
		Padding(0, 1)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	selectedStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.SourceActive).
		Bold(true).
		Width(pp.width).
		Padding(0, 1)

	selectedSubStyle := lipgloss.NewStyle().
		Foreground(t.Secondary).
		Background(t.SourceActive).
		Width(pp.width).
		Padding(0, 1)

	normalStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Width(pp.width).
		Padding(0, 1)

	subStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Width(pp.width).
		Padding(0, 1)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 1)

	var sb strings.Builder

	header := "Podcasts"
	if pp.showing != nil {
		header = pp.showing.Title
	}
	if pp.busy {
		header += "  (loading...)"
	}
	sb.WriteString(titleStyle.Render(header))
	sb.WriteString("\n")

	sepWidth := pp.width - 2
	if sepWidth < 1 {
		sepWidth = 1
	}
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", sepWidth)))
	sb.WriteString("\n")

	if pp.message != "" {
		sb.WriteString(dimStyle.Render(pp.message))
		sb.WriteString("\n")
		return panelStyle.Render(sb.String())
	}

	visible := pp.visibleCount()
	end := pp.offset + visible
	if end > pp.rowCount() {
		end = pp.rowCount()
	}

	maxLen := pp.width - 4
	if maxLen < 10 {
		maxLen = 10
	}

	for i := pp.offset; i < end; i++ {
		var title, sub string
		if pp.showing != nil {
			ep := pp.episodes[i]
			title = ep.Title
			sub = episodeDetail(ep)
		} else {
			show := pp.shows[i]
			title = show.Title
			sub = show.Author
			if sub == "" {
				sub = show.URL
			}
		}

		if len(title) > maxLen {
			title = title[:maxLen-3] + "..."
		}
		if len(sub) > maxLen {
			sub = sub[:maxLen-3] + "..."
		}

		if i == pp.cursor {
			sb.WriteString(selectedStyle.Render("▸ " + title))
			sb.WriteString("\n")
			sb.WriteString(selectedSubStyle.Render("  " + sub))
			sb.WriteString("\n")
		} else {
			sb.WriteString(normalStyle.Render("  " + title))
			sb.WriteString("\n")
			sb.WriteString(subStyle.Render("  " + sub))
			sb.WriteString("\n")
		}
	}

	return panelStyle.Render(sb.String())
}

func episodeDetail(ep podcasts.Episode) string {
	var parts []string
	if !ep.Published.IsZero() {
		parts = append(parts, timeAgo(ep.Published))
	}
	if ep.Description != "" {
		parts = append(parts, ep.Description)
	}
	return strings.Join(parts, "  ")
}

// timeAgo returns a human-readable relative time string.
func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
