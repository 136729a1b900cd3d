package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jansuchomel/cadence/internal/theme"
)

// StatusBar shows mode, playback and task info at the bottom of the screen.
type StatusBar struct {
	mode       string
	message    string // temporary status message
	track      string
	position   time.Duration
	duration   time.Duration
	playing    bool
	taskName   string
	taskDone   int
	taskTotal  int
	entryCount int
	width      int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: "BROWSE",
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetMode sets the current mode indicator (BROWSE, INPUT, CONFIRM, etc).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// SetMessage sets a temporary status message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
}

// SetNowPlaying updates the playback segment.
func (s *StatusBar) SetNowPlaying(track string, position, duration time.Duration, playing bool) {
	s.track = track
	s.position = position
	s.duration = duration
	s.playing = playing
}

// ClearNowPlaying removes the playback segment.
func (s *StatusBar) ClearNowPlaying() {
	s.track = ""
	s.position = 0
	s.duration = 0
	s.playing = false
}

// SetTask shows a background task with its progress.
func (s *StatusBar) SetTask(name string, done, total int) {
	s.taskName = name
	s.taskDone = done
	s.taskTotal = total
}

// ClearTask removes the task segment.
func (s *StatusBar) ClearTask() {
	s.taskName = ""
}

// SetEntryCount sets the listing entry count shown on the right.
func (s *StatusBar) SetEntryCount(n int) {
	s.entryCount = n
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	switch s.mode {
	case "BROWSE":
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Primary)
	case "INPUT":
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Success)
	case "COMMAND":
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Accent)
	case "CONFIRM":
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Warning)
	case "PODCASTS", "LIBRARY":
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Secondary)
	default:
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Secondary)
	}

	mode := modeStyle.Render(s.mode)

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	// Left side: message or now playing.
	var left string
	if s.message != "" {
		msgStyle := lipgloss.NewStyle().
			Foreground(t.Info).
			Background(t.Surface).
			Padding(0, 1)
		left = msgStyle.Render(s.message)
	} else if s.track != "" {
		icon := "▶"
		if !s.playing {
			icon = "⏸"
		}
		playStyle := lipgloss.NewStyle().
			Foreground(t.Playing).
			Background(t.Surface).
			Padding(0, 1)
		left = playStyle.Render(fmt.Sprintf("%s %s  %s / %s",
			icon, s.track, formatDuration(s.position), formatDuration(s.duration)))
	}

	// Right side: task progress + entry count.
	var right string
	rightStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface).
		Padding(0, 1)

	if s.taskName != "" {
		taskStyle := lipgloss.NewStyle().
			Foreground(t.Warning).
			Background(t.Surface).
			Padding(0, 1)
		right += taskStyle.Render(fmt.Sprintf("%s %d/%d", s.taskName, s.taskDone, s.taskTotal))
	}
	if s.entryCount > 0 {
		right += rightStyle.Render(fmt.Sprintf("%d items", s.entryCount))
	}

	// Calculate spacing.
	modeWidth := lipgloss.Width(mode)
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	spacerWidth := s.width - modeWidth - leftWidth - rightWidth
	if spacerWidth < 0 {
		spacerWidth = 0
	}

	spacerStyle := lipgloss.NewStyle().
		Background(t.Surface)
	spacer := spacerStyle.Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return barStyle.Render(mode + left + spacer + right)
}

// formatDuration renders a duration as m:ss or h:mm:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
