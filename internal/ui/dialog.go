package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jansuchomel/cadence/internal/musicstorage"
	"github.com/jansuchomel/cadence/internal/theme"
)

// ConfirmDialog asks the user to confirm a destructive action.
type ConfirmDialog struct {
	visible bool
	title   string
	body    string
}

// NewConfirmDialog creates a hidden confirm dialog.
func NewConfirmDialog() ConfirmDialog {
	return ConfirmDialog{}
}

// ShowDelete opens the dialog for a pending deletion.
func (cd *ConfirmDialog) ShowDelete(files []string) {
	cd.title = "Delete files"
	if len(files) == 1 {
		cd.body = fmt.Sprintf("Delete %s from disk?", files[0])
	} else {
		cd.body = fmt.Sprintf("Delete %d files from disk?", len(files))
	}
	cd.visible = true
}

// Hide closes the dialog.
func (cd *ConfirmDialog) Hide() {
	cd.visible = false
}

// IsVisible reports whether the dialog is shown.
func (cd *ConfirmDialog) IsVisible() bool {
	return cd.visible
}

// View renders the dialog as a centered popup overlay.
func (cd *ConfirmDialog) View() string {
	if !cd.visible {
		return ""
	}

	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Warning)

	bodyStyle := lipgloss.NewStyle().
		Foreground(t.Text)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Italic(true)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("⚠ "+cd.title),
		"",
		bodyStyle.Render(cd.body),
		"",
		dimStyle.Render("y:delete  n/Esc:cancel"),
	)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Warning).
		Padding(1, 2)

	return boxStyle.Render(content)
}

// ErrorDialog lists the files an operation could not process.
type ErrorDialog struct {
	visible bool
	title   string
	failed  []musicstorage.FailedFile
}

// NewErrorDialog creates a hidden error dialog.
func NewErrorDialog() ErrorDialog {
	return ErrorDialog{}
}

// ShowDeleteErrors opens the dialog with the deletion failure summary.
func (ed *ErrorDialog) ShowDeleteErrors(failed []musicstorage.FailedFile) {
	ed.title = "Some files could not be deleted"
	ed.failed = failed
	ed.visible = true
}

// Hide closes the dialog.
func (ed *ErrorDialog) Hide() {
	ed.visible = false
}

// IsVisible reports whether the dialog is shown.
func (ed *ErrorDialog) IsVisible() bool {
	return ed.visible
}

// View renders the dialog as a centered popup overlay.
func (ed *ErrorDialog) View() string {
	if !ed.visible {
		return ""
	}

	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Error)

	fileStyle := lipgloss.NewStyle().
		Foreground(t.Text)

	reasonStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Italic(true)

	var lines []string
	lines = append(lines, titleStyle.Render("✗ "+ed.title), "")

	const maxShown = 10
	for i, f := range ed.failed {
		if i == maxShown {
			lines = append(lines, reasonStyle.Render(fmt.Sprintf("  ... and %d more", len(ed.failed)-maxShown)))
			break
		}
		reason := ""
		if f.Err != nil {
			reason = f.Err.Error()
		}
		lines = append(lines, fileStyle.Render("  "+f.Path))
		if reason != "" {
			lines = append(lines, reasonStyle.Render("    "+reason))
		}
	}

	lines = append(lines, "", dimStyle.Render("press any key to dismiss"))

	content := strings.Join(lines, "\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Error).
		Padding(1, 2)

	return boxStyle.Render(content)
}
