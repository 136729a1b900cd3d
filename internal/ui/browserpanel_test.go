package ui

import (
	"fmt"
	"testing"

	"github.com/jansuchomel/cadence/internal/fsbrowser"
)

func testEntries(n int) []fsbrowser.Entry {
	entries := make([]fsbrowser.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, fsbrowser.Entry{Name: fmt.Sprintf("track%02d.mp3", i)})
	}
	return entries
}

func TestBrowserPanelCursorMovement(t *testing.T) {
	bp := NewBrowserPanel()
	bp.SetSize(40, 10)
	bp.SetEntries(testEntries(5), nil)

	bp.CursorUp()
	if bp.SelectedName() != "track00.mp3" {
		t.Errorf("expected cursor pinned at top, got %q", bp.SelectedName())
	}

	bp.CursorDown()
	bp.CursorDown()
	if bp.SelectedName() != "track02.mp3" {
		t.Errorf("expected track02, got %q", bp.SelectedName())
	}

	bp.GotoBottom()
	if bp.SelectedName() != "track04.mp3" {
		t.Errorf("expected last entry, got %q", bp.SelectedName())
	}
	bp.CursorDown()
	if bp.SelectedName() != "track04.mp3" {
		t.Errorf("expected cursor pinned at bottom, got %q", bp.SelectedName())
	}

	bp.GotoTop()
	if bp.SelectedName() != "track00.mp3" || bp.ScrollPos() != 0 {
		t.Errorf("expected top reset, got %q offset %d", bp.SelectedName(), bp.ScrollPos())
	}
}

func TestBrowserPanelScrollFollowsCursor(t *testing.T) {
	bp := NewBrowserPanel()
	bp.SetSize(40, 6) // 4 visible rows
	bp.SetEntries(testEntries(20), nil)

	bp.GotoBottom()
	if bp.ScrollPos() == 0 {
		t.Error("expected offset to move with the cursor")
	}

	bp.GotoTop()
	bp.HalfPageDown()
	if bp.SelectedName() != "track02.mp3" {
		t.Errorf("expected half page jump of 2, got %q", bp.SelectedName())
	}
}

func TestBrowserPanelRestoreView(t *testing.T) {
	bp := NewBrowserPanel()
	bp.SetSize(40, 6)
	bp.SetEntries(testEntries(20), nil)

	bp.RestoreView(7, "track09.mp3")

	if bp.SelectedName() != "track09.mp3" {
		t.Errorf("expected selection restored, got %q", bp.SelectedName())
	}
	if bp.ScrollPos() != 7 {
		t.Errorf("expected scroll offset 7, got %d", bp.ScrollPos())
	}

	// A vanished selection falls back to the top entry.
	bp.RestoreView(0, "missing.mp3")
	if bp.SelectedName() != "track00.mp3" {
		t.Errorf("expected fallback to first entry, got %q", bp.SelectedName())
	}
}

func TestBrowserPanelMarks(t *testing.T) {
	bp := NewBrowserPanel()
	bp.SetSize(40, 10)
	bp.SetEntries(testEntries(4), nil)

	// Nothing marked falls back to the cursor entry.
	names := bp.MarkedNames()
	if len(names) != 1 || names[0] != "track00.mp3" {
		t.Errorf("expected cursor fallback, got %v", names)
	}

	bp.ToggleMark() // marks track00, advances
	bp.ToggleMark() // marks track01, advances

	names = bp.MarkedNames()
	if len(names) != 2 || names[0] != "track00.mp3" || names[1] != "track01.mp3" {
		t.Errorf("expected two marked entries in listing order, got %v", names)
	}

	bp.ClearMarks()
	if got := bp.MarkedNames(); len(got) != 1 {
		t.Errorf("expected marks cleared, got %v", got)
	}
}

func TestBrowserPanelRefreshKeepsSelection(t *testing.T) {
	bp := NewBrowserPanel()
	bp.SetSize(40, 10)
	bp.SetEntries(testEntries(5), nil)

	bp.CursorDown()
	bp.CursorDown()
	bp.ToggleMark() // marks track02

	// track02 survives the refresh, track04 disappears.
	refreshed := testEntries(4)
	bp.RefreshEntries(refreshed, nil)

	if bp.SelectedName() != "track03.mp3" {
		t.Errorf("expected selection kept, got %q", bp.SelectedName())
	}
	found := false
	for _, n := range bp.MarkedNames() {
		if n == "track02.mp3" {
			found = true
		}
	}
	if !found {
		t.Error("expected surviving mark kept across refresh")
	}
}

func TestBrowserPanelGGDetection(t *testing.T) {
	bp := NewBrowserPanel()
	bp.SetSize(40, 10)
	bp.SetEntries(testEntries(5), nil)
	bp.GotoBottom()

	if bp.HandleGKey() {
		t.Error("expected first g not to complete gg")
	}
	if !bp.HandleGKey() {
		t.Error("expected second g to complete gg")
	}
	if bp.SelectedName() != "track00.mp3" {
		t.Errorf("expected gg to go to top, got %q", bp.SelectedName())
	}

	bp.HandleGKey()
	bp.ResetGKey()
	if bp.HandleGKey() {
		t.Error("expected reset to break the gg sequence")
	}
}
