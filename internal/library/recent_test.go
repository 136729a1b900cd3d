package library

import (
	"fmt"
	"path/filepath"
	"testing"
)

func TestRecentStoreAddNewestFirst(t *testing.T) {
	rs, err := NewRecentStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	rs.Add("file:///a.mp3", "A")
	rs.Add("file:///b.mp3", "B")

	got := rs.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].URL != "file:///b.mp3" || got[1].URL != "file:///a.mp3" {
		t.Errorf("expected newest first, got %q then %q", got[0].URL, got[1].URL)
	}
}

func TestRecentStoreDedupesMostRecent(t *testing.T) {
	rs, err := NewRecentStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	rs.Add("file:///a.mp3", "A")
	rs.Add("file:///a.mp3", "A again")

	if rs.Count() != 1 {
		t.Fatalf("expected repeated play to update in place, got %d entries", rs.Count())
	}
	if rs.List()[0].Title != "A again" {
		t.Errorf("expected updated title, got %q", rs.List()[0].Title)
	}

	// A different track in between still creates a new entry.
	rs.Add("file:///b.mp3", "B")
	rs.Add("file:///a.mp3", "A")
	if rs.Count() != 3 {
		t.Errorf("expected 3 entries, got %d", rs.Count())
	}
}

func TestRecentStoreTrimsToMaxSize(t *testing.T) {
	rs, err := NewRecentStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	rs.maxSize = 5

	for i := 0; i < 8; i++ {
		rs.Add(fmt.Sprintf("file:///%d.mp3", i), "")
	}

	if rs.Count() != 5 {
		t.Fatalf("expected trim to 5 entries, got %d", rs.Count())
	}
	if rs.List()[0].URL != "file:///7.mp3" {
		t.Errorf("expected newest entry kept, got %q", rs.List()[0].URL)
	}
}

func TestRecentStorePersists(t *testing.T) {
	dir := t.TempDir()

	rs, err := NewRecentStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	rs.Add("file:///a.mp3", "A")

	reopened, err := NewRecentStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if reopened.Count() != 1 || reopened.List()[0].Title != "A" {
		t.Errorf("expected entry to survive reopen, got %+v", reopened.List())
	}

	if _, err := NewRecentStore(filepath.Join(dir, "nested", "data")); err != nil {
		t.Errorf("expected nested data dir to be created: %v", err)
	}
}

func TestRecentStoreIgnoresEmptyURL(t *testing.T) {
	rs, err := NewRecentStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	rs.Add("", "ghost")
	if rs.Count() != 0 {
		t.Errorf("expected empty URL to be ignored, got %d entries", rs.Count())
	}
}
