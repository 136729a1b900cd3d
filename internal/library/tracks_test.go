package library

import (
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(t.TempDir())
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTrackStoreAddAndList(t *testing.T) {
	ts := NewTrackStore(openTestDB(t))

	added := ts.Add(Track{
		Path:   "/music/queen/one.mp3",
		Title:  "One Vision",
		Artist: "Queen",
		Album:  "A Kind of Magic",
		Length: 247 * time.Second,
	})
	if !added {
		t.Fatal("expected Add to report a new track")
	}

	if ts.Count() != 1 {
		t.Errorf("expected 1 track, got %d", ts.Count())
	}

	tracks := ts.List()
	if len(tracks) != 1 {
		t.Fatalf("expected 1 track in list, got %d", len(tracks))
	}
	if tracks[0].Title != "One Vision" || tracks[0].Artist != "Queen" {
		t.Errorf("unexpected track: %+v", tracks[0])
	}
	if tracks[0].Length != 247*time.Second {
		t.Errorf("expected length 247s, got %v", tracks[0].Length)
	}
}

func TestTrackStoreAddDuplicatePath(t *testing.T) {
	ts := NewTrackStore(openTestDB(t))

	ts.Add(Track{Path: "/music/a.mp3", Title: "A"})
	added := ts.Add(Track{Path: "/music/a.mp3", Title: "A again"})

	if added {
		t.Error("expected duplicate path to be rejected")
	}
	if ts.Count() != 1 {
		t.Errorf("expected 1 track after duplicate add, got %d", ts.Count())
	}
}

func TestTrackStoreRemove(t *testing.T) {
	ts := NewTrackStore(openTestDB(t))

	ts.Add(Track{Path: "/music/a.mp3"})

	if !ts.Remove("/music/a.mp3") {
		t.Error("expected Remove to report success")
	}
	if ts.Has("/music/a.mp3") {
		t.Error("expected track to be gone")
	}
	if ts.Remove("/music/missing.mp3") {
		t.Error("expected Remove of missing track to report false")
	}
}

func TestTrackStoreListOrder(t *testing.T) {
	ts := NewTrackStore(openTestDB(t))

	ts.Add(Track{Path: "/m/1.mp3", Artist: "Zeppelin", Album: "IV", Title: "Rock and Roll"})
	ts.Add(Track{Path: "/m/2.mp3", Artist: "ABBA", Album: "Arrival", Title: "Money"})
	ts.Add(Track{Path: "/m/3.mp3", Artist: "ABBA", Album: "Arrival", Title: "Dancing Queen"})

	tracks := ts.List()
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
	if tracks[0].Title != "Dancing Queen" || tracks[1].Title != "Money" {
		t.Errorf("expected artist/album/title order, got %q, %q, %q",
			tracks[0].Title, tracks[1].Title, tracks[2].Title)
	}
	if tracks[2].Artist != "Zeppelin" {
		t.Errorf("expected Zeppelin last, got %q", tracks[2].Artist)
	}
}

func TestTrackStoreSearch(t *testing.T) {
	ts := NewTrackStore(openTestDB(t))

	ts.Add(Track{Path: "/m/1.mp3", Artist: "Queen", Title: "One Vision"})
	ts.Add(Track{Path: "/m/2.mp3", Artist: "Muse", Title: "Starlight"})

	got := ts.Search("quee")
	if len(got) != 1 || got[0].Artist != "Queen" {
		t.Errorf("expected single Queen match, got %+v", got)
	}

	if got := ts.Search("nothing here"); len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}
