package player

import "testing"

func TestQueueEmpty(t *testing.T) {
	q := NewQueue()

	if _, ok := q.Current(); ok {
		t.Error("expected no current track in an empty queue")
	}
	if _, ok := q.Next(); ok {
		t.Error("expected Next to fail on an empty queue")
	}
	if q.Pos() != -1 {
		t.Errorf("expected position -1, got %d", q.Pos())
	}
}

func TestQueueNextPrev(t *testing.T) {
	q := NewQueue()
	q.Append(
		QueuedTrack{URL: "file:///a.mp3", Title: "A"},
		QueuedTrack{URL: "file:///b.mp3", Title: "B"},
	)

	if _, ok := q.Current(); ok {
		t.Error("expected appending not to start playback")
	}

	first, ok := q.Next()
	if !ok || first.Title != "A" {
		t.Fatalf("expected first track A, got %+v", first)
	}

	second, ok := q.Next()
	if !ok || second.Title != "B" {
		t.Fatalf("expected second track B, got %+v", second)
	}

	if _, ok := q.Next(); ok {
		t.Error("expected Next past the end to fail")
	}

	back, ok := q.Prev()
	if !ok || back.Title != "A" {
		t.Errorf("expected Prev to return A, got %+v", back)
	}
	if _, ok := q.Prev(); ok {
		t.Error("expected Prev at the start to fail")
	}
}

func TestQueueJump(t *testing.T) {
	q := NewQueue()
	q.Append(QueuedTrack{Title: "A"}, QueuedTrack{Title: "B"}, QueuedTrack{Title: "C"})

	track, ok := q.Jump(2)
	if !ok || track.Title != "C" {
		t.Fatalf("expected jump to C, got %+v", track)
	}
	if cur, _ := q.Current(); cur.Title != "C" {
		t.Errorf("expected current C, got %+v", cur)
	}
	if _, ok := q.Jump(5); ok {
		t.Error("expected out-of-range jump to fail")
	}
}

func TestQueueClear(t *testing.T) {
	q := NewQueue()
	q.Append(QueuedTrack{Title: "A"})
	q.Next()

	q.Clear()

	if q.Len() != 0 || q.Pos() != -1 {
		t.Errorf("expected empty reset queue, got len %d pos %d", q.Len(), q.Pos())
	}
}
