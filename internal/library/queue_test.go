package library

import "testing"

func TestQueueStoreReplaceAndList(t *testing.T) {
	qs := NewQueueStore(openTestDB(t))

	items := []QueueItem{
		{URL: "file:///a.mp3", Title: "A"},
		{URL: "file:///b.mp3", Title: "B"},
	}
	if err := qs.Replace(items); err != nil {
		t.Fatalf("replacing queue: %v", err)
	}

	got, err := qs.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].URL != "file:///a.mp3" || got[0].Position != 0 {
		t.Errorf("unexpected first item: %+v", got[0])
	}
	if got[1].URL != "file:///b.mp3" || got[1].Position != 1 {
		t.Errorf("unexpected second item: %+v", got[1])
	}
}

func TestQueueStoreReplaceOverwrites(t *testing.T) {
	qs := NewQueueStore(openTestDB(t))

	qs.Replace([]QueueItem{{URL: "file:///old.mp3"}})
	qs.Replace([]QueueItem{{URL: "file:///new.mp3"}})

	got, err := qs.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].URL != "file:///new.mp3" {
		t.Errorf("expected only the new queue, got %+v", got)
	}
}

func TestQueueStoreClear(t *testing.T) {
	qs := NewQueueStore(openTestDB(t))

	qs.Replace([]QueueItem{{URL: "file:///a.mp3"}})
	if err := qs.Clear(); err != nil {
		t.Fatal(err)
	}

	n, err := qs.Len()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected empty queue, got %d items", n)
	}
}
