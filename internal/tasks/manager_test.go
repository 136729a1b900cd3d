package tasks

import "testing"

func TestStartAndFinish(t *testing.T) {
	m := NewManager()

	id := m.Start("Deleting files")
	if id == 0 {
		t.Fatal("Start returned zero ID")
	}

	active := m.Active()
	if len(active) != 1 || active[0].Name != "Deleting files" {
		t.Fatalf("active = %+v", active)
	}

	m.Finish(id)
	if len(m.Active()) != 0 {
		t.Error("task still active after Finish")
	}
}

func TestSetProgress(t *testing.T) {
	m := NewManager()
	id := m.Start("Copying to library")

	m.SetProgress(id, 3, 10)

	active := m.Active()
	if len(active) != 1 || active[0].Progress != 3 || active[0].Total != 10 {
		t.Fatalf("active = %+v", active)
	}
}

func TestOnChangeNotifications(t *testing.T) {
	m := NewManager()

	var calls int
	m.OnChange(func() { calls++ })

	id := m.Start("x")
	m.SetProgress(id, 1, 2)
	m.Finish(id)

	if calls != 3 {
		t.Errorf("observer called %d times, want 3", calls)
	}
}

func TestDistinctIDs(t *testing.T) {
	m := NewManager()
	a := m.Start("a")
	b := m.Start("b")
	if a == b {
		t.Errorf("IDs should be distinct, got %d twice", a)
	}
}
