package podcasts

import (
	"context"
	"testing"
)

type stubPage struct {
	BasePage
}

func (p *stubPage) Title() string { return "Stub" }

func (p *stubPage) Search(ctx context.Context, query string) error { return nil }

func TestBasePageDefaults(t *testing.T) {
	p := &stubPage{}
	p.SetModel(NewDiscoveryModel())

	var sp SourcePage = p

	if !sp.HasVisibleWidget() {
		t.Error("expected pages to have a visible widget by default")
	}
	if sp.Model() == nil {
		t.Error("expected the installed model to be returned")
	}

	// Show defaults to a no-op.
	sp.Show()
}

func TestBasePageBusyNotification(t *testing.T) {
	p := &stubPage{}

	var states []bool
	p.OnBusy(func(b bool) { states = append(states, b) })

	var other []bool
	p.OnBusy(func(b bool) { other = append(other, b) })

	p.NotifyBusy(true)
	p.NotifyBusy(false)

	want := []bool{true, false}
	for _, got := range [][]bool{states, other} {
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestDiscoveryModel(t *testing.T) {
	m := NewDiscoveryModel()

	if m.Len() != 0 {
		t.Fatalf("expected empty model, got %d", m.Len())
	}

	m.Append(Podcast{Title: "A"}, Podcast{Title: "B"})
	if m.Len() != 2 {
		t.Errorf("expected 2 podcasts, got %d", m.Len())
	}

	m.Replace([]Podcast{{Title: "C"}})
	if m.Len() != 1 || m.Podcasts()[0].Title != "C" {
		t.Errorf("expected replace to swap contents, got %+v", m.Podcasts())
	}

	m.Clear()
	if m.Len() != 0 {
		t.Errorf("expected cleared model, got %d", m.Len())
	}
}
