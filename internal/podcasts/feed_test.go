package podcasts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
<channel>
  <title>Go Time</title>
  <link>https://example.com/gotime</link>
  <description>A show about &lt;b&gt;Go&lt;/b&gt;</description>
  <itunes:author>Changelog</itunes:author>
  <item>
    <title>Episode 1</title>
    <link>https://example.com/gotime/1</link>
    <description>The first one</description>
    <pubDate>Mon, 02 Jan 2023 15:04:05 +0000</pubDate>
    <guid>gotime-1</guid>
    <enclosure url="https://example.com/gotime/1.mp3" type="audio/mpeg" length="1"/>
  </item>
  <item>
    <title>Episode 2</title>
    <link>https://example.com/gotime/2</link>
    <description></description>
  </item>
</channel>
</rss>`

const sampleAtom = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Cast</title>
  <link href="https://example.com/cast" rel="alternate"/>
  <author><name>Someone</name></author>
  <entry>
    <title>Pilot</title>
    <link href="https://example.com/cast/pilot.mp3" rel="enclosure"/>
    <link href="https://example.com/cast/pilot" rel="alternate"/>
    <summary>the pilot</summary>
    <published>2023-01-02T15:04:05Z</published>
    <id>cast-pilot</id>
  </entry>
</feed>`

func TestParseFeedRSS(t *testing.T) {
	podcast, err := ParseFeed([]byte(sampleRSS))
	if err != nil {
		t.Fatalf("parsing RSS: %v", err)
	}

	if podcast.Title != "Go Time" || podcast.Author != "Changelog" {
		t.Errorf("unexpected channel metadata: %+v", podcast)
	}
	if podcast.Description != "A show about Go" {
		t.Errorf("expected HTML stripped from description, got %q", podcast.Description)
	}
	if len(podcast.Episodes) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(podcast.Episodes))
	}

	ep := podcast.Episodes[0]
	if ep.URL != "https://example.com/gotime/1.mp3" {
		t.Errorf("expected enclosure URL, got %q", ep.URL)
	}
	if ep.Published.IsZero() || ep.GUID != "gotime-1" {
		t.Errorf("unexpected episode: %+v", ep)
	}

	// No enclosure falls back to the link.
	if podcast.Episodes[1].URL != "https://example.com/gotime/2" {
		t.Errorf("expected link fallback, got %q", podcast.Episodes[1].URL)
	}
}

func TestParseFeedAtom(t *testing.T) {
	podcast, err := ParseFeed([]byte(sampleAtom))
	if err != nil {
		t.Fatalf("parsing Atom: %v", err)
	}

	if podcast.Title != "Atom Cast" || podcast.URL != "https://example.com/cast" {
		t.Errorf("unexpected feed metadata: %+v", podcast)
	}
	if len(podcast.Episodes) != 1 {
		t.Fatalf("expected 1 episode, got %d", len(podcast.Episodes))
	}
	if podcast.Episodes[0].URL != "https://example.com/cast/pilot.mp3" {
		t.Errorf("expected enclosure link preferred, got %q", podcast.Episodes[0].URL)
	}
}

func TestParseFeedGarbage(t *testing.T) {
	if _, err := ParseFeed([]byte("not a feed")); err == nil {
		t.Error("expected an error for unparseable data")
	}
}

func TestFeedClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	podcast, err := NewFeedClient().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetching feed: %v", err)
	}
	if podcast.Title != "Go Time" {
		t.Errorf("unexpected podcast: %+v", podcast)
	}
}

func TestFeedClientFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewFeedClient().Fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected an error for a 404 response")
	}
}
