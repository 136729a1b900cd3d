package podcasts

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxFeedBytes = 2 * 1024 * 1024

// FeedClient fetches and parses podcast RSS/Atom feeds.
type FeedClient struct {
	client *http.Client
}

// NewFeedClient creates a new feed client.
func NewFeedClient() *FeedClient {
	return &FeedClient{client: newHTTPClient()}
}

// Fetch retrieves and parses the feed at the given URL.
func (c *FeedClient) Fetch(ctx context.Context, url string) (*Podcast, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching feed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("reading feed body: %w", err)
	}

	podcast, err := ParseFeed(body)
	if err != nil {
		return nil, err
	}
	if podcast.URL == "" {
		podcast.URL = url
	}
	return podcast, nil
}

// ParseFeed parses RSS 2.0 or Atom feed data into a podcast.
func ParseFeed(data []byte) (*Podcast, error) {
	podcast, err := parseRSS(data)
	if err != nil {
		podcast, err = parseAtom(data)
		if err != nil {
			return nil, fmt.Errorf("could not parse feed as RSS or Atom")
		}
	}
	return podcast, nil
}

// RSS 2.0 types
type rssRoot struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Description string    `xml:"description"`
	Link        string    `xml:"link"`
	Author      string    `xml:"author"` // itunes:author
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string       `xml:"title"`
	Link        string       `xml:"link"`
	Description string       `xml:"description"`
	PubDate     string       `xml:"pubDate"`
	Author      string       `xml:"author"`
	Creator     string       `xml:"creator"` // dc:creator
	GUID        string       `xml:"guid"`
	Enclosure   rssEnclosure `xml:"enclosure"`
}

type rssEnclosure struct {
	URL  string `xml:"url,attr"`
	Type string `xml:"type,attr"`
}

func parseRSS(data []byte) (*Podcast, error) {
	var root rssRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	if root.Channel.Title == "" && len(root.Channel.Items) == 0 {
		return nil, fmt.Errorf("empty RSS feed")
	}

	podcast := &Podcast{
		Title:       root.Channel.Title,
		Author:      root.Channel.Author,
		URL:         root.Channel.Link,
		Description: stripHTML(root.Channel.Description),
	}

	for _, item := range root.Channel.Items {
		author := item.Author
		if author == "" {
			author = item.Creator
		}

		// Audio lives in the enclosure; the link is a fallback.
		url := item.Enclosure.URL
		if url == "" {
			url = item.Link
		}

		ep := Episode{
			Title:       item.Title,
			URL:         url,
			Description: stripHTML(item.Description),
			Author:      author,
			GUID:        item.GUID,
		}

		if item.PubDate != "" {
			if t, err := parseTime(item.PubDate); err == nil {
				ep.Published = t
			}
		}

		podcast.Episodes = append(podcast.Episodes, ep)
	}

	return podcast, nil
}

// Atom types
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Title   string      `xml:"title"`
	Link    []atomLink  `xml:"link"`
	Author  struct {
		Name string `xml:"name"`
	} `xml:"author"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Link      []atomLink `xml:"link"`
	Summary   string     `xml:"summary"`
	Content   string     `xml:"content"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
	Author    struct {
		Name string `xml:"name"`
	} `xml:"author"`
	ID string `xml:"id"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

func parseAtom(data []byte) (*Podcast, error) {
	var af atomFeed
	if err := xml.Unmarshal(data, &af); err != nil {
		return nil, err
	}

	if af.Title == "" && len(af.Entries) == 0 {
		return nil, fmt.Errorf("empty Atom feed")
	}

	podcast := &Podcast{
		Title:  af.Title,
		Author: af.Author.Name,
	}

	for _, link := range af.Link {
		if link.Rel == "" || link.Rel == "alternate" {
			podcast.URL = link.Href
			break
		}
	}

	for _, entry := range af.Entries {
		url := ""
		for _, l := range entry.Link {
			if l.Rel == "enclosure" {
				url = l.Href
				break
			}
		}
		if url == "" {
			for _, l := range entry.Link {
				if l.Rel == "" || l.Rel == "alternate" {
					url = l.Href
					break
				}
			}
		}

		desc := entry.Summary
		if desc == "" {
			desc = entry.Content
		}

		ep := Episode{
			Title:       entry.Title,
			URL:         url,
			Description: stripHTML(desc),
			Author:      entry.Author.Name,
			GUID:        entry.ID,
		}

		dateStr := entry.Published
		if dateStr == "" {
			dateStr = entry.Updated
		}
		if dateStr != "" {
			if t, err := parseTime(dateStr); err == nil {
				ep.Published = t
			}
		}

		podcast.Episodes = append(podcast.Episodes, ep)
	}

	return podcast, nil
}

// stripHTML does a basic removal of HTML tags.
func stripHTML(s string) string {
	var result strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// parseTime tries the date formats feeds use in the wild.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-07:00",
		"Mon, 02 Jan 2006 15:04:05 GMT",
		"Mon, 02 Jan 2006 15:04:05 +0000",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	s = strings.TrimSpace(s)
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("could not parse time: %s", s)
}
