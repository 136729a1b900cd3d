package podcasts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	itunesSearchURL = "https://itunes.apple.com/search"
	itunesMaxHits   = 25
)

// ITunesPage searches the iTunes podcast directory.
type ITunesPage struct {
	BasePage
	client  *http.Client
	baseURL string
}

// NewITunesPage creates an iTunes search page. An empty endpoint uses
// the public search API.
func NewITunesPage(endpoint string) *ITunesPage {
	if endpoint == "" {
		endpoint = itunesSearchURL
	}
	p := &ITunesPage{
		client:  newHTTPClient(),
		baseURL: endpoint,
	}
	p.SetModel(NewDiscoveryModel())
	return p
}

// Title implements SourcePage.
func (p *ITunesPage) Title() string {
	return "Search iTunes"
}

type itunesResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []itunesResult `json:"results"`
}

type itunesResult struct {
	CollectionName string `json:"collectionName"`
	ArtistName     string `json:"artistName"`
	FeedURL        string `json:"feedUrl"`
	Genre          string `json:"primaryGenreName"`
}

// Search implements SourcePage. Results without a feed URL are skipped.
func (p *ITunesPage) Search(ctx context.Context, query string) error {
	p.NotifyBusy(true)
	defer p.NotifyBusy(false)

	p.Model().Clear()
	if query == "" {
		return nil
	}

	params := url.Values{}
	params.Set("term", query)
	params.Set("media", "podcast")
	params.Set("limit", fmt.Sprintf("%d", itunesMaxHits))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("searching podcasts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("searching podcasts: status %d", resp.StatusCode)
	}

	var parsed itunesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("parsing search results: %w", err)
	}

	podcasts := make([]Podcast, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.FeedURL == "" {
			continue
		}
		podcasts = append(podcasts, Podcast{
			Title:       r.CollectionName,
			Author:      r.ArtistName,
			URL:         r.FeedURL,
			Description: r.Genre,
		})
	}

	p.Model().Replace(podcasts)
	return nil
}
