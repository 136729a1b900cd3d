package podcasts

import "context"

// FixedURLPage loads a single feed whose URL is supplied by the user.
// The query passed to Search is the feed URL itself.
type FixedURLPage struct {
	BasePage
	feeds *FeedClient
}

// NewFixedURLPage creates a fixed-URL page.
func NewFixedURLPage() *FixedURLPage {
	p := &FixedURLPage{feeds: NewFeedClient()}
	p.SetModel(NewDiscoveryModel())
	return p
}

// Title implements SourcePage.
func (p *FixedURLPage) Title() string {
	return "Add by URL"
}

// Search implements SourcePage by fetching the feed at the given URL.
func (p *FixedURLPage) Search(ctx context.Context, feedURL string) error {
	p.NotifyBusy(true)
	defer p.NotifyBusy(false)

	p.Model().Clear()
	if feedURL == "" {
		return nil
	}

	podcast, err := p.feeds.Fetch(ctx, feedURL)
	if err != nil {
		return err
	}

	p.Model().Replace([]Podcast{*podcast})
	return nil
}
