package podcasts

import "time"

// Episode is a single playable entry of a podcast feed.
type Episode struct {
	Title       string
	URL         string
	Description string
	Published   time.Time
	Author      string
	GUID        string
}

// Podcast is one discovered show.
type Podcast struct {
	Title       string
	Author      string
	URL         string
	Description string
	Episodes    []Episode
}

// DiscoveryModel holds the podcasts a source page has discovered. Each
// page owns exactly one model; the containing view reads it after the
// page reports that it is no longer busy.
type DiscoveryModel struct {
	podcasts []Podcast
}

// NewDiscoveryModel creates an empty discovery model.
func NewDiscoveryModel() *DiscoveryModel {
	return &DiscoveryModel{}
}

// Replace swaps the model contents for the given podcasts.
func (m *DiscoveryModel) Replace(podcasts []Podcast) {
	m.podcasts = podcasts
}

// Append adds podcasts to the end of the model.
func (m *DiscoveryModel) Append(podcasts ...Podcast) {
	m.podcasts = append(m.podcasts, podcasts...)
}

// Clear removes all podcasts.
func (m *DiscoveryModel) Clear() {
	m.podcasts = nil
}

// Podcasts returns the current contents.
func (m *DiscoveryModel) Podcasts() []Podcast {
	return m.podcasts
}

// Len returns the number of podcasts in the model.
func (m *DiscoveryModel) Len() int {
	return len(m.podcasts)
}
