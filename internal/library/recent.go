package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RecentEntry represents a single played track.
type RecentEntry struct {
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	PlayedAt time.Time `json:"played_at"`
}

// RecentStore manages the persistent recently-played list.
type RecentStore struct {
	entries []RecentEntry
	path    string
	maxSize int
}

// NewRecentStore creates a recently-played store at the given data directory.
func NewRecentStore(dataDir string) (*RecentStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dataDir, "recent.json")
	rs := &RecentStore{
		path:    path,
		maxSize: 100,
	}

	if err := rs.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading recently played: %w", err)
	}

	return rs, nil
}

// Add records a play. If the URL was already the most recent entry, its
// timestamp is updated instead of creating a duplicate.
func (rs *RecentStore) Add(url, title string) {
	if url == "" {
		return
	}

	now := time.Now()

	if len(rs.entries) > 0 && rs.entries[0].URL == url {
		rs.entries[0].PlayedAt = now
		if title != "" {
			rs.entries[0].Title = title
		}
		rs.save()
		return
	}

	entry := RecentEntry{URL: url, Title: title, PlayedAt: now}

	// Prepend (newest first).
	rs.entries = append([]RecentEntry{entry}, rs.entries...)

	if len(rs.entries) > rs.maxSize {
		rs.entries = rs.entries[:rs.maxSize]
	}

	rs.save()
}

// List returns all entries, newest first.
func (rs *RecentStore) List() []RecentEntry {
	result := make([]RecentEntry, len(rs.entries))
	copy(result, rs.entries)
	return result
}

// Count returns the number of entries.
func (rs *RecentStore) Count() int {
	return len(rs.entries)
}

// Clear removes all entries.
func (rs *RecentStore) Clear() {
	rs.entries = nil
	rs.save()
}

func (rs *RecentStore) load() error {
	data, err := os.ReadFile(rs.path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &rs.entries)
}

func (rs *RecentStore) save() error {
	data, err := json.MarshalIndent(rs.entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(rs.path, data, 0o644)
}
