package fsbrowser

import (
	"os"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Entry is one row in a directory listing.
type Entry struct {
	Name    string
	Dir     bool
	Size    int64
	ModTime time.Time
}

// Lister provides directory listings and path classification for the
// navigator. Implementations must tolerate paths that disappear between
// calls.
type Lister interface {
	// List returns the entries of the directory at path.
	List(path string) ([]Entry, error)
	// IsDir reports whether path exists and is a directory.
	IsDir(path string) bool
}

// OSLister lists directories straight from the local filesystem.
// Hidden entries (dotfiles) are skipped. Directories sort before files,
// both groups case-insensitively by name.
type OSLister struct{}

// List implements Lister.
func (OSLister) List(path string) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, de := range dirents {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		e := Entry{Name: name, Dir: de.IsDir()}
		if info, err := de.Info(); err == nil {
			e.Size = info.Size()
			e.ModTime = info.ModTime()
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Dir != entries[j].Dir {
			return entries[i].Dir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	return entries, nil
}

// IsDir implements Lister.
func (OSLister) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// CachedLister wraps a Lister with an LRU cache of listings so that
// back/forward navigation is instant. Entries are evicted on demand when
// the watcher reports a change under a cached path.
type CachedLister struct {
	inner Lister
	cache *lru.Cache[string, []Entry]
}

// NewCachedLister creates a caching lister holding up to size listings.
func NewCachedLister(inner Lister, size int) *CachedLister {
	cache, _ := lru.New[string, []Entry](size)
	return &CachedLister{inner: inner, cache: cache}
}

// List implements Lister, serving from the cache when possible.
func (c *CachedLister) List(path string) ([]Entry, error) {
	if entries, ok := c.cache.Get(path); ok {
		return entries, nil
	}
	entries, err := c.inner.List(path)
	if err != nil {
		return nil, err
	}
	c.cache.Add(path, entries)
	return entries, nil
}

// IsDir implements Lister.
func (c *CachedLister) IsDir(path string) bool {
	return c.inner.IsDir(path)
}

// Invalidate drops the cached listing for path, if any.
func (c *CachedLister) Invalidate(path string) {
	c.cache.Remove(path)
}
