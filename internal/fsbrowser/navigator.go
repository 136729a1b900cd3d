package fsbrowser

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Navigator tracks the directory shown by the file browser and the
// undo/redo history of moves between directories. It is UI-free: the
// owning view registers callbacks for state capture and for the events
// the navigator emits.
//
// Construction is two-phase: New wires dependencies, Activate performs the
// first listing (home directory, or a path requested earlier via SetPath)
// without creating history.
type Navigator struct {
	lister  Lister
	history *History

	root      string // current root directory, "" before Activate
	upEnabled bool
	active    bool
	deferred  string

	entries []Entry
	listErr error

	// CaptureView returns the view's current scroll position and selected
	// entry name. RestoreView applies a previously captured pair. Both are
	// optional; an absent CaptureView records positions as unset.
	CaptureView func() (scroll int, selected string)
	RestoreView func(scroll int, selected string)

	pathChanged   []func(path string)
	load          []func(urls []string)
	appendQueue   []func(urls []string)
	copyToLibrary []func(paths []string)
	moveToLibrary []func(paths []string)
}

// NewNavigator creates an inactive navigator over the given lister.
func NewNavigator(lister Lister) *Navigator {
	return &Navigator{
		lister:  lister,
		history: NewHistory(),
	}
}

// OnPathChanged registers an observer for root directory changes.
func (n *Navigator) OnPathChanged(fn func(path string)) {
	n.pathChanged = append(n.pathChanged, fn)
}

// OnLoad registers an observer for "play these now" requests.
func (n *Navigator) OnLoad(fn func(urls []string)) {
	n.load = append(n.load, fn)
}

// OnAppendToQueue registers an observer for queue append requests.
func (n *Navigator) OnAppendToQueue(fn func(urls []string)) {
	n.appendQueue = append(n.appendQueue, fn)
}

// OnCopyToLibrary registers an observer for library copy requests.
func (n *Navigator) OnCopyToLibrary(fn func(paths []string)) {
	n.copyToLibrary = append(n.copyToLibrary, fn)
}

// OnMoveToLibrary registers an observer for library move requests.
func (n *Navigator) OnMoveToLibrary(fn func(paths []string)) {
	n.moveToLibrary = append(n.moveToLibrary, fn)
}

// Activate performs first-display initialization: the initial listing is
// built and the navigator jumps to the home directory, then to any path
// requested before activation. No history is created.
func (n *Navigator) Activate() {
	if n.active {
		return
	}
	n.active = true

	if home, err := os.UserHomeDir(); err == nil {
		n.applyWithoutHistory(home)
	}
	if n.deferred != "" {
		n.applyWithoutHistory(n.deferred)
		n.deferred = ""
	}
}

// SetPath requests an initial path. Before activation the request is
// remembered and applied on Activate; afterwards it is applied directly,
// bypassing history.
func (n *Navigator) SetPath(path string) {
	if !n.active {
		n.deferred = canonicalPath(path)
		return
	}
	n.applyWithoutHistory(canonicalPath(path))
}

// Root returns the current root directory.
func (n *Navigator) Root() string {
	return n.root
}

// Entries returns the listing of the current root.
func (n *Navigator) Entries() []Entry {
	return n.entries
}

// Err returns the listing error for the current root, if any.
func (n *Navigator) Err() error {
	return n.listErr
}

// UpEnabled reports whether the current root has a parent to move up to.
func (n *Navigator) UpEnabled() bool {
	return n.upEnabled
}

// CanUndo reports whether a back navigation is possible.
func (n *Navigator) CanUndo() bool {
	return n.history.CanUndo()
}

// CanRedo reports whether a forward navigation is possible.
func (n *Navigator) CanRedo() bool {
	return n.history.CanRedo()
}

// HistoryLen returns the number of recorded history entries.
func (n *Navigator) HistoryLen() int {
	return n.history.Len()
}

// NavigateUp moves to the parent of the current directory. When the most
// recent history entry came from that same parent, this is identical to
// going back, so a plain undo is performed instead and the recorded scroll
// state is kept. Only the immediately preceding entry is inspected.
func (n *Navigator) NavigateUp() {
	parent := filepath.Dir(n.root)
	if parent == n.root {
		return
	}

	if last, ok := n.history.PeekUndo(); ok && last.old.Path == parent {
		n.Undo()
		return
	}

	n.RequestPathChange(parent)
}

// NavigateHome moves to the user's home directory through the normal
// path-change flow.
func (n *Navigator) NavigateHome() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	n.RequestPathChange(home)
}

// RequestPathChange navigates to the directory given in display form.
// Targets that do not exist, are not directories, or equal the current
// root are silently ignored. A successful change records exactly one
// history entry.
func (n *Navigator) RequestPathChange(display string) {
	path := canonicalPath(display)

	if !n.lister.IsDir(path) {
		return
	}
	if path == n.root {
		return
	}

	e := historyEntry{
		old: n.captureState(),
		new: NavState{Path: path, ScrollPos: -1},
	}
	n.history.Push(e)
	n.redoEntry(&n.history.entries[n.history.pos-1])
}

// Undo reverts the most recent navigation, restoring the prior directory
// together with its recorded scroll position and selection.
func (n *Navigator) Undo() {
	e, ok := n.history.Undo()
	if !ok {
		return
	}
	// Record where the view is now so a redo can come back exactly here.
	e.new = n.captureState()

	n.applyWithoutHistory(e.old.Path)
	if n.RestoreView != nil {
		n.RestoreView(e.old.ScrollPos, e.old.Selected)
	}
}

// Redo reapplies the most recently undone navigation.
func (n *Navigator) Redo() {
	e, ok := n.history.Redo()
	if !ok {
		return
	}
	n.redoEntry(e)
}

// Refresh reloads the current listing, preserving the view state.
func (n *Navigator) Refresh() {
	if n.root == "" {
		return
	}
	st := n.captureState()
	n.applyWithoutHistory(n.root)
	if n.RestoreView != nil {
		n.RestoreView(st.ScrollPos, st.Selected)
	}
}

// ActivateEntry handles single activation of a listing entry: directories
// are descended into, files are ignored.
func (n *Navigator) ActivateEntry(name string) {
	if e, ok := n.entry(name); ok && e.Dir {
		n.RequestPathChange(filepath.Join(n.root, name))
	}
}

// OpenEntry handles opening a listing entry: files are emitted as a Load
// event with their resolved file URL, directories are a no-op.
func (n *Navigator) OpenEntry(name string) {
	e, ok := n.entry(name)
	if !ok || e.Dir {
		return
	}
	urls := []string{fileURL(filepath.Join(n.root, name))}
	for _, fn := range n.load {
		fn(urls)
	}
}

// AppendToQueue emits a queue-append event for the named file entries.
func (n *Navigator) AppendToQueue(names []string) {
	if urls := n.fileURLs(names); len(urls) > 0 {
		for _, fn := range n.appendQueue {
			fn(urls)
		}
	}
}

// CopyToLibrary emits a library copy event for the named file entries.
func (n *Navigator) CopyToLibrary(names []string) {
	if paths := n.filePaths(names); len(paths) > 0 {
		for _, fn := range n.copyToLibrary {
			fn(paths)
		}
	}
}

// MoveToLibrary emits a library move event for the named file entries.
func (n *Navigator) MoveToLibrary(names []string) {
	if paths := n.filePaths(names); len(paths) > 0 {
		for _, fn := range n.moveToLibrary {
			fn(paths)
		}
	}
}

// ResolvePaths returns the absolute paths of the named file entries.
func (n *Navigator) ResolvePaths(names []string) []string {
	return n.filePaths(names)
}

// applyWithoutHistory unconditionally makes path the new root: the listing
// is reloaded, the up action recomputed, and observers notified. History
// is not touched.
func (n *Navigator) applyWithoutHistory(path string) {
	n.root = path

	n.entries, n.listErr = n.lister.List(path)
	if n.listErr != nil {
		n.entries = nil
	}

	parent := filepath.Dir(path)
	n.upEnabled = parent != path

	for _, fn := range n.pathChanged {
		fn(path)
	}
}

func (n *Navigator) redoEntry(e *historyEntry) {
	n.applyWithoutHistory(e.new.Path)
	if e.new.ScrollPos != -1 && n.RestoreView != nil {
		n.RestoreView(e.new.ScrollPos, e.new.Selected)
	}
}

func (n *Navigator) captureState() NavState {
	st := NavState{Path: n.root, ScrollPos: -1}
	if n.CaptureView != nil {
		st.ScrollPos, st.Selected = n.CaptureView()
	}
	return st
}

func (n *Navigator) entry(name string) (Entry, bool) {
	for _, e := range n.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func (n *Navigator) filePaths(names []string) []string {
	var paths []string
	for _, name := range names {
		if e, ok := n.entry(name); ok && !e.Dir {
			paths = append(paths, filepath.Join(n.root, name))
		}
	}
	return paths
}

func (n *Navigator) fileURLs(names []string) []string {
	var urls []string
	for _, p := range n.filePaths(names) {
		urls = append(urls, fileURL(p))
	}
	return urls
}

// canonicalPath converts a platform-displayed path to the canonical form
// used internally: "~" is expanded, separators normalized, and the path
// cleaned.
func canonicalPath(display string) string {
	path := display
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return filepath.Clean(filepath.FromSlash(path))
}

// fileURL resolves a local path to its file URL form.
func fileURL(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// LocalPath converts a file URL back to a local filesystem path. Non-file
// URLs are returned unchanged.
func LocalPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "file" {
		return rawURL
	}
	return filepath.FromSlash(u.Path)
}
