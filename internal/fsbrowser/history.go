package fsbrowser

// NavState is a snapshot of the browser view at one point in history.
// ScrollPos is -1 until a position has been recorded for the state.
type NavState struct {
	Path      string
	ScrollPos int
	Selected  string // name of the highlighted entry, "" when none
}

// historyEntry pairs the view states on either side of one directory change.
// Undoing an entry records the current view into new so a later redo can
// restore it exactly.
type historyEntry struct {
	old NavState
	new NavState
}

// History manages an undo/redo list of directory changes.
type History struct {
	entries []historyEntry
	pos     int // number of applied entries; entries[:pos] are behind us
}

// NewHistory creates an empty navigation history.
func NewHistory() *History {
	return &History{}
}

// Push records a new entry as applied, truncating any redo entries.
func (h *History) Push(e historyEntry) {
	if h.pos < len(h.entries) {
		h.entries = h.entries[:h.pos]
	}
	h.entries = append(h.entries, e)
	h.pos = len(h.entries)
}

// Undo moves one step back and returns the entry to unapply.
func (h *History) Undo() (*historyEntry, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.pos--
	return &h.entries[h.pos], true
}

// Redo moves one step forward and returns the entry to reapply.
func (h *History) Redo() (*historyEntry, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	e := &h.entries[h.pos]
	h.pos++
	return e, true
}

// PeekUndo returns the most recently applied entry without moving.
func (h *History) PeekUndo() (*historyEntry, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	return &h.entries[h.pos-1], true
}

// CanUndo reports whether there is an applied entry to undo.
func (h *History) CanUndo() bool {
	return h.pos > 0
}

// CanRedo reports whether there is an unapplied entry ahead.
func (h *History) CanRedo() bool {
	return h.pos < len(h.entries)
}

// Len returns the total number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Clear resets the history.
func (h *History) Clear() {
	h.entries = nil
	h.pos = 0
}
