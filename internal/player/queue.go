package player

import "sync"

// QueuedTrack is one entry of the play queue.
type QueuedTrack struct {
	URL   string
	Title string
}

// Queue is the in-memory play queue. The current position advances with
// Next and retreats with Prev; appending never changes the position.
type Queue struct {
	mutex  sync.Mutex
	tracks []QueuedTrack
	pos    int
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{pos: -1}
}

// Append adds tracks to the end of the queue.
func (q *Queue) Append(tracks ...QueuedTrack) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.tracks = append(q.tracks, tracks...)
}

// Current returns the track at the play position.
func (q *Queue) Current() (QueuedTrack, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.pos < 0 || q.pos >= len(q.tracks) {
		return QueuedTrack{}, false
	}
	return q.tracks[q.pos], true
}

// Next advances to the following track and returns it.
func (q *Queue) Next() (QueuedTrack, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.pos+1 >= len(q.tracks) {
		return QueuedTrack{}, false
	}
	q.pos++
	return q.tracks[q.pos], true
}

// Prev steps back to the previous track and returns it.
func (q *Queue) Prev() (QueuedTrack, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.pos <= 0 {
		return QueuedTrack{}, false
	}
	q.pos--
	return q.tracks[q.pos], true
}

// Jump moves the play position to the given index.
func (q *Queue) Jump(i int) (QueuedTrack, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if i < 0 || i >= len(q.tracks) {
		return QueuedTrack{}, false
	}
	q.pos = i
	return q.tracks[q.pos], true
}

// Tracks returns a copy of the queued tracks.
func (q *Queue) Tracks() []QueuedTrack {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	out := make([]QueuedTrack, len(q.tracks))
	copy(out, q.tracks)
	return out
}

// Pos returns the current play position, or -1 before playback starts.
func (q *Queue) Pos() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.pos
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.tracks)
}

// Clear empties the queue and resets the play position.
func (q *Queue) Clear() {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	q.tracks = nil
	q.pos = -1
}
