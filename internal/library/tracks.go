package library

import (
	"database/sql"
	"time"
)

// Track is one song in the library.
type Track struct {
	ID       int64
	Path     string
	Title    string
	Artist   string
	Album    string
	Length   time.Duration
	FileSize int64
	AddedAt  time.Time
}

// TrackStore manages tracks persisted in SQLite.
type TrackStore struct {
	db *sql.DB
}

// NewTrackStore creates a track store using the given database.
func NewTrackStore(db *DB) *TrackStore {
	return &TrackStore{db: db.Conn()}
}

// Add inserts a track. Returns false if a track with the same path is
// already in the library.
func (ts *TrackStore) Add(t Track) bool {
	res, err := ts.db.Exec(
		`INSERT OR IGNORE INTO tracks (path, title, artist, album, length_sec, file_size)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Path, t.Title, t.Artist, t.Album, int(t.Length.Seconds()), t.FileSize,
	)
	if err != nil {
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

// Remove deletes a track by path. Returns false if not found.
func (ts *TrackStore) Remove(path string) bool {
	res, err := ts.db.Exec(`DELETE FROM tracks WHERE path = ?`, path)
	if err != nil {
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

// Has reports whether a path is already in the library.
func (ts *TrackStore) Has(path string) bool {
	var count int
	err := ts.db.QueryRow(`SELECT COUNT(*) FROM tracks WHERE path = ?`, path).Scan(&count)
	return err == nil && count > 0
}

// List returns all tracks ordered by artist, album, title.
func (ts *TrackStore) List() []Track {
	rows, err := ts.db.Query(
		`SELECT id, path, title, artist, album, length_sec, file_size, added_at
		 FROM tracks ORDER BY artist, album, title`,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()
	return scanTracks(rows)
}

// Search finds tracks whose title, artist or album contains the query.
func (ts *TrackStore) Search(query string) []Track {
	like := "%" + query + "%"
	rows, err := ts.db.Query(
		`SELECT id, path, title, artist, album, length_sec, file_size, added_at
		 FROM tracks
		 WHERE title LIKE ? OR artist LIKE ? OR album LIKE ?
		 ORDER BY artist, album, title`,
		like, like, like,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()
	return scanTracks(rows)
}

// Count returns the number of tracks in the library.
func (ts *TrackStore) Count() int {
	var count int
	ts.db.QueryRow(`SELECT COUNT(*) FROM tracks`).Scan(&count)
	return count
}

func scanTracks(rows *sql.Rows) []Track {
	var tracks []Track
	for rows.Next() {
		var t Track
		var lengthSec int
		var addedAt string
		if err := rows.Scan(&t.ID, &t.Path, &t.Title, &t.Artist, &t.Album,
			&lengthSec, &t.FileSize, &addedAt); err != nil {
			continue
		}
		t.Length = time.Duration(lengthSec) * time.Second
		t.AddedAt, _ = time.Parse("2006-01-02 15:04:05", addedAt)
		tracks = append(tracks, t)
	}
	return tracks
}
