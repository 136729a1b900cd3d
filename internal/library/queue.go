package library

import (
	"database/sql"
	"fmt"
)

// QueueItem is one entry of the persisted play queue.
type QueueItem struct {
	Position int
	URL      string
	Title    string
}

// QueueStore persists the play queue across sessions.
type QueueStore struct {
	db *DB
}

// NewQueueStore creates a queue store backed by the given database.
func NewQueueStore(db *DB) *QueueStore {
	return &QueueStore{db: db}
}

// Replace overwrites the stored queue with the given items.
func (qs *QueueStore) Replace(items []QueueItem) error {
	tx, err := qs.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning queue transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM queue`); err != nil {
		return fmt.Errorf("clearing queue: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO queue (position, url, title) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing queue insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		if _, err := stmt.Exec(i, item.URL, item.Title); err != nil {
			return fmt.Errorf("inserting queue item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing queue: %w", err)
	}
	return nil
}

// List returns the stored queue in order.
func (qs *QueueStore) List() ([]QueueItem, error) {
	rows, err := qs.db.conn.Query(`
		SELECT position, url, title
		FROM queue
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying queue: %w", err)
	}
	defer rows.Close()

	var items []QueueItem
	for rows.Next() {
		var item QueueItem
		if err := rows.Scan(&item.Position, &item.URL, &item.Title); err != nil {
			return nil, fmt.Errorf("scanning queue item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Clear removes all stored queue items.
func (qs *QueueStore) Clear() error {
	_, err := qs.db.conn.Exec(`DELETE FROM queue`)
	if err != nil {
		return fmt.Errorf("clearing queue: %w", err)
	}
	return nil
}

// Len returns the number of stored queue items.
func (qs *QueueStore) Len() (int, error) {
	var count int
	err := qs.db.conn.QueryRow(`SELECT COUNT(*) FROM queue`).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("counting queue: %w", err)
	}
	return count, nil
}
