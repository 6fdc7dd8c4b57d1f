package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Event represents one gesture activation edge recorded in the log.
type Event struct {
	ID        string
	Gesture   string
	ObjectID  string
	CreatedAt time.Time
}

// EventRepository provides access to the gesture event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts an activation event and returns its generated ID. An
// empty objectID is stored as NULL so the foreign key stays satisfied.
func (r *EventRepository) Record(gesture, objectID string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(
		`INSERT INTO events (id, gesture, object_id, created_at) VALUES (?, ?, ?, ?)`,
		id, gesture, sql.NullString{String: objectID, Valid: objectID != ""}, time.Now(),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListRecent retrieves the most recent events, newest first.
func (r *EventRepository) ListRecent(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, gesture, COALESCE(object_id, ''), created_at
		 FROM events ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.Gesture, &e.ObjectID, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountByGesture returns activation counts keyed by gesture name.
func (r *EventRepository) CountByGesture() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT gesture, COUNT(*) FROM events GROUP BY gesture`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var gesture string
		var n int
		if err := rows.Scan(&gesture, &n); err != nil {
			return nil, err
		}
		counts[gesture] = n
	}

	return counts, rows.Err()
}

// Prune deletes events older than the given age.
func (r *EventRepository) Prune(olderThan time.Duration) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM events WHERE created_at < ?`, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
