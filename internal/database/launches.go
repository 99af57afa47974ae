package database

import (
	"database/sql"
	"fmt"
	"time"
)

// LaunchStore records inbox scan runs
type LaunchStore struct {
	db *sql.DB
}

func NewLaunchStore(db *sql.DB) *LaunchStore {
	return &LaunchStore{db: db}
}

// Start records the beginning of a scan run and returns its ID
func (s *LaunchStore) Start(startedAt time.Time) (int, error) {
	result, err := s.db.Exec("INSERT INTO launches (started_at) VALUES (?)", startedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to record launch: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// Finish stores the outcome counts for a completed run
func (s *LaunchStore) Finish(id int, finishedAt time.Time, emailsFetched, emailsInserted, eventsInserted, failures int) error {
	_, err := s.db.Exec(
		`UPDATE launches SET finished_at = ?, emails_fetched = ?, emails_inserted = ?, events_inserted = ?, failures = ? WHERE id = ?`,
		finishedAt, emailsFetched, emailsInserted, eventsInserted, failures, id)
	if err != nil {
		return fmt.Errorf("failed to finish launch: %w", err)
	}
	return nil
}

// GetRecent returns the most recent runs, newest first
func (s *LaunchStore) GetRecent(limit int) ([]Launch, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, finished_at, emails_fetched, emails_inserted, events_inserted, failures
		 FROM launches ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query launches: %w", err)
	}
	defer rows.Close()

	var launches []Launch
	for rows.Next() {
		var l Launch
		var finished sql.NullTime
		if err := rows.Scan(&l.ID, &l.StartedAt, &finished, &l.EmailsFetched,
			&l.EmailsInserted, &l.EventsInserted, &l.Failures); err != nil {
			return nil, err
		}
		if finished.Valid {
			t := finished.Time
			l.FinishedAt = &t
		}
		launches = append(launches, l)
	}
	return launches, rows.Err()
}
