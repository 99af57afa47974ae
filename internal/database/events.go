package database

import (
	"database/sql"
	"fmt"
	"time"
)

// ErrNotPending is returned when an accept or reject targets an event that
// has already left the pending state.
var ErrNotPending = fmt.Errorf("suggested event is not pending")

// SuggestedEventStore handles database operations for suggested events
type SuggestedEventStore struct {
	db *sql.DB
}

func NewSuggestedEventStore(db *sql.DB) *SuggestedEventStore {
	return &SuggestedEventStore{db: db}
}

// Create inserts a new suggested event in the pending state
func (s *SuggestedEventStore) Create(event *SuggestedEvent) error {
	query := `INSERT INTO suggested_events
			  (email_id, title, description, location, sender_org, registration_link, start_time, end_time, status)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.Exec(query,
		event.EmailID, event.Title, event.Description, event.Location,
		event.SenderOrg, event.RegistrationLink, event.StartTime, event.EndTime,
		StatusPending)
	if err != nil {
		return fmt.Errorf("failed to create suggested event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get suggested event ID: %w", err)
	}
	event.ID = int(id)
	event.Status = StatusPending
	return nil
}

// GetByID retrieves a suggested event by ID
func (s *SuggestedEventStore) GetByID(id int) (*SuggestedEvent, error) {
	row := s.db.QueryRow(selectSuggested+" WHERE id = ?", id)
	event, err := scanSuggested(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("suggested event not found: %d", id)
	}
	return event, err
}

// GetAll returns all suggested events, newest first
func (s *SuggestedEventStore) GetAll() ([]SuggestedEvent, error) {
	return s.queryEvents(selectSuggested + " ORDER BY created_at DESC, id DESC")
}

// GetByStatus returns suggested events in the given review state
func (s *SuggestedEventStore) GetByStatus(status string) ([]SuggestedEvent, error) {
	return s.queryEvents(selectSuggested+" WHERE status = ? ORDER BY start_time ASC, id ASC", status)
}

// Accept moves a pending event to approved and creates the linked saved
// event, both in one transaction. Returns the saved event.
func (s *SuggestedEventStore) Accept(id int) (*SavedEvent, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	saved, err := acceptInTx(tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit accept: %w", err)
	}
	return saved, nil
}

// Reject moves a pending event to rejected
func (s *SuggestedEventStore) Reject(id int) error {
	result, err := s.db.Exec(
		`UPDATE suggested_events SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
		StatusRejected, id, StatusPending)
	if err != nil {
		return fmt.Errorf("failed to reject suggested event: %w", err)
	}
	return requireOneRow(result, id)
}

// BulkAccept accepts every listed pending event in a single transaction.
// If any event is missing or not pending, no event is accepted.
func (s *SuggestedEventStore) BulkAccept(ids []int) ([]SavedEvent, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	saved := make([]SavedEvent, 0, len(ids))
	for _, id := range ids {
		event, err := acceptInTx(tx, id)
		if err != nil {
			return nil, fmt.Errorf("bulk accept aborted at event %d: %w", id, err)
		}
		saved = append(saved, *event)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bulk accept: %w", err)
	}
	return saved, nil
}

// BulkReject rejects every listed pending event in a single transaction,
// with the same all-or-nothing behavior as BulkAccept.
func (s *SuggestedEventStore) BulkReject(ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		result, err := tx.Exec(
			`UPDATE suggested_events SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
			StatusRejected, id, StatusPending)
		if err != nil {
			return fmt.Errorf("failed to reject event %d: %w", id, err)
		}
		if err := requireOneRow(result, id); err != nil {
			return fmt.Errorf("bulk reject aborted at event %d: %w", id, err)
		}
	}

	return tx.Commit()
}

// Delete removes a suggested event. Any linked saved event goes with it via
// the cascade.
func (s *SuggestedEventStore) Delete(id int) error {
	result, err := s.db.Exec("DELETE FROM suggested_events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete suggested event: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("suggested event not found: %d", id)
	}
	return nil
}

func (s *SuggestedEventStore) queryEvents(query string, args ...interface{}) ([]SuggestedEvent, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query suggested events: %w", err)
	}
	defer rows.Close()

	var events []SuggestedEvent
	for rows.Next() {
		event, err := scanSuggested(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

// acceptInTx performs the status flip and saved-event insert for one event
// inside an existing transaction.
func acceptInTx(tx *sql.Tx, id int) (*SavedEvent, error) {
	row := tx.QueryRow(selectSuggested+" WHERE id = ?", id)
	event, err := scanSuggested(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("suggested event not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	if !event.IsPending() {
		return nil, fmt.Errorf("%w: event %d is %s", ErrNotPending, id, event.Status)
	}

	if _, err := tx.Exec(
		`UPDATE suggested_events SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		StatusApproved, id); err != nil {
		return nil, fmt.Errorf("failed to approve event %d: %w", id, err)
	}

	saved := SavedEvent{
		SuggestedEventID: event.ID,
		Title:            event.Title,
		Description:      event.Description,
		Location:         event.Location,
		RegistrationLink: event.RegistrationLink,
		StartTime:        event.StartTime,
		EndTime:          event.EndTime,
		CreatedAt:        time.Now().UTC(),
	}
	result, err := tx.Exec(
		`INSERT INTO saved_events (suggested_event_id, title, description, location, registration_link, start_time, end_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		saved.SuggestedEventID, saved.Title, saved.Description, saved.Location,
		saved.RegistrationLink, saved.StartTime, saved.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to create saved event for %d: %w", id, err)
	}
	savedID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	saved.ID = int(savedID)
	return &saved, nil
}

func requireOneRow(result sql.Result, id int) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: event %d", ErrNotPending, id)
	}
	return nil
}

const selectSuggested = `SELECT id, email_id, title, description, location, sender_org, registration_link, start_time, end_time, status, created_at, updated_at FROM suggested_events`

func scanSuggested(row rowScanner) (*SuggestedEvent, error) {
	var event SuggestedEvent
	err := row.Scan(&event.ID, &event.EmailID, &event.Title, &event.Description,
		&event.Location, &event.SenderOrg, &event.RegistrationLink,
		&event.StartTime, &event.EndTime, &event.Status,
		&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// SavedEventStore handles database operations for saved (scheduled) events
type SavedEventStore struct {
	db *sql.DB
}

func NewSavedEventStore(db *sql.DB) *SavedEventStore {
	return &SavedEventStore{db: db}
}

// GetAll returns all saved events ordered by start time
func (s *SavedEventStore) GetAll() ([]SavedEvent, error) {
	rows, err := s.db.Query(selectSaved + " ORDER BY start_time ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query saved events: %w", err)
	}
	defer rows.Close()

	var events []SavedEvent
	for rows.Next() {
		event, err := scanSaved(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

// GetByID retrieves a saved event by ID
func (s *SavedEventStore) GetByID(id int) (*SavedEvent, error) {
	row := s.db.QueryRow(selectSaved+" WHERE id = ?", id)
	event, err := scanSaved(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("saved event not found: %d", id)
	}
	return event, err
}

// SetCalendarEventID records the external calendar ID after a push
func (s *SavedEventStore) SetCalendarEventID(id int, calendarEventID string) error {
	result, err := s.db.Exec(
		"UPDATE saved_events SET calendar_event_id = ? WHERE id = ?",
		calendarEventID, id)
	if err != nil {
		return fmt.Errorf("failed to set calendar event ID: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("saved event not found: %d", id)
	}
	return nil
}

const selectSaved = `SELECT id, suggested_event_id, title, description, location, registration_link, start_time, end_time, calendar_event_id, created_at FROM saved_events`

func scanSaved(row rowScanner) (*SavedEvent, error) {
	var event SavedEvent
	err := row.Scan(&event.ID, &event.SuggestedEventID, &event.Title,
		&event.Description, &event.Location, &event.RegistrationLink,
		&event.StartTime, &event.EndTime, &event.CalendarEventID,
		&event.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
