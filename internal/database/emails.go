package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// EmailStore handles database operations for processed emails
type EmailStore struct {
	db *sql.DB
}

func NewEmailStore(db *sql.DB) *EmailStore {
	return &EmailStore{db: db}
}

// Upsert inserts an email keyed by its mailbox message ID, updating the
// stored content if the message was seen before. Returns the row ID.
func (s *EmailStore) Upsert(email *Email) (int, error) {
	links, err := json.Marshal(email.Links)
	if err != nil {
		return 0, fmt.Errorf("failed to encode links: %w", err)
	}

	query := `INSERT INTO emails (message_id, thread_id, subject, sender, content, links, truncated, received_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(message_id) DO UPDATE SET
				  thread_id = excluded.thread_id,
				  subject = excluded.subject,
				  sender = excluded.sender,
				  content = excluded.content,
				  links = excluded.links,
				  truncated = excluded.truncated,
				  received_at = excluded.received_at`

	if _, err := s.db.Exec(query,
		email.MessageID, email.ThreadID, email.Subject, email.Sender,
		email.Content, string(links), email.Truncated, email.ReceivedAt); err != nil {
		return 0, fmt.Errorf("failed to upsert email: %w", err)
	}

	var id int
	if err := s.db.QueryRow("SELECT id FROM emails WHERE message_id = ?", email.MessageID).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read back email id: %w", err)
	}
	email.ID = id
	return id, nil
}

// GetByMessageID retrieves an email by its mailbox message ID
func (s *EmailStore) GetByMessageID(messageID string) (*Email, error) {
	row := s.db.QueryRow(selectEmail+" WHERE message_id = ?", messageID)
	return scanEmail(row)
}

// GetByID retrieves an email by row ID
func (s *EmailStore) GetByID(id int) (*Email, error) {
	row := s.db.QueryRow(selectEmail+" WHERE id = ?", id)
	return scanEmail(row)
}

// GetAll returns all stored emails, newest first
func (s *EmailStore) GetAll() ([]Email, error) {
	rows, err := s.db.Query(selectEmail + " ORDER BY received_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query emails: %w", err)
	}
	defer rows.Close()

	var emails []Email
	for rows.Next() {
		email, err := scanEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, *email)
	}
	return emails, rows.Err()
}

const selectEmail = `SELECT id, message_id, thread_id, subject, sender, content, links, truncated, received_at, created_at FROM emails`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmail(row rowScanner) (*Email, error) {
	var email Email
	var links string
	err := row.Scan(&email.ID, &email.MessageID, &email.ThreadID, &email.Subject,
		&email.Sender, &email.Content, &links, &email.Truncated,
		&email.ReceivedAt, &email.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(links), &email.Links); err != nil {
		return nil, fmt.Errorf("failed to decode links for email %d: %w", email.ID, err)
	}
	return &email, nil
}
