package email

import (
	"time"
)

// MessagePart is one node of a (possibly nested) MIME payload tree. A leaf
// carries a base64url-encoded body; an intermediate node carries child parts.
type MessagePart struct {
	MimeType string         `json:"mime_type"`
	Body     string         `json:"body,omitempty"`
	Parts    []*MessagePart `json:"parts,omitempty"`
}

// RawMessage is an immutable mailbox record as returned by the detail fetch.
// InternalDate is milliseconds since the Unix epoch, as reported by Gmail.
type RawMessage struct {
	ID           string            `json:"id"`
	ThreadID     string            `json:"thread_id"`
	InternalDate int64             `json:"internal_date"`
	Headers      map[string]string `json:"headers"`
	Payload      *MessagePart      `json:"payload"`
}

// DecodedContent holds the bodies recovered from a RawMessage's MIME tree.
// Links come from the HTML body and are reported verbatim, in document order;
// deduplication and URL validation are left to consumers.
type DecodedContent struct {
	Body  string   `json:"body"`
	HTML  string   `json:"html"`
	Links []string `json:"links"`
}

// NormalizedEmail is the persisted form of one mailbox message: metadata plus
// a plain-text body capped at the model character budget.
type NormalizedEmail struct {
	MessageID  string    `json:"message_id"`
	ThreadID   string    `json:"thread_id"`
	Subject    string    `json:"subject"`
	Sender     string    `json:"sender"`
	Content    string    `json:"content"`
	ReceivedAt time.Time `json:"received_at"`
	Links      []string  `json:"links"`
	Truncated  bool      `json:"truncated"`
}

// Fetcher retrieves a bounded page of raw mailbox messages.
type Fetcher interface {
	// FetchSince returns up to maxResults messages received after the given
	// date. A zero date means no lower bound.
	FetchSince(maxResults int64, since time.Time) ([]RawMessage, error)

	// HealthCheck verifies the mailbox connection is working.
	HealthCheck() error
}
