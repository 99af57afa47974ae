package database

import (
	"time"
)

// Suggested event review statuses. The status machine is one-way: a pending
// event becomes approved or rejected, and neither terminal state can change.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Email is one processed mailbox message. Content is the plain-text body
// already capped at the model character budget; Links is the ordered list of
// URLs recovered from the HTML body.
type Email struct {
	ID         int       `json:"id"`
	MessageID  string    `json:"message_id"`
	ThreadID   string    `json:"thread_id"`
	Subject    string    `json:"subject"`
	Sender     string    `json:"sender"`
	Content    string    `json:"content"`
	Links      []string  `json:"links"`
	Truncated  bool      `json:"truncated"`
	ReceivedAt time.Time `json:"received_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// SuggestedEvent is an extracted event awaiting review. EndTime is nil when
// the source email gave no usable end time.
type SuggestedEvent struct {
	ID               int        `json:"id"`
	EmailID          int        `json:"email_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Location         string     `json:"location"`
	SenderOrg        string     `json:"sender_org"`
	RegistrationLink string     `json:"registration_link,omitempty"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// IsPending reports whether the event can still be accepted or rejected.
func (e *SuggestedEvent) IsPending() bool {
	return e.Status == StatusPending
}

// SavedEvent is the scheduled copy of an accepted suggested event.
// CalendarEventID is set once the event has been pushed to the external
// calendar.
type SavedEvent struct {
	ID               int        `json:"id"`
	SuggestedEventID int        `json:"suggested_event_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Location         string     `json:"location"`
	RegistrationLink string     `json:"registration_link,omitempty"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	CalendarEventID  string     `json:"calendar_event_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// Launch records one inbox scan run and its outcome counts.
type Launch struct {
	ID             int        `json:"id"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
	EmailsFetched  int        `json:"emails_fetched"`
	EmailsInserted int        `json:"emails_inserted"`
	EventsInserted int        `json:"events_inserted"`
	Failures       int        `json:"failures"`
}
