package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"event-inbox/internal/database"
)

// defaultDuration is used when a saved event has no end time.
const defaultDuration = time.Hour

// Client pushes saved events to a Google Calendar.
type Client struct {
	service    *gcal.Service
	calendarID string
	userEmail  string
	logger     *slog.Logger
}

// NewClient builds a calendar client using a pre-obtained OAuth access token.
// calendarID is usually "primary". When userEmail is set, inserted events list
// the owner as an attendee.
func NewClient(ctx context.Context, accessToken, calendarID, userEmail string, logger *slog.Logger) (*Client, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("calendar access token is required")
	}
	if calendarID == "" {
		calendarID = "primary"
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	service, err := gcal.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &Client{service: service, calendarID: calendarID, userEmail: userEmail, logger: logger}, nil
}

// InsertEvent creates a tentative calendar entry for a saved event and
// returns the calendar's event ID and browser link. A missing end time
// schedules the default one-hour slot.
func (c *Client) InsertEvent(ctx context.Context, event *database.SavedEvent) (id, htmlLink string, err error) {
	end := event.StartTime.Add(defaultDuration)
	if event.EndTime != nil {
		end = *event.EndTime
	}

	entry := &gcal.Event{
		Summary:     event.Title,
		Description: buildDescription(event),
		Location:    event.Location,
		Status:      "tentative",
		Start:       &gcal.EventDateTime{DateTime: event.StartTime.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}
	if c.userEmail != "" {
		entry.Attendees = []*gcal.EventAttendee{{Email: c.userEmail, Self: true}}
	}

	created, err := c.service.Events.Insert(c.calendarID, entry).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to insert calendar event: %w", err)
	}

	c.logger.Info("calendar event created",
		"saved_event_id", event.ID,
		"calendar_event_id", created.Id)

	return created.Id, created.HtmlLink, nil
}

// buildDescription folds the registration link into the event description so
// it survives the trip into the calendar UI.
func buildDescription(event *database.SavedEvent) string {
	var b strings.Builder
	b.WriteString(event.Description)
	if event.RegistrationLink != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Registration: ")
		b.WriteString(event.RegistrationLink)
	}
	return b.String()
}
