package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// maxResultsCeiling is the upstream-imposed cap on a single listing call.
const maxResultsCeiling = 75

// Credentials holds the opaque access credential for the mailbox API. The
// surrounding application obtains the token once and threads it through; no
// environment lookups happen here.
type Credentials struct {
	AccessToken string
	UserEmail   string
}

// GmailFetcher implements Fetcher against the Gmail REST API.
type GmailFetcher struct {
	service *gmail.Service
	userID  string
	logger  *slog.Logger
}

// NewGmailFetcher creates a fetcher authenticated with the given credentials.
func NewGmailFetcher(ctx context.Context, creds Credentials, logger *slog.Logger) (*GmailFetcher, error) {
	if creds.AccessToken == "" {
		return nil, errors.New("gmail: access token is required")
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.AccessToken, TokenType: "Bearer"})
	service, err := gmail.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	userID := "me"
	if creds.UserEmail != "" {
		userID = creds.UserEmail
	}

	return &GmailFetcher{
		service: service,
		userID:  userID,
		logger:  logger,
	}, nil
}

// FetchSince lists message ids newer than the given date and fetches each
// message's full detail. A failed detail fetch is logged and that message is
// skipped; a failed listing call aborts the whole fetch with the upstream
// status and body.
func (g *GmailFetcher) FetchSince(maxResults int64, since time.Time) ([]RawMessage, error) {
	if maxResults <= 0 || maxResults > maxResultsCeiling {
		maxResults = maxResultsCeiling
	}

	req := g.service.Users.Messages.List(g.userID).MaxResults(maxResults)
	if !since.IsZero() {
		req = req.Q(fmt.Sprintf("after:%s", since.Format("2006/1/2")))
	}

	resp, err := req.Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("error fetching email list: %d %s", apiErr.Code, apiErr.Body)
		}
		return nil, fmt.Errorf("error fetching email list: %w", err)
	}

	var messages []RawMessage
	for _, msg := range resp.Messages {
		detail, err := g.service.Users.Messages.Get(g.userID, msg.Id).Format("full").Do()
		if err != nil {
			g.logger.Warn("Failed to fetch email detail, skipping", "message_id", msg.Id, "error", err)
			continue
		}
		messages = append(messages, fromGmailMessage(detail))
	}

	return messages, nil
}

// HealthCheck verifies the Gmail connection is working.
func (g *GmailFetcher) HealthCheck() error {
	profile, err := g.service.Users.GetProfile(g.userID).Do()
	if err != nil {
		return fmt.Errorf("failed to get Gmail profile: %w", err)
	}
	g.logger.Debug("Connected to Gmail account", "email", profile.EmailAddress)
	return nil
}

// fromGmailMessage converts a Gmail API message into the internal RawMessage
// form, flattening headers into a name→value map and copying the payload tree.
func fromGmailMessage(msg *gmail.Message) RawMessage {
	raw := RawMessage{
		ID:           msg.Id,
		ThreadID:     msg.ThreadId,
		InternalDate: msg.InternalDate,
		Headers:      make(map[string]string),
	}

	if msg.Payload != nil {
		for _, header := range msg.Payload.Headers {
			raw.Headers[header.Name] = header.Value
		}
		raw.Payload = fromGmailPart(msg.Payload)
	}

	return raw
}

func fromGmailPart(part *gmail.MessagePart) *MessagePart {
	node := &MessagePart{MimeType: part.MimeType}
	if part.Body != nil {
		node.Body = part.Body.Data
	}
	for _, child := range part.Parts {
		node.Parts = append(node.Parts, fromGmailPart(child))
	}
	return node
}
