package workers

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"event-inbox/internal/database"
	"event-inbox/internal/email"
	"event-inbox/internal/extractor"
)

// LaunchConfig configures one inbox scan run
type LaunchConfig struct {
	MaxEmails         int64
	LookbackDays      int
	Concurrency       int
	ProcessingTimeout time.Duration
}

// SetDefaults fills unset fields with production defaults
func (c *LaunchConfig) SetDefaults() {
	if c.MaxEmails == 0 {
		c.MaxEmails = 50
	}
	if c.LookbackDays == 0 {
		c.LookbackDays = 7
	}
	if c.Concurrency == 0 {
		c.Concurrency = 10
	}
	if c.ProcessingTimeout == 0 {
		c.ProcessingTimeout = 5 * time.Minute
	}
}

// LaunchSummary reports the outcome of one scan run
type LaunchSummary struct {
	LaunchID       int `json:"launch_id"`
	EmailsFetched  int `json:"emails_fetched"`
	EmailsInserted int `json:"emails_inserted"`
	EventsInserted int `json:"events_inserted"`
	Failures       int `json:"failures"`
}

// LaunchProcessor runs the fetch → decode → extract → persist pipeline over
// a batch of mailbox messages.
type LaunchProcessor struct {
	fetcher  email.Fetcher
	llm      extractor.LLMClient
	resolver *extractor.Resolver
	db       *database.DB
	config   LaunchConfig
	logger   *slog.Logger
}

func NewLaunchProcessor(
	fetcher email.Fetcher,
	llm extractor.LLMClient,
	db *database.DB,
	config LaunchConfig,
	logger *slog.Logger,
) *LaunchProcessor {
	config.SetDefaults()
	return &LaunchProcessor{
		fetcher:  fetcher,
		llm:      llm,
		resolver: extractor.NewResolver(),
		db:       db,
		config:   config,
		logger:   logger,
	}
}

// Run executes one scan. Messages are processed concurrently up to the
// configured bound; a failure in one email never aborts the others, and an
// email is persisted even when extraction for it fails. Only a listing
// failure makes the whole run fail.
func (p *LaunchProcessor) Run(ctx context.Context) (*LaunchSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.ProcessingTimeout)
	defer cancel()

	startedAt := time.Now().UTC()
	launchID, err := p.db.Launches.Start(startedAt)
	if err != nil {
		return nil, err
	}

	since := startedAt.AddDate(0, 0, -p.config.LookbackDays)
	messages, err := p.fetcher.FetchSince(p.config.MaxEmails, since)
	if err != nil {
		p.logger.Error("Failed to fetch email list", "error", err)
		return nil, err
	}

	p.logger.Info("Starting inbox scan",
		"launch_id", launchID,
		"emails", len(messages),
		"concurrency", p.config.Concurrency)

	var emailsInserted, eventsInserted, failures atomic.Int64

	var wg sync.WaitGroup
	sem := make(chan struct{}, p.config.Concurrency)
	for _, raw := range messages {
		select {
		case <-ctx.Done():
			p.logger.Warn("Scan cancelled", "launch_id", launchID)
		case sem <- struct{}{}:
			wg.Add(1)
			go func(raw email.RawMessage) {
				defer wg.Done()
				defer func() { <-sem }()

				inserted, events, err := p.processOne(ctx, raw)
				if err != nil {
					failures.Add(1)
					p.logger.Error("Failed to process email",
						"message_id", raw.ID,
						"error", err)
				}
				if inserted {
					emailsInserted.Add(1)
				}
				eventsInserted.Add(int64(events))
			}(raw)
			continue
		}
		break
	}
	wg.Wait()

	summary := &LaunchSummary{
		LaunchID:       launchID,
		EmailsFetched:  len(messages),
		EmailsInserted: int(emailsInserted.Load()),
		EventsInserted: int(eventsInserted.Load()),
		Failures:       int(failures.Load()),
	}

	if err := p.db.Launches.Finish(launchID, time.Now().UTC(),
		summary.EmailsFetched, summary.EmailsInserted, summary.EventsInserted, summary.Failures); err != nil {
		p.logger.Error("Failed to record launch outcome", "launch_id", launchID, "error", err)
	}

	p.logger.Info("Inbox scan finished",
		"launch_id", launchID,
		"emails_inserted", summary.EmailsInserted,
		"events_inserted", summary.EventsInserted,
		"failures", summary.Failures)

	return summary, nil
}

// processOne handles a single message end to end. The email row is written
// before extraction runs, so an extraction failure leaves the email behind
// for a later retry.
func (p *LaunchProcessor) processOne(ctx context.Context, raw email.RawMessage) (inserted bool, events int, err error) {
	decoded := email.Decode(raw.Payload)
	normalized := email.Normalize(raw, decoded)

	record := &database.Email{
		MessageID:  normalized.MessageID,
		ThreadID:   normalized.ThreadID,
		Subject:    normalized.Subject,
		Sender:     normalized.Sender,
		Content:    normalized.Content,
		Links:      normalized.Links,
		Truncated:  normalized.Truncated,
		ReceivedAt: normalized.ReceivedAt,
	}
	emailID, err := p.db.Emails.Upsert(record)
	if err != nil {
		return false, 0, err
	}

	candidates, err := p.llm.ExtractEvents(ctx, normalized)
	if err != nil {
		return true, 0, err
	}

	reference := normalized.ReceivedAt
	if reference.IsZero() {
		reference = time.Now().UTC()
	}

	for _, candidate := range candidates {
		resolved, ok := p.resolver.Resolve(candidate, reference)
		if !ok {
			p.logger.Debug("Dropping candidate without resolvable start",
				"message_id", normalized.MessageID,
				"candidate", candidate.Name)
			continue
		}

		event := &database.SuggestedEvent{
			EmailID:          emailID,
			Title:            resolved.Title,
			Description:      resolved.Description,
			Location:         resolved.Location,
			SenderOrg:        resolved.SenderOrg,
			RegistrationLink: resolved.RegistrationLink,
			StartTime:        resolved.Start,
			EndTime:          resolved.End,
		}
		if err := p.db.SuggestedEvents.Create(event); err != nil {
			return true, events, err
		}
		events++
	}

	return true, events, nil
}
