package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"event-inbox/internal/database"
	"event-inbox/internal/email"
	"event-inbox/internal/extractor"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fakeFetcher serves a canned message list
type fakeFetcher struct {
	messages []email.RawMessage
	err      error
}

func (f *fakeFetcher) FetchSince(maxResults int64, since time.Time) ([]email.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.messages, nil
}

func (f *fakeFetcher) HealthCheck() error { return nil }

// fakeLLM returns canned candidates per message ID and tracks concurrency
type fakeLLM struct {
	mu         sync.Mutex
	candidates map[string][]extractor.EventCandidate
	failFor    map[string]bool
	inFlight   atomic.Int64
	maxSeen    atomic.Int64
}

func (f *fakeLLM) ExtractEvents(ctx context.Context, msg email.NormalizedEmail) ([]extractor.EventCandidate, error) {
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		max := f.maxSeen.Load()
		if current <= max || f.maxSeen.CompareAndSwap(max, current) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[msg.MessageID] {
		return nil, fmt.Errorf("model unavailable")
	}
	return f.candidates[msg.MessageID], nil
}

func rawMessage(id string) email.RawMessage {
	return email.RawMessage{
		ID:           id,
		ThreadID:     "thr-" + id,
		InternalDate: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC).UnixMilli(),
		Headers: map[string]string{
			"Subject": "Invitation " + id,
			"From":    "host@example.com",
		},
	}
}

func TestLaunchProcessor_PersistsEmailsAndEvents(t *testing.T) {
	db := testDB(t)
	fetcher := &fakeFetcher{messages: []email.RawMessage{rawMessage("m1")}}
	llm := &fakeLLM{candidates: map[string][]extractor.EventCandidate{
		"m1": {{Name: "Team Sync", StartTimeText: "Friday 3pm", Description: "Weekly sync."}},
	}}

	p := NewLaunchProcessor(fetcher, llm, db, LaunchConfig{}, testLogger())
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.EmailsFetched != 1 || summary.EmailsInserted != 1 {
		t.Errorf("Expected 1 email fetched and inserted, got %+v", summary)
	}
	if summary.EventsInserted != 1 {
		t.Errorf("Expected 1 event inserted, got %d", summary.EventsInserted)
	}
	if summary.Failures != 0 {
		t.Errorf("Expected no failures, got %d", summary.Failures)
	}

	events, err := db.SuggestedEvents.GetByStatus(database.StatusPending)
	if err != nil {
		t.Fatalf("Failed to list events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 pending event, got %d", len(events))
	}

	// Reference anchor is the email's received time: Monday June 3 → Friday June 7.
	want := time.Date(2024, 6, 7, 15, 0, 0, 0, time.UTC)
	if !events[0].StartTime.Equal(want) {
		t.Errorf("Expected start %v, got %v", want, events[0].StartTime)
	}
}

func TestLaunchProcessor_ExtractionFailureKeepsEmail(t *testing.T) {
	db := testDB(t)
	fetcher := &fakeFetcher{messages: []email.RawMessage{rawMessage("m1"), rawMessage("m2")}}
	llm := &fakeLLM{
		failFor: map[string]bool{"m1": true},
		candidates: map[string][]extractor.EventCandidate{
			"m2": {{Name: "Survivor", StartTimeText: "tomorrow at 10am"}},
		},
	}

	p := NewLaunchProcessor(fetcher, llm, db, LaunchConfig{}, testLogger())
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Failures != 1 {
		t.Errorf("Expected 1 failure, got %d", summary.Failures)
	}
	if summary.EmailsInserted != 2 {
		t.Errorf("Expected both emails persisted despite one extraction failure, got %d", summary.EmailsInserted)
	}
	if summary.EventsInserted != 1 {
		t.Errorf("Expected the healthy email's event inserted, got %d", summary.EventsInserted)
	}

	// The failing email's row must exist.
	if _, err := db.Emails.GetByMessageID("m1"); err != nil {
		t.Errorf("Expected failed email persisted, got %v", err)
	}
}

func TestLaunchProcessor_NoCandidatesIsNotAFailure(t *testing.T) {
	db := testDB(t)
	fetcher := &fakeFetcher{messages: []email.RawMessage{rawMessage("m1")}}
	llm := &fakeLLM{}

	p := NewLaunchProcessor(fetcher, llm, db, LaunchConfig{}, testLogger())
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Failures != 0 || summary.EventsInserted != 0 || summary.EmailsInserted != 1 {
		t.Errorf("Expected clean run with no events, got %+v", summary)
	}
}

func TestLaunchProcessor_UnresolvableStartDropsCandidate(t *testing.T) {
	db := testDB(t)
	fetcher := &fakeFetcher{messages: []email.RawMessage{rawMessage("m1")}}
	llm := &fakeLLM{candidates: map[string][]extractor.EventCandidate{
		"m1": {
			{Name: "No Start", StartTimeText: "sometime eventually"},
			{Name: "Has Start", StartTimeText: "Friday 3pm"},
		},
	}}

	p := NewLaunchProcessor(fetcher, llm, db, LaunchConfig{}, testLogger())
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.EventsInserted != 1 {
		t.Errorf("Expected only the resolvable candidate inserted, got %d", summary.EventsInserted)
	}
	if summary.Failures != 0 {
		t.Errorf("Dropping a candidate is not a failure, got %d", summary.Failures)
	}
}

func TestLaunchProcessor_ListingFailureAbortsRun(t *testing.T) {
	db := testDB(t)
	fetcher := &fakeFetcher{err: fmt.Errorf("error fetching email list: 403 forbidden")}
	llm := &fakeLLM{}

	p := NewLaunchProcessor(fetcher, llm, db, LaunchConfig{}, testLogger())
	if _, err := p.Run(context.Background()); err == nil {
		t.Fatal("Expected listing failure to abort the run")
	}
}

func TestLaunchProcessor_ConcurrencyBounded(t *testing.T) {
	db := testDB(t)

	var messages []email.RawMessage
	for i := 0; i < 20; i++ {
		messages = append(messages, rawMessage(fmt.Sprintf("m%d", i)))
	}
	fetcher := &fakeFetcher{messages: messages}
	llm := &fakeLLM{}

	p := NewLaunchProcessor(fetcher, llm, db, LaunchConfig{Concurrency: 3}, testLogger())
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if max := llm.maxSeen.Load(); max > 3 {
		t.Errorf("Expected at most 3 concurrent extractions, saw %d", max)
	}
}

func TestScanner_StartAndStop(t *testing.T) {
	db := testDB(t)
	fetcher := &fakeFetcher{}
	llm := &fakeLLM{}
	p := NewLaunchProcessor(fetcher, llm, db, LaunchConfig{}, testLogger())

	s := NewScanner(p, ScannerConfig{
		CheckInterval: time.Hour,
		InitialDelay:  time.Millisecond,
	}, testLogger())

	s.Start()
	if !s.IsRunning() {
		t.Error("Expected scanner running after Start")
	}

	// Let the initial run fire and record a launch.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		launches, err := db.Launches.GetRecent(1)
		if err != nil {
			t.Fatalf("GetRecent failed: %v", err)
		}
		if len(launches) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("Expected scanner stopped after Stop")
	}

	launches, err := db.Launches.GetRecent(1)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(launches) != 1 {
		t.Errorf("Expected exactly one scheduled run, got %d", len(launches))
	}
}
