package database

import (
	"testing"
	"time"
)

func TestEmailStore_UpsertInsertAndUpdate(t *testing.T) {
	db := setupTestDB(t)

	email := &Email{
		MessageID:  "msg-1",
		ThreadID:   "thr-1",
		Subject:    "Original",
		Sender:     "a@x.com",
		Content:    "first body",
		Links:      []string{"https://example.com/a"},
		ReceivedAt: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
	}

	id, err := db.Emails.Upsert(email)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	email.Subject = "Updated"
	email.Content = "second body"
	id2, err := db.Emails.Upsert(email)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if id2 != id {
		t.Errorf("Expected upsert to keep row ID %d, got %d", id, id2)
	}

	got, err := db.Emails.GetByMessageID("msg-1")
	if err != nil {
		t.Fatalf("GetByMessageID failed: %v", err)
	}
	if got.Subject != "Updated" || got.Content != "second body" {
		t.Errorf("Expected updated fields, got %+v", got)
	}
	if len(got.Links) != 1 || got.Links[0] != "https://example.com/a" {
		t.Errorf("Expected links round-tripped, got %v", got.Links)
	}
}

func TestEmailStore_GetAllNewestFirst(t *testing.T) {
	db := setupTestDB(t)

	older := &Email{MessageID: "old", ReceivedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	newer := &Email{MessageID: "new", ReceivedAt: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)}
	if _, err := db.Emails.Upsert(older); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := db.Emails.Upsert(newer); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	emails, err := db.Emails.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(emails) != 2 {
		t.Fatalf("Expected 2 emails, got %d", len(emails))
	}
	if emails[0].MessageID != "new" {
		t.Errorf("Expected newest first, got %s", emails[0].MessageID)
	}
}

func TestLaunchStore_StartAndFinish(t *testing.T) {
	db := setupTestDB(t)

	started := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	id, err := db.Launches.Start(started)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	finished := started.Add(30 * time.Second)
	if err := db.Launches.Finish(id, finished, 10, 8, 3, 2); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	launches, err := db.Launches.GetRecent(5)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(launches) != 1 {
		t.Fatalf("Expected 1 launch, got %d", len(launches))
	}

	l := launches[0]
	if l.FinishedAt == nil {
		t.Fatal("Expected finished_at set")
	}
	if l.EmailsFetched != 10 || l.EmailsInserted != 8 || l.EventsInserted != 3 || l.Failures != 2 {
		t.Errorf("Expected counts recorded, got %+v", l)
	}
}
