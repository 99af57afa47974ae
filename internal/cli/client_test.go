package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event-inbox/internal/database"
)

func TestClient_GetSuggestedEvents(t *testing.T) {
	events := []database.SuggestedEvent{
		{ID: 1, Title: "Team Sync", Status: database.StatusPending,
			StartTime: time.Date(2024, 6, 7, 15, 0, 0, 0, time.UTC)},
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/suggested-events" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("status"); got != "pending" {
			t.Errorf("Expected status filter pending, got %q", got)
		}
		json.NewEncoder(w).Encode(events)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	got, err := client.GetSuggestedEvents("pending")
	if err != nil {
		t.Fatalf("GetSuggestedEvents failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Team Sync" {
		t.Errorf("Expected one event, got %+v", got)
	}
}

func TestClient_AcceptEvent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/suggested-events/7/accept" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(database.SavedEvent{ID: 3, SuggestedEventID: 7, Title: "Accepted"})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	saved, err := client.AcceptEvent(7)
	if err != nil {
		t.Fatalf("AcceptEvent failed: %v", err)
	}
	if saved.SuggestedEventID != 7 {
		t.Errorf("Expected link to suggestion 7, got %+v", saved)
	}
}

func TestClient_APIErrorFromBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "suggested event is not pending: event 7 is approved"})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, err := client.AcceptEvent(7)
	if err == nil {
		t.Fatal("Expected error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.Code != http.StatusConflict {
		t.Errorf("Expected 409, got %d", apiErr.Code)
	}
	if apiErr.Message != "suggested event is not pending: event 7 is approved" {
		t.Errorf("Expected server message preserved, got %q", apiErr.Message)
	}
}

func TestClient_BulkAccept(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string][]int
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req["ids"]) != 2 {
			t.Errorf("Expected 2 ids, got %v", req["ids"])
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]database.SavedEvent{{ID: 1}, {ID: 2}})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	saved, err := client.BulkAccept([]int{4, 5})
	if err != nil {
		t.Fatalf("BulkAccept failed: %v", err)
	}
	if len(saved) != 2 {
		t.Errorf("Expected 2 saved events, got %d", len(saved))
	}
}

func TestClient_HealthCheck(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}))
	defer ts.Close()

	if err := NewClient(ts.URL).HealthCheck(); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}
}
