package email

import (
	"strings"
	"testing"
	"time"
)

func TestNormalize_HeadersAndTimestamp(t *testing.T) {
	raw := RawMessage{
		ID:           "msg-1",
		ThreadID:     "thr-1",
		InternalDate: 1717426800000, // 2024-06-03T15:00:00Z
		Headers: map[string]string{
			"Subject": "Team Sync",
			"From":    "a@x.com",
			"Date":    "Mon, 3 Jun 2024 15:00:00 +0000",
		},
	}
	decoded := DecodedContent{Body: "Meeting Friday 3pm at Room 2"}

	n := Normalize(raw, decoded)

	if n.Subject != "Team Sync" {
		t.Errorf("Expected subject 'Team Sync', got %q", n.Subject)
	}
	if n.Sender != "a@x.com" {
		t.Errorf("Expected sender 'a@x.com', got %q", n.Sender)
	}
	if n.Content != "Meeting Friday 3pm at Room 2" {
		t.Errorf("Expected content preserved, got %q", n.Content)
	}
	if len(n.Links) != 0 {
		t.Errorf("Expected no links, got %v", n.Links)
	}

	want := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)
	if !n.ReceivedAt.Equal(want) {
		t.Errorf("Expected receivedAt %v, got %v", want, n.ReceivedAt)
	}
}

func TestNormalize_MissingHeadersYieldEmptyStrings(t *testing.T) {
	raw := RawMessage{ID: "msg-2", Headers: map[string]string{}}

	n := Normalize(raw, DecodedContent{})

	if n.Subject != "" || n.Sender != "" {
		t.Errorf("Expected empty subject and sender, got %q / %q", n.Subject, n.Sender)
	}
}

func TestNormalize_HeaderLookupIsCaseSensitive(t *testing.T) {
	raw := RawMessage{
		ID: "msg-3",
		Headers: map[string]string{
			"subject": "lowercase header name",
			"from":    "b@x.com",
		},
	}

	n := Normalize(raw, DecodedContent{})

	if n.Subject != "" || n.Sender != "" {
		t.Errorf("Expected case-sensitive lookup to miss, got %q / %q", n.Subject, n.Sender)
	}
}

func TestNormalize_TruncationBoundary(t *testing.T) {
	raw := RawMessage{ID: "msg-4", Headers: map[string]string{}}

	atBudget := strings.Repeat("a", ModelCharBudget)
	n := Normalize(raw, DecodedContent{Body: atBudget})
	if n.Truncated {
		t.Error("Content exactly at the budget must not be truncated")
	}
	if n.Content != atBudget {
		t.Errorf("Expected content untouched at budget, got length %d", len(n.Content))
	}

	overBudget := atBudget + "b"
	n = Normalize(raw, DecodedContent{Body: overBudget})
	if !n.Truncated {
		t.Error("Content one char over the budget must be truncated")
	}
	if !strings.HasSuffix(n.Content, truncationMarker) {
		t.Errorf("Expected truncation marker suffix, got %q", n.Content[len(n.Content)-50:])
	}
	if !strings.HasPrefix(n.Content, atBudget) {
		t.Error("Expected truncated content to keep the first budget-many characters")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := RawMessage{
		ID:           "msg-5",
		InternalDate: 1700000000000,
		Headers:      map[string]string{"Subject": "s", "From": "f"},
	}
	decoded := DecodedContent{Body: strings.Repeat("x", ModelCharBudget+500)}

	first := Normalize(raw, decoded)
	second := Normalize(raw, decoded)

	if first.Content != second.Content {
		t.Error("Normalize must be byte-identical across runs for the same input")
	}
}
