package calendar

import (
	"testing"

	"event-inbox/internal/database"
)

func TestBuildDescription(t *testing.T) {
	event := &database.SavedEvent{
		Description:      "Product demos and drinks.",
		RegistrationLink: "https://example.com/rsvp",
	}

	got := buildDescription(event)
	want := "Product demos and drinks.\n\nRegistration: https://example.com/rsvp"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestBuildDescription_NoLink(t *testing.T) {
	event := &database.SavedEvent{Description: "Just the talk."}

	if got := buildDescription(event); got != "Just the talk." {
		t.Errorf("Expected description unchanged, got %q", got)
	}
}

func TestBuildDescription_LinkOnly(t *testing.T) {
	event := &database.SavedEvent{RegistrationLink: "https://example.com/go"}

	if got := buildDescription(event); got != "Registration: https://example.com/go" {
		t.Errorf("Expected bare registration line, got %q", got)
	}
}
