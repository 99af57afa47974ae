package email

import (
	"time"
)

// ModelCharBudget is the maximum content length sent to the text-generation
// API, imposed by that API's context limit.
const ModelCharBudget = 32000

// truncationMarker is appended whenever content is cut at the budget, so that
// downstream consumers can tell truncation from legitimate content loss.
const truncationMarker = "... [Content truncated due to length]"

// Normalize merges a raw message and its decoded content into the persisted
// email form. Subject and sender are read by exact header name; a missing
// header yields an empty string. The received time interprets the message's
// internal timestamp as milliseconds since the epoch.
func Normalize(raw RawMessage, decoded DecodedContent) NormalizedEmail {
	content := decoded.Body
	truncated := false
	if len(content) > ModelCharBudget {
		content = content[:ModelCharBudget] + truncationMarker
		truncated = true
	}

	return NormalizedEmail{
		MessageID:  raw.ID,
		ThreadID:   raw.ThreadID,
		Subject:    raw.Headers["Subject"],
		Sender:     raw.Headers["From"],
		Content:    content,
		ReceivedAt: time.UnixMilli(raw.InternalDate).UTC(),
		Links:      decoded.Links,
		Truncated:  truncated,
	}
}
