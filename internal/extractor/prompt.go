package extractor

import (
	"encoding/json"
	"fmt"
	"time"

	"event-inbox/internal/email"
)

const systemPrompt = `You are an expert assistant that extracts event information from emails. You respond only with valid JSON arrays, no prose and no markdown fences.`

const extractionInstructions = `Analyze the email above and extract every real-world event it announces or invites the recipient to (meetings, talks, socials, deadlines with a time, etc).

Respond with a JSON array. Each element must be an object with exactly these fields:
  "name"              - the event's name or title
  "sender_org"        - the organization or person hosting the event
  "location"          - where the event takes place
  "start_time"        - when the event starts, copied VERBATIM from the email text
  "end_time"          - when the event ends, copied VERBATIM from the email text
  "description"       - a one or two sentence summary of the event
  "registration_link" - a signup or RSVP URL from the email, or null if there is none

Rules:
- Copy date and time expressions exactly as they appear in the email. Do not convert, reformat, or resolve them.
- Use the string "N/A" for any field you cannot find in the email. Use null only for registration_link.
- If the email contains no events, respond with an empty array: []
- Do not invent events or details that are not in the email.`

// promptMetadata is the email envelope presented to the model alongside the
// body, so it can attribute the sender and anchor relative dates.
type promptMetadata struct {
	Subject    string   `json:"subject"`
	Sender     string   `json:"sender"`
	ReceivedAt string   `json:"received_at"`
	Links      []string `json:"links,omitempty"`
}

// BuildPrompt renders the extraction prompt for one normalized email. The
// body is already capped at the model character budget by normalization.
func BuildPrompt(msg email.NormalizedEmail) string {
	meta := promptMetadata{
		Subject:    msg.Subject,
		Sender:     msg.Sender,
		ReceivedAt: msg.ReceivedAt.Format(time.RFC3339),
		Links:      msg.Links,
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		metaJSON = []byte("{}")
	}

	return fmt.Sprintf("Email metadata:\n%s\n\nEmail content:\n%s\n\n%s",
		metaJSON, msg.Content, extractionInstructions)
}
