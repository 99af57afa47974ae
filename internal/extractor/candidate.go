package extractor

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// EventCandidate is one event mention extracted by the model from a single
// email. Date and time fields hold literal excerpts from the source text, not
// timestamps; the temporal resolver turns them into absolute times. The
// model's "N/A" sentinel is mapped to an empty string at the parse boundary,
// so downstream code never special-cases the literal.
type EventCandidate struct {
	Name             string `json:"name"`
	SenderOrg        string `json:"sender_org"`
	Location         string `json:"location"`
	StartTimeText    string `json:"start_time"`
	EndTimeText      string `json:"end_time"`
	Description      string `json:"description"`
	RegistrationLink string `json:"registration_link,omitempty"`
}

// candidateWire is the raw JSON shape the model is asked to produce.
type candidateWire struct {
	Name             string  `json:"name"`
	SenderOrg        string  `json:"sender_org"`
	Location         string  `json:"location"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Description      string  `json:"description"`
	RegistrationLink *string `json:"registration_link"`
}

// ParseCandidates validates the model's response against the candidate schema
// and returns the cleaned candidates. A response that is not a JSON array of
// the expected shape is an error; a valid empty array means "no event found"
// and is the expected common case. All-absent placeholder entries (the
// model's way of saying "nothing here") are filtered out.
func ParseCandidates(response string) ([]EventCandidate, error) {
	payload := extractJSONArray(response)
	if payload == "" {
		return nil, fmt.Errorf("no JSON array found in model response")
	}

	var wire []candidateWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse model response as candidate array: %w", err)
	}

	var candidates []EventCandidate
	for i, w := range wire {
		c := EventCandidate{
			Name:          clearSentinel(w.Name),
			SenderOrg:     clearSentinel(w.SenderOrg),
			Location:      clearSentinel(w.Location),
			StartTimeText: clearSentinel(w.StartTime),
			EndTimeText:   clearSentinel(w.EndTime),
			Description:   clearSentinel(w.Description),
		}

		if w.RegistrationLink != nil {
			link := clearSentinel(*w.RegistrationLink)
			if link != "" {
				if err := validateLink(link); err != nil {
					return nil, fmt.Errorf("candidate %d: invalid registration_link: %w", i, err)
				}
				c.RegistrationLink = link
			}
		}

		// The no-event placeholder carries "N/A" in every field.
		if c.Name == "" && c.StartTimeText == "" {
			continue
		}

		candidates = append(candidates, c)
	}

	return candidates, nil
}

// clearSentinel maps the model's "N/A" literal (and bare quotes around it) to
// the empty string.
func clearSentinel(s string) string {
	trimmed := strings.TrimSpace(s)
	unquoted := strings.Trim(trimmed, `"`)
	if strings.EqualFold(unquoted, "N/A") || unquoted == "null" {
		return ""
	}
	return trimmed
}

// validateLink requires an absolute URL with a host.
func validateLink(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("not an absolute URL: %q", link)
	}
	return nil
}

// extractJSONArray pulls the outermost JSON array out of a model response
// that may be wrapped in markdown fences or prose.
func extractJSONArray(response string) string {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```json")
		response = strings.TrimPrefix(response, "```")
		response = strings.TrimSuffix(response, "```")
		response = strings.TrimSpace(response)
	}

	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return response[start : end+1]
}
