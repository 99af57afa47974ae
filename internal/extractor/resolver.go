package extractor

import (
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ResolvedEvent is a candidate whose date excerpts have been anchored to
// absolute times. Start is always set; End stays nil when the email gave no
// parseable end time.
type ResolvedEvent struct {
	Title            string
	Description      string
	Location         string
	SenderOrg        string
	RegistrationLink string
	Start            time.Time
	End              *time.Time
}

// Resolver turns the model's verbatim date excerpts into timestamps, relative
// to the moment the email was received.
type Resolver struct {
	parser *when.Parser
}

func NewResolver() *Resolver {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return &Resolver{parser: p}
}

// Resolve anchors a candidate's start and end excerpts against the given
// reference time. A candidate whose start cannot be resolved is dropped
// (ok=false): an event without a start time cannot be scheduled. A missing or
// unresolvable end is tolerated and left nil.
func (r *Resolver) Resolve(c EventCandidate, reference time.Time) (ResolvedEvent, bool) {
	start, ok := r.resolveOne(c.StartTimeText, reference)
	if !ok {
		return ResolvedEvent{}, false
	}

	event := ResolvedEvent{
		Title:            c.Name,
		Description:      c.Description,
		Location:         c.Location,
		SenderOrg:        c.SenderOrg,
		RegistrationLink: c.RegistrationLink,
		Start:            start,
	}

	if end, ok := r.resolveOne(c.EndTimeText, reference); ok {
		event.End = &end
	}

	return event, true
}

func (r *Resolver) resolveOne(text string, reference time.Time) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	result, err := r.parser.Parse(text, reference)
	if err != nil || result == nil {
		return time.Time{}, false
	}
	return result.Time, true
}
