package roundtime

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Layouts tried before natural-language parsing.
var layouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
}

// SinceParser resolves user supplied lower bounds for round history such as
// "2026-04-01", "3 days ago" or "last monday".
type SinceParser struct {
	parser *when.Parser
	loc    *time.Location
}

// NewSinceParser returns a parser resolving relative dates in loc. A nil loc
// uses UTC.
func NewSinceParser(loc *time.Location) *SinceParser {
	if loc == nil {
		loc = time.UTC
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &SinceParser{parser: w, loc: loc}
}

// Parse resolves input relative to now. Empty input yields the zero time.
func (p *SinceParser) Parse(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, nil
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, input, p.loc); err == nil {
			return t, nil
		}
	}

	r, err := p.parser.Parse(strings.ToLower(input), now.In(p.loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize date: %s", input)
	}

	parsed := r.Time.In(p.loc)
	if parsed.After(now) {
		return time.Time{}, fmt.Errorf("date must not be in the future (parsed: %s)", parsed.Format(time.RFC3339))
	}
	return parsed, nil
}
