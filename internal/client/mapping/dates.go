package mapping

import (
	"fmt"
	"time"
)

const (
	// legacy API: naive timestamps in the conference-local timezone
	layoutLegacy = "2006-01-02 15:04:05"
	// current API: RFC3339 with explicit offset
	layoutCurrent = "2006-01-02T15:04:05Z07:00"
)

// DateParser parses the two timestamp formats the conference APIs emit.
// Naive legacy timestamps are interpreted in the configured location.
type DateParser struct {
	loc *time.Location
}

func NewDateParser(loc *time.Location) *DateParser {
	if loc == nil {
		loc = time.UTC
	}
	return &DateParser{loc: loc}
}

// Parse tries the current (offset-carrying) layout first, then the legacy
// naive layout bound to the conference-local timezone.
func (p *DateParser) Parse(s string) (time.Time, error) {
	if t, err := time.Parse(layoutCurrent, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutLegacy, s, p.loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
