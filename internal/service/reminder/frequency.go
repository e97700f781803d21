package reminder

import (
	"fmt"
	"regexp"
	"strconv"
)

// Frequency is a parsed medication cadence.
type Frequency struct {
	IntervalHours int
}

// ParseError marks a descriptor this parser cannot schedule. Entities
// with unparsable descriptors are skipped, not failed.
type ParseError struct {
	Descriptor string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparsable frequency descriptor: %q", e.Descriptor)
}

// FrequencyParser turns a free-text frequency descriptor into a typed
// cadence. Pluggable so parsing rules can evolve independently of event
// normalization.
type FrequencyParser interface {
	Parse(descriptor string) (Frequency, error)
}

// hourIntervalRe accepts the wordings the intake pipeline stores:
// "cada 8 horas", "8 hrs", "every 12 hours".
var hourIntervalRe = regexp.MustCompile(`(?i)(\d{1,2})\s*(?:hrs?|horas?|hours?)`)

// HourIntervalParser handles descriptors that express an hour interval.
// Anything else is reported as a ParseError.
type HourIntervalParser struct{}

func NewHourIntervalParser() HourIntervalParser {
	return HourIntervalParser{}
}

func (HourIntervalParser) Parse(descriptor string) (Frequency, error) {
	m := hourIntervalRe.FindStringSubmatch(descriptor)
	if m == nil {
		return Frequency{}, &ParseError{Descriptor: descriptor}
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil || hours < 1 || hours > 24 {
		return Frequency{}, &ParseError{Descriptor: descriptor}
	}

	return Frequency{IntervalHours: hours}, nil
}
