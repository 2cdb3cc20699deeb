package timecmp

import (
	"strings"
	"time"
)

// DefaultDateTolerance is the date proximity tolerance in days.
const DefaultDateTolerance = 2

// dateLayouts lists the calendar forms platform exports actually use.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// ParseDate parses a calendar date from any supported export layout.
// Reports ok=false for anything unparseable.
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// DatesClose reports whether both inputs parse as calendar dates and differ
// by no more than toleranceDays. A negative tolerance is treated as zero.
func DatesClose(a, b string, toleranceDays int) bool {
	dateA, okA := ParseDate(a)
	dateB, okB := ParseDate(b)
	if !okA || !okB {
		return false
	}
	if toleranceDays < 0 {
		toleranceDays = 0
	}
	diff := dateA.Sub(dateB)
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(toleranceDays)*24*time.Hour
}
