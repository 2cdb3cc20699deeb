package timecmp

import (
	"strconv"
	"strings"
)

// DefaultDurationTolerance is the duration equality tolerance in seconds.
const DefaultDurationTolerance = 2

// ToSeconds parses an elapsed-time string into whole seconds. Accepted
// forms: "H:M:S", "M:S", or a bare integer of seconds. Anything else
// (including negative components) reports ok=false.
func ToSeconds(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return 0, false
	}

	total := 0
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || value < 0 {
			return 0, false
		}
		total = total*60 + value
	}
	return total, true
}

// DurationsEqual reports whether both inputs parse and differ by no more
// than toleranceSeconds. A negative tolerance is treated as zero.
func DurationsEqual(a, b string, toleranceSeconds int) bool {
	secondsA, okA := ToSeconds(a)
	secondsB, okB := ToSeconds(b)
	if !okA || !okB {
		return false
	}
	if toleranceSeconds < 0 {
		toleranceSeconds = 0
	}
	diff := secondsA - secondsB
	if diff < 0 {
		diff = -diff
	}
	return diff <= toleranceSeconds
}
