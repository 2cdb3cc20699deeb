package textkey

import "strings"

// DisplayTitle selects the human-readable name for an entity using a fixed
// precedence: the user's display-name override, then the raw platform title,
// then the video identifier, then the product identifier. Returns "" only
// when every input is blank.
func DisplayTitle(override, title, videoID, productID string) string {
	for _, candidate := range []string{override, title, videoID, productID} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
