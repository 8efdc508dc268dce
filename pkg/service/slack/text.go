package slack

import "unicode/utf8"

// truncateToMaxBytes cuts s to at most maxBytes without splitting a UTF-8
// sequence. A marker is appended when anything was removed.
func truncateToMaxBytes(s string, maxBytes int) string {
	const marker = "..."
	if len(s) <= maxBytes {
		return s
	}
	if maxBytes <= len(marker) {
		return marker[:max(maxBytes, 0)]
	}

	cut := maxBytes - len(marker)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + marker
}
