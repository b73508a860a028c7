package types

import (
	"regexp"
	"strings"
)

// BulletMarker prefixes each topic written by FormatTopics.
const BulletMarker = "• "

// bulletAtLineStart matches a bullet marker ("•" or "-" followed by one
// whitespace character) at the start of the text or of a line.
var bulletAtLineStart = regexp.MustCompile(`(^|\n)[•-]\s`)

// HasBullets reports whether raw contains at least one line-leading bullet.
func HasBullets(raw string) bool {
	return bulletAtLineStart.MatchString(strings.ReplaceAll(raw, "\r\n", "\n"))
}

// ParseTopics splits note topics into items. Text without bullet markers is
// a single item. With markers, each item runs from its marker to the next
// line-leading marker, so line breaks inside an item are preserved.
func ParseTopics(raw string) []string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	locs := bulletAtLineStart.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		if single := strings.TrimSpace(s); single != "" {
			return []string{single}
		}
		return []string{}
	}

	items := make([]string, 0, len(locs))
	for i, loc := range locs {
		// loc[1] is the end of the whole match: just after the marker and its
		// whitespace.
		start := loc[1]
		end := len(s)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if item := strings.TrimSpace(s[start:end]); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// FormatTopics renders items as bullet lines, dropping blank items.
func FormatTopics(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			lines = append(lines, BulletMarker+item)
		}
	}
	return strings.Join(lines, "\n")
}
