package printwatch

import "fmt"

// FormatSeconds renders a duration in seconds as the canonical component
// form used throughout the tool, e.g. 7256 → "2h 0m 56s". Negative values
// render as "0h 0m 0s".
func FormatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
