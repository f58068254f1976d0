package tui

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// formatTime renders a relative timestamp for listing and gig displays.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// parseMoney parses a user-typed amount, tolerating $ and commas.
func parseMoney(s string) (float64, error) {
	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '$' || r == ',' || r == ' ' {
			continue
		}
		clean = append(clean, r)
	}
	return strconv.ParseFloat(string(clean), 64)
}
