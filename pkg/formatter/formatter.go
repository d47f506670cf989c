package formatter

import (
	"fmt"
	"strings"
	"time"
)

// EscapeHTML escapes characters that Telegram's HTML parse mode would
// otherwise interpret as markup, so user text is always rendered literally.
func EscapeHTML(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// RelativeTime renders a timestamp relative to now:
// under a minute -> "Just now", under an hour -> "Nm ago",
// under a day -> "Nh ago", anything older -> a calendar date.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}
