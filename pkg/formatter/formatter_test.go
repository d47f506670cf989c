package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "hello world", want: "hello world"},
		{name: "script tag", in: "<script>alert(1)</script>", want: "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{name: "ampersand", in: "fish & chips", want: "fish &amp; chips"},
		{name: "quotes", in: `say "hi"`, want: "say &quot;hi&quot;"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeHTML(tt.in))
		})
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "30 seconds ago", t: now.Add(-30 * time.Second), want: "Just now"},
		{name: "5 minutes ago", t: now.Add(-5 * time.Minute), want: "5m ago"},
		{name: "3 hours ago", t: now.Add(-3 * time.Hour), want: "3h ago"},
		{name: "2 days ago", t: now.Add(-48 * time.Hour), want: "Jun 13, 2024"},
		{name: "just under a minute", t: now.Add(-59 * time.Second), want: "Just now"},
		{name: "just under an hour", t: now.Add(-59 * time.Minute), want: "59m ago"},
		{name: "just under a day", t: now.Add(-23 * time.Hour), want: "23h ago"},
		{name: "zero time", t: time.Time{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.t, now))
		})
	}
}
