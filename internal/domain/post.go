package domain

import (
	"fmt"
	"strings"
	"time"
)

type Post struct {
	ID        string    `json:"id"`         // Post ID assigned by the server
	UserEmail string    `json:"user_email"` // Author identity
	URL       string    `json:"url"`        // Media location
	FileType  string    `json:"file_type"`  // "image" or "video"
	Caption   string    `json:"caption"`    // Optional text
	CreatedAt Timestamp `json:"created_at"` // When the post was created
	IsOwner   bool      `json:"is_owner"`   // Whether the current session may delete it
}

// Timestamp decodes the server's datetime strings. The backend emits naive
// ISO 8601 timestamps without a zone suffix, so plain RFC 3339 parsing is
// not enough.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}

	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
