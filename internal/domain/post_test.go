package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "rfc3339",
			in:   `"2024-06-15T12:30:00Z"`,
			want: time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC),
		},
		{
			name: "naive datetime",
			in:   `"2024-06-15T12:30:00"`,
			want: time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC),
		},
		{
			name: "naive with fraction",
			in:   `"2024-06-15T12:30:00.123456"`,
			want: time.Date(2024, 6, 15, 12, 30, 0, 123456000, time.UTC),
		},
		{
			name: "null",
			in:   `null`,
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			assert.True(t, ts.Equal(tt.want), "got %v, want %v", ts.Time, tt.want)
		})
	}
}

func TestTimestampUnmarshalGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestPostDecode(t *testing.T) {
	raw := `{
		"id": "42",
		"user_email": "a@b.com",
		"url": "/media/42.jpg",
		"file_type": "image",
		"caption": "first post",
		"created_at": "2024-06-15T12:30:00",
		"is_owner": true
	}`

	var p Post
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, "42", p.ID)
	assert.Equal(t, "a@b.com", p.UserEmail)
	assert.Equal(t, "image", p.FileType)
	assert.True(t, p.IsOwner)
	assert.False(t, p.CreatedAt.IsZero())
}
