package feed

import (
	"testing"
	"time"

	"github.com/aidosorynbay/simple-social/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func post(id, fileType string) domain.Post {
	return domain.Post{
		ID:        id,
		UserEmail: "a@b.com",
		URL:       "/media/" + id,
		FileType:  fileType,
		CreatedAt: domain.Timestamp{Time: now.Add(-5 * time.Minute)},
	}
}

func TestNewCardMediaKind(t *testing.T) {
	assert.Equal(t, MediaImage, NewCard(post("1", "image"), now).Kind)
	assert.Equal(t, MediaVideo, NewCard(post("2", "video"), now).Kind)
	// Unknown types default to image.
	assert.Equal(t, MediaImage, NewCard(post("3", "gif"), now).Kind)
	assert.Equal(t, MediaImage, NewCard(post("4", ""), now).Kind)
}

func TestNewCardBody(t *testing.T) {
	p := post("1", "image")
	p.Caption = "my caption"

	card := NewCard(p, now)
	assert.Equal(t, "<b>a@b.com</b> · 5m ago\nmy caption", card.Body)
}

func TestNewCardOmitsEmptyCaption(t *testing.T) {
	card := NewCard(post("1", "image"), now)
	assert.Equal(t, "<b>a@b.com</b> · 5m ago", card.Body)
}

func TestNewCardEscapesUserText(t *testing.T) {
	p := post("1", "image")
	p.UserEmail = "<script>@evil.com"
	p.Caption = `<img src="x">`

	card := NewCard(p, now)
	assert.NotContains(t, card.Body, "<script>")
	assert.NotContains(t, card.Body, `<img`)
	assert.Contains(t, card.Body, "&lt;script&gt;@evil.com")
	assert.Contains(t, card.Body, "&lt;img src=&quot;x&quot;&gt;")
}

func TestNewCardDeleteOnlyForOwner(t *testing.T) {
	p := post("1", "image")
	assert.False(t, NewCard(p, now).CanDelete)

	p.IsOwner = true
	assert.True(t, NewCard(p, now).CanDelete)
}

func TestBuildCardsPreservesOrder(t *testing.T) {
	posts := []domain.Post{post("b", "image"), post("a", "video"), post("c", "image")}

	cards := BuildCards(posts, now)
	require.Len(t, cards, 3)
	assert.Equal(t, "b", cards[0].PostID)
	assert.Equal(t, "a", cards[1].PostID)
	assert.Equal(t, "c", cards[2].PostID)
}

func TestBuildCardsEmpty(t *testing.T) {
	assert.Empty(t, BuildCards(nil, now))
}
