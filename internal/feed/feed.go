package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/aidosorynbay/simple-social/internal/domain"
	"github.com/aidosorynbay/simple-social/pkg/formatter"
)

// DeleteCallbackPrefix tags the callback data of a card's delete button;
// everything after it is the post id.
const DeleteCallbackPrefix = "del:"

// Renderer materializes the feed in the chat. Render does a full
// fetch-and-redraw; RemoveCard drops a single card without re-fetching.
type Renderer interface {
	Render(ctx context.Context, chatID int64) error
	RemoveCard(chatID int64, postID string) bool
}

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Card is the view model for one feed entry: everything the renderer needs,
// with user-supplied text already escaped, and no chat types involved so it
// can be built and inspected without a live bot.
type Card struct {
	PostID    string
	MediaURL  string
	Kind      MediaKind
	Body      string
	CanDelete bool
}

// NewCard builds the view model for a single post. Anything that is not
// explicitly a video renders as an image.
func NewCard(post domain.Post, now time.Time) Card {
	kind := MediaImage
	if post.FileType == string(MediaVideo) {
		kind = MediaVideo
	}

	body := fmt.Sprintf("<b>%s</b> · %s",
		formatter.EscapeHTML(post.UserEmail),
		formatter.RelativeTime(post.CreatedAt.Time, now),
	)
	if post.Caption != "" {
		body += "\n" + formatter.EscapeHTML(post.Caption)
	}

	return Card{
		PostID:    post.ID,
		MediaURL:  post.URL,
		Kind:      kind,
		Body:      body,
		CanDelete: post.IsOwner,
	}
}

// BuildCards maps posts to cards preserving server order; no client-side
// sorting or filtering happens.
func BuildCards(posts []domain.Post, now time.Time) []Card {
	cards := make([]Card, 0, len(posts))
	for _, post := range posts {
		cards = append(cards, NewCard(post, now))
	}
	return cards
}
