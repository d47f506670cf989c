package feedimpl

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"

	"github.com/aidosorynbay/simple-social/internal/api"
	"github.com/aidosorynbay/simple-social/internal/feed"
	"github.com/aidosorynbay/simple-social/internal/telegram"
	apperrors "github.com/aidosorynbay/simple-social/pkg/errors"
	"github.com/aidosorynbay/simple-social/pkg/logger"
)

const (
	msgLoading    = "Loading feed…"
	msgEmpty      = "No posts yet. Be the first to share something!"
	msgLoadFailed = "Failed to load feed."
)

type Opts struct {
	fx.In

	Api      api.Client
	Telegram telegram.Client
	Logger   logger.Logger
}

type FeedImpl struct {
	Api      api.Client
	Telegram telegram.Client
	Logger   logger.Logger

	mu     sync.Mutex
	cards  map[string]int // post id -> card message id for the current render
	status int            // message id of the loading/empty/failure placeholder, 0 if none
}

func New(opts Opts) *FeedImpl {
	return &FeedImpl{
		Api:      opts.Api,
		Telegram: opts.Telegram,
		Logger:   opts.Logger.WithComponent("Feed"),
		cards:    map[string]int{},
	}
}

var _ feed.Renderer = (*FeedImpl)(nil)

// Render clears the previous cards, shows a loading placeholder, fetches
// the feed and draws one card per post in server order. A 401 is passed
// back to the caller untouched so the session can be expired; every other
// failure is absorbed into the placeholder text.
func (f *FeedImpl) Render(ctx context.Context, chatID int64) error {
	f.clear(chatID)
	f.dropStatus(chatID)

	loadingID, err := f.Telegram.SendMessage(chatID, msgLoading)
	if err != nil {
		f.Logger.Error("Failed to send loading indicator", "error", err)
		loadingID = 0
	}
	f.setStatus(loadingID)

	posts, err := f.Api.FetchFeed(ctx)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			f.dropStatus(chatID)
			return err
		}
		f.Logger.Warn("Feed fetch failed", "error", err)
		f.replaceStatus(chatID, msgLoadFailed)
		return nil
	}

	cards := feed.BuildCards(posts, time.Now())
	if len(cards) == 0 {
		f.replaceStatus(chatID, msgEmpty)
		return nil
	}

	f.dropStatus(chatID)
	for _, card := range cards {
		f.sendCard(chatID, card)
	}

	return nil
}

// RemoveCard deletes the single card rendered for the given post, leaving
// every other card in place. Returns false when the post has no rendered
// card.
func (f *FeedImpl) RemoveCard(chatID int64, postID string) bool {
	f.mu.Lock()
	messageID, ok := f.cards[postID]
	if ok {
		delete(f.cards, postID)
	}
	f.mu.Unlock()

	if !ok {
		return false
	}

	if err := f.Telegram.DeleteMessage(chatID, messageID); err != nil {
		f.Logger.Warn("Failed to remove card message", "post_id", postID, "error", err)
	}
	return true
}

func (f *FeedImpl) sendCard(chatID int64, card feed.Card) {
	var markup *tgbotapi.InlineKeyboardMarkup
	if card.CanDelete {
		m := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", feed.DeleteCallbackPrefix+card.PostID),
			),
		)
		markup = &m
	}

	var messageID int
	var err error
	switch card.Kind {
	case feed.MediaVideo:
		messageID, err = f.Telegram.SendVideo(chatID, card.MediaURL, card.Body, markup)
	default:
		messageID, err = f.Telegram.SendPhoto(chatID, card.MediaURL, card.Body, markup)
	}
	if err != nil {
		f.Logger.Warn("Failed to send post card", "post_id", card.PostID, "error", err)
		return
	}

	f.mu.Lock()
	f.cards[card.PostID] = messageID
	f.mu.Unlock()
}

// clear removes every card left over from the previous render.
func (f *FeedImpl) clear(chatID int64) {
	f.mu.Lock()
	old := f.cards
	f.cards = map[string]int{}
	f.mu.Unlock()

	for _, messageID := range old {
		if err := f.Telegram.DeleteMessage(chatID, messageID); err != nil {
			f.Logger.Warn("Failed to clear old card", "message_id", messageID, "error", err)
		}
	}
}

func (f *FeedImpl) setStatus(messageID int) {
	f.mu.Lock()
	f.status = messageID
	f.mu.Unlock()
}

func (f *FeedImpl) replaceStatus(chatID int64, text string) {
	f.mu.Lock()
	messageID := f.status
	f.mu.Unlock()

	if messageID == 0 {
		if _, err := f.Telegram.SendMessage(chatID, text); err != nil {
			f.Logger.Error("Failed to send feed status", "error", err)
		}
		return
	}
	if err := f.Telegram.EditMessageText(chatID, messageID, text); err != nil {
		f.Logger.Warn("Failed to update feed status", "error", err)
	}
}

func (f *FeedImpl) dropStatus(chatID int64) {
	f.mu.Lock()
	messageID := f.status
	f.status = 0
	f.mu.Unlock()

	if messageID == 0 {
		return
	}
	if err := f.Telegram.DeleteMessage(chatID, messageID); err != nil {
		f.Logger.Warn("Failed to drop loading indicator", "error", err)
	}
}
