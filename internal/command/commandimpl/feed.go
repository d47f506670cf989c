package commandimpl

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aidosorynbay/simple-social/internal/session"
	apperrors "github.com/aidosorynbay/simple-social/pkg/errors"
)

func (c *CommandImpl) handleFeed(ctx context.Context, chatID int64) {
	if c.Machine.Current() != session.StateAuthenticated {
		c.showAuthPane(chatID, tabLogin, "Please log in first.")
		return
	}

	if !c.begin() {
		c.Telegram.SendMessage(chatID, msgBusy)
		return
	}
	defer c.end()

	c.loadFeed(ctx, chatID)
}

// handleDelete serves a card's delete button. On success only that card
// disappears; on failure the card stays and the user gets a short notice
// instead of a silent no-op.
func (c *CommandImpl) handleDelete(ctx context.Context, cq *tgbotapi.CallbackQuery, chatID int64, postID string) {
	if c.Machine.Current() != session.StateAuthenticated {
		c.Telegram.AnswerCallback(cq.ID, msgExpired)
		return
	}

	if !c.begin() {
		c.Telegram.AnswerCallback(cq.ID, msgBusy)
		return
	}
	defer c.end()

	if err := c.Api.DeletePost(ctx, postID); err != nil {
		if apperrors.IsUnauthorized(err) {
			c.Telegram.AnswerCallback(cq.ID, msgExpired)
			c.Machine.Expire(ctx)
			return
		}
		c.Logger.Warn("Delete failed", "post_id", postID, "error", err)
		c.Telegram.AnswerCallback(cq.ID, apperrors.GetMessage(err))
		return
	}

	if !c.Feed.RemoveCard(chatID, postID) && cq.Message != nil {
		// Renderer lost track of the card; the button's own message is it.
		c.Telegram.DeleteMessage(chatID, cq.Message.MessageID)
	}
	c.Telegram.AnswerCallback(cq.ID, "Deleted.")
}
