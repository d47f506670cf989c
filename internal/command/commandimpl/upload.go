package commandimpl

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aidosorynbay/simple-social/internal/api"
	"github.com/aidosorynbay/simple-social/internal/session"
	apperrors "github.com/aidosorynbay/simple-social/pkg/errors"
)

const msgChooseFile = "Please choose an image or video."

// handlePostHint answers /post, which carries no attachment by definition:
// the upload precondition fails before any request is made.
func (c *CommandImpl) handlePostHint(chatID int64) {
	if c.Machine.Current() != session.StateAuthenticated {
		c.showAuthPane(chatID, tabLogin, "Please log in first.")
		return
	}
	c.Telegram.SendMessage(chatID, msgChooseFile+" Send it as a photo or video message, with an optional caption.")
}

// handleUpload publishes a media message the user sent. Success closes the
// "dialog" by reloading the whole feed; failure reports the server's message
// and leaves the user free to resend.
func (c *CommandImpl) handleUpload(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if c.Machine.Current() != session.StateAuthenticated {
		c.showAuthPane(chatID, tabLogin, "Please log in first.")
		return
	}

	if !c.begin() {
		c.Telegram.SendMessage(chatID, msgBusy)
		return
	}
	defer c.end()

	fileID := uploadFileID(msg)
	if fileID == "" {
		c.Telegram.SendMessage(chatID, msgChooseFile)
		return
	}

	data, name, err := c.Telegram.DownloadFile(ctx, fileID)
	if err != nil {
		c.Logger.Warn("Failed to fetch media from chat", "error", err)
		c.Telegram.SendMessage(chatID, "Network error. Try again.")
		return
	}

	err = c.Api.UploadPost(ctx, api.UploadFile{Name: name, Data: data}, strings.TrimSpace(msg.Caption))
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			c.Telegram.SendMessage(chatID, msgExpired)
			c.Machine.Expire(ctx)
			return
		}
		c.Telegram.SendMessage(chatID, apperrors.GetMessage(err))
		return
	}

	c.Telegram.SendMessage(chatID, "✅ Posted.")
	c.loadFeed(ctx, chatID)
}

// uploadFileID picks the attachment to publish: the largest photo size, or
// the video.
func uploadFileID(msg *tgbotapi.Message) string {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID
	}
	if msg.Video != nil {
		return msg.Video.FileID
	}
	return ""
}
