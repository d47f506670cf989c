package telegramimpl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// SendMessage sends a plain text message to a specific chat ID
func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message", "chatID", chatID, "error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}
	return sentMsg.MessageID, nil
}

// SendHTML sends an HTML-parse-mode message with an optional inline keyboard
func (tg *TelegramImpl) SendHTML(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = *markup
	}

	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending HTML message", "chatID", chatID, "error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}
	return sentMsg.MessageID, nil
}

// SendPhoto sends an image by URL with an HTML caption
func (tg *TelegramImpl) SendPhoto(chatID int64, fileURL, caption string, markup *tgbotapi.InlineKeyboardMarkup) (int, error) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(fileURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		photo.ReplyMarkup = *markup
	}

	sentMsg, err := tg.TgBot.Send(photo)
	if err != nil {
		tg.Logger.Error("Error sending photo", "chatID", chatID, "url", fileURL, "error", err)
		return 0, fmt.Errorf("failed to send photo: %w", err)
	}
	return sentMsg.MessageID, nil
}

// SendVideo sends a video by URL with an HTML caption
func (tg *TelegramImpl) SendVideo(chatID int64, fileURL, caption string, markup *tgbotapi.InlineKeyboardMarkup) (int, error) {
	video := tgbotapi.NewVideo(chatID, tgbotapi.FileURL(fileURL))
	video.Caption = caption
	video.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		video.ReplyMarkup = *markup
	}

	sentMsg, err := tg.TgBot.Send(video)
	if err != nil {
		tg.Logger.Error("Error sending video", "chatID", chatID, "url", fileURL, "error", err)
		return 0, fmt.Errorf("failed to send video: %w", err)
	}
	return sentMsg.MessageID, nil
}

// EditMessageText replaces the text of an existing message
func (tg *TelegramImpl) EditMessageText(chatID int64, messageID int, newText string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, newText)
	if _, err := tg.TgBot.Send(edit); err != nil {
		tg.Logger.Error("Error editing message", "chatID", chatID, "messageID", messageID, "error", err)
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// EditHTML replaces the text and inline keyboard of an existing message
func (tg *TelegramImpl) EditHTML(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := tg.TgBot.Send(edit); err != nil {
		tg.Logger.Error("Error editing message", "chatID", chatID, "messageID", messageID, "error", err)
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

// DeleteMessage removes a message from the chat
func (tg *TelegramImpl) DeleteMessage(chatID int64, messageID int) error {
	del := tgbotapi.NewDeleteMessage(chatID, messageID)
	if _, err := tg.TgBot.Request(del); err != nil {
		tg.Logger.Error("Error deleting message", "chatID", chatID, "messageID", messageID, "error", err)
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// AnswerCallback acknowledges an inline button press with a short notice
func (tg *TelegramImpl) AnswerCallback(callbackID, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := tg.TgBot.Request(callback); err != nil {
		tg.Logger.Error("Error answering callback", "error", err)
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

// DownloadFile fetches a file the user sent to the bot and returns its
// bytes along with a usable file name.
func (tg *TelegramImpl) DownloadFile(ctx context.Context, fileID string) ([]byte, string, error) {
	file, err := tg.TgBot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(tg.TgBot.Token), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create download request: %w", err)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download file: %w", err)
	}
	defer safeClose(resp.Body, tg)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file data: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("received empty file %s", fileID)
	}

	name := path.Base(file.FilePath)
	if name == "" || name == "." {
		name = "media"
	}

	return data, name, nil
}

// safeClose closes an io.ReadCloser and logs any errors
func safeClose(closer io.ReadCloser, tg *TelegramImpl) {
	if err := closer.Close(); err != nil {
		tg.Logger.Error("Error closing response body", "error", err)
	}
}
