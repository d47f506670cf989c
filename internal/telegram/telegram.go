package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Client interface {
	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()

	SendMessage(chatID int64, text string) (int, error)
	SendHTML(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) (int, error)
	SendPhoto(chatID int64, fileURL, caption string, markup *tgbotapi.InlineKeyboardMarkup) (int, error)
	SendVideo(chatID int64, fileURL, caption string, markup *tgbotapi.InlineKeyboardMarkup) (int, error)
	EditMessageText(chatID int64, messageID int, newText string) error
	EditHTML(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) error
	DeleteMessage(chatID int64, messageID int) error
	AnswerCallback(callbackID, text string) error

	DownloadFile(ctx context.Context, fileID string) ([]byte, string, error)
}
