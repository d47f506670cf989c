package commandimpl

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// fakeTelegram records every chat interaction so tests can assert on what
// the user would have seen.
type fakeTelegram struct {
	mu     sync.Mutex
	nextID int

	sent      []sentItem
	edits     map[int]string
	deleted   []int
	callbacks []string

	fileData []byte
	fileName string
	fileErr  error
}

type sentItem struct {
	id      int
	kind    string // "message", "html", "photo", "video"
	chatID  int64
	text    string
	buttons []button
}

type button struct {
	label string
	data  string
}

func newFakeTelegram() *fakeTelegram {
	return &fakeTelegram{edits: map[int]string{}}
}

func (f *fakeTelegram) record(kind string, chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.sent = append(f.sent, sentItem{
		id:      f.nextID,
		kind:    kind,
		chatID:  chatID,
		text:    text,
		buttons: flattenMarkup(markup),
	})
	return f.nextID
}

func flattenMarkup(markup *tgbotapi.InlineKeyboardMarkup) []button {
	if markup == nil {
		return nil
	}
	var buttons []button
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			data := ""
			if b.CallbackData != nil {
				data = *b.CallbackData
			}
			buttons = append(buttons, button{label: b.Text, data: data})
		}
	}
	return buttons
}

func (f *fakeTelegram) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeTelegram) StopReceivingUpdates() {}

func (f *fakeTelegram) SendMessage(chatID int64, text string) (int, error) {
	return f.record("message", chatID, text, nil), nil
}

func (f *fakeTelegram) SendHTML(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) (int, error) {
	return f.record("html", chatID, text, markup), nil
}

func (f *fakeTelegram) SendPhoto(chatID int64, fileURL, caption string, markup *tgbotapi.InlineKeyboardMarkup) (int, error) {
	return f.record("photo", chatID, caption, markup), nil
}

func (f *fakeTelegram) SendVideo(chatID int64, fileURL, caption string, markup *tgbotapi.InlineKeyboardMarkup) (int, error) {
	return f.record("video", chatID, caption, markup), nil
}

func (f *fakeTelegram) EditMessageText(chatID int64, messageID int, newText string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits[messageID] = newText
	return nil
}

func (f *fakeTelegram) EditHTML(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits[messageID] = text
	for i := range f.sent {
		if f.sent[i].id == messageID {
			f.sent[i].text = text
			f.sent[i].buttons = flattenMarkup(&markup)
		}
	}
	return nil
}

func (f *fakeTelegram) DeleteMessage(chatID int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeTelegram) AnswerCallback(callbackID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks = append(f.callbacks, text)
	return nil
}

func (f *fakeTelegram) DownloadFile(context.Context, string) ([]byte, string, error) {
	return f.fileData, f.fileName, f.fileErr
}

// itemByButtonData finds the sent item carrying a button with the given
// callback data.
func (f *fakeTelegram) itemByButtonData(data string) (sentItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.sent {
		for _, b := range item.buttons {
			if b.data == data {
				return item, true
			}
		}
	}
	return sentItem{}, false
}

// lastContaining returns the most recent sent or edited text containing the
// substring.
func (f *fakeTelegram) lastContaining(substr string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if strings.Contains(f.sent[i].text, substr) {
			return f.sent[i].text, true
		}
	}
	for _, text := range f.edits {
		if strings.Contains(text, substr) {
			return text, true
		}
	}
	return "", false
}

func (f *fakeTelegram) wasDeleted(messageID int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.deleted {
		if id == messageID {
			return true
		}
	}
	return false
}
