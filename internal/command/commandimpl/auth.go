package commandimpl

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aidosorynbay/simple-social/internal/session"
	apperrors "github.com/aidosorynbay/simple-social/pkg/errors"
	"github.com/aidosorynbay/simple-social/pkg/formatter"
)

// The auth pane is one message with two mutually exclusive tabs, the chat
// rendition of the login/register screen. Switching tabs redraws the pane,
// which also wipes any error text.
const (
	tabCallbackPrefix = "tab:"
	tabLogin          = "login"
	tabRegister       = "register"

	msgRegisteredLoginFailed = "Account created. Please log in."
)

func authPaneText(tab, errText string) string {
	var sb strings.Builder
	if tab == tabRegister {
		sb.WriteString("<b>Create an account</b>\n")
		sb.WriteString("Send: /register email password")
	} else {
		sb.WriteString("<b>Log in</b>\n")
		sb.WriteString("Send: /login email password")
	}
	if errText != "" {
		sb.WriteString("\n\n⚠ ")
		sb.WriteString(formatter.EscapeHTML(errText))
	}
	return sb.String()
}

func authPaneMarkup(tab string) tgbotapi.InlineKeyboardMarkup {
	loginLabel, registerLabel := "• Log in •", "Register"
	if tab == tabRegister {
		loginLabel, registerLabel = "Log in", "• Register •"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(loginLabel, tabCallbackPrefix+tabLogin),
			tgbotapi.NewInlineKeyboardButtonData(registerLabel, tabCallbackPrefix+tabRegister),
		),
	)
}

// showAuthPane draws (or redraws in place) the auth pane with the given tab
// active and an optional inline error.
func (c *CommandImpl) showAuthPane(chatID int64, tab, errText string) {
	text := authPaneText(tab, errText)
	markup := authPaneMarkup(tab)

	if paneID := int(c.authPane.Load()); paneID != 0 {
		if err := c.Telegram.EditHTML(chatID, paneID, text, markup); err == nil {
			return
		}
		// The pane message is gone; fall through and send a new one.
	}

	messageID, err := c.Telegram.SendHTML(chatID, text, &markup)
	if err != nil {
		c.Logger.Error("Failed to show auth pane", "error", err)
		return
	}
	c.authPane.Store(int64(messageID))
}

func (c *CommandImpl) handleTabSwitch(cq *tgbotapi.CallbackQuery, chatID int64, tab string) {
	if tab != tabLogin && tab != tabRegister {
		tab = tabLogin
	}
	c.showAuthPane(chatID, tab, "")
	c.Telegram.AnswerCallback(cq.ID, "")
}

func (c *CommandImpl) handleLogin(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if c.Machine.Current() != session.StateUnauthenticated {
		c.Telegram.SendMessage(chatID, "You're already logged in. /logout first.")
		return
	}

	email, password, ok := splitCredentials(msg.CommandArguments())
	if !ok {
		c.showAuthPane(chatID, tabLogin, "Usage: /login email password")
		return
	}

	if !c.begin() {
		c.Telegram.SendMessage(chatID, msgBusy)
		return
	}
	defer c.end()

	// The message holds a plaintext password; get it out of the chat.
	c.Telegram.DeleteMessage(chatID, msg.MessageID)

	token, err := c.Api.Login(ctx, email, password)
	if err != nil {
		c.showAuthPane(chatID, tabLogin, apperrors.GetMessage(err))
		return
	}

	if err := c.Machine.LoginSucceeded(ctx, token); err != nil {
		c.Logger.Error("Failed to enter authenticated state", "error", err)
		c.showAuthPane(chatID, tabLogin, "Something went wrong. Try again.")
	}
}

func (c *CommandImpl) handleRegister(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if c.Machine.Current() != session.StateUnauthenticated {
		c.Telegram.SendMessage(chatID, "You're already logged in. /logout first.")
		return
	}

	email, password, ok := splitCredentials(msg.CommandArguments())
	if !ok {
		c.showAuthPane(chatID, tabRegister, "Usage: /register email password")
		return
	}

	if !c.begin() {
		c.Telegram.SendMessage(chatID, msgBusy)
		return
	}
	defer c.end()

	c.Telegram.DeleteMessage(chatID, msg.MessageID)

	if err := c.Api.Register(ctx, email, password); err != nil {
		c.showAuthPane(chatID, tabRegister, apperrors.GetMessage(err))
		return
	}

	// Auto-login with the same credentials; if that fails the account still
	// exists, so land the user on the login tab instead of surfacing the
	// secondary error.
	token, err := c.Api.Login(ctx, email, password)
	if err != nil {
		c.showAuthPane(chatID, tabLogin, msgRegisteredLoginFailed)
		return
	}

	if err := c.Machine.LoginSucceeded(ctx, token); err != nil {
		c.Logger.Error("Failed to enter authenticated state", "error", err)
		c.showAuthPane(chatID, tabLogin, msgRegisteredLoginFailed)
	}
}

func (c *CommandImpl) handleLogout(ctx context.Context, chatID int64) {
	if err := c.Machine.Logout(ctx); err != nil {
		c.showAuthPane(chatID, tabLogin, "")
	}
}

// splitCredentials parses "email password" command arguments, trimming the
// identity the same way the forms do.
func splitCredentials(args string) (email, password string, ok bool) {
	fields := strings.Fields(strings.TrimSpace(args))
	if len(fields) != 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}
