package commandimpl

import (
	"context"
	"strings"
	"sync/atomic"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"

	"github.com/aidosorynbay/simple-social/internal/api"
	"github.com/aidosorynbay/simple-social/internal/command"
	"github.com/aidosorynbay/simple-social/internal/feed"
	"github.com/aidosorynbay/simple-social/internal/ratelimit"
	"github.com/aidosorynbay/simple-social/internal/session"
	"github.com/aidosorynbay/simple-social/internal/telegram"
	"github.com/aidosorynbay/simple-social/pkg/config"
	apperrors "github.com/aidosorynbay/simple-social/pkg/errors"
	"github.com/aidosorynbay/simple-social/pkg/logger"
)

const (
	msgBusy       = "Hang on, still working on the last one."
	msgSlowDown   = "Slow down a little."
	msgPrivateBot = "This bot is private."
	msgExpired    = "Session expired. Please log in again."
)

type Opts struct {
	fx.In

	Api      api.Client
	Telegram telegram.Client
	Feed     feed.Renderer
	Machine  *session.Machine
	Limiter  ratelimit.Limiter
	Logger   logger.Logger
	Config   *config.Config
}

type CommandImpl struct {
	Api      api.Client
	Telegram telegram.Client
	Feed     feed.Renderer
	Machine  *session.Machine
	Limiter  ratelimit.Limiter
	Logger   logger.Logger
	Config   *config.Config

	// inFlight rejects a new request while one is outstanding, so a user
	// cannot double-submit a form mid-request.
	inFlight atomic.Bool

	// authPane is the message id of the current auth pane, 0 when none.
	authPane atomic.Int64
}

func New(opts Opts) *CommandImpl {
	c := &CommandImpl{
		Api:      opts.Api,
		Telegram: opts.Telegram,
		Feed:     opts.Feed,
		Machine:  opts.Machine,
		Limiter:  opts.Limiter,
		Logger:   opts.Logger.WithComponent("Command"),
		Config:   opts.Config,
	}
	c.Machine.OnTransition(c.onSessionChange)
	return c
}

var _ command.Client = (*CommandImpl)(nil)

func (c *CommandImpl) HandleUpdates(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			c.handleUpdate(ctx, update)
		}
	}
}

func (c *CommandImpl) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		c.handleCallback(ctx, update.CallbackQuery)
		return
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	chatID := msg.Chat.ID
	if c.Config.Telegram.Owner != 0 && chatID != c.Config.Telegram.Owner {
		c.Telegram.SendMessage(chatID, msgPrivateBot)
		return
	}
	if !c.Limiter.Allow(chatID) {
		c.Telegram.SendMessage(chatID, msgSlowDown)
		return
	}

	if len(msg.Photo) > 0 || msg.Video != nil {
		c.handleUpload(ctx, msg)
		return
	}

	if !msg.IsCommand() {
		c.showEntry(ctx, chatID)
		return
	}

	switch msg.Command() {
	case "start", "help":
		c.showEntry(ctx, chatID)
	case "login":
		c.handleLogin(ctx, msg)
	case "register":
		c.handleRegister(ctx, msg)
	case "feed":
		c.handleFeed(ctx, chatID)
	case "post":
		c.handlePostHint(chatID)
	case "logout":
		c.handleLogout(ctx, chatID)
	default:
		c.Telegram.SendMessage(chatID, "Unknown command. Try /help.")
	}
}

func (c *CommandImpl) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	if c.Config.Telegram.Owner != 0 && chatID != c.Config.Telegram.Owner {
		c.Telegram.AnswerCallback(cq.ID, msgPrivateBot)
		return
	}

	data := cq.Data
	switch {
	case strings.HasPrefix(data, feed.DeleteCallbackPrefix):
		c.handleDelete(ctx, cq, chatID, strings.TrimPrefix(data, feed.DeleteCallbackPrefix))
	case strings.HasPrefix(data, tabCallbackPrefix):
		c.handleTabSwitch(cq, chatID, strings.TrimPrefix(data, tabCallbackPrefix))
	default:
		c.Telegram.AnswerCallback(cq.ID, "")
	}
}

// showEntry renders whichever view the session state calls for.
func (c *CommandImpl) showEntry(ctx context.Context, chatID int64) {
	if c.Machine.Current() == session.StateAuthenticated {
		c.loadFeed(ctx, chatID)
		return
	}
	c.showAuthPane(chatID, tabLogin, "")
}

// onSessionChange is the machine observer: entering the authenticated state
// always reloads the feed, leaving it always shows a fresh auth pane.
func (c *CommandImpl) onSessionChange(ctx context.Context, state session.State) {
	chatID := c.Config.Telegram.Owner
	if chatID == 0 {
		return
	}

	switch state {
	case session.StateAuthenticated:
		c.loadFeed(ctx, chatID)
	case session.StateUnauthenticated:
		c.authPane.Store(0)
		c.showAuthPane(chatID, tabLogin, "")
	}
}

// loadFeed runs a full feed render; a 401 result expires the session, which
// in turn brings the user back to the auth pane.
func (c *CommandImpl) loadFeed(ctx context.Context, chatID int64) {
	err := c.Feed.Render(ctx, chatID)
	if err == nil {
		return
	}
	if apperrors.IsUnauthorized(err) {
		c.Telegram.SendMessage(chatID, msgExpired)
		c.Machine.Expire(ctx)
		return
	}
	c.Logger.Error("Feed render failed", "error", err)
}

// begin claims the in-flight slot; callers must End when done.
func (c *CommandImpl) begin() bool {
	return c.inFlight.CompareAndSwap(false, true)
}

func (c *CommandImpl) end() {
	c.inFlight.Store(false)
}
