package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/fx"

	"github.com/aidosorynbay/simple-social/internal/api"
	"github.com/aidosorynbay/simple-social/internal/api/apiimpl"
	"github.com/aidosorynbay/simple-social/internal/command"
	"github.com/aidosorynbay/simple-social/internal/command/commandimpl"
	"github.com/aidosorynbay/simple-social/internal/feed"
	"github.com/aidosorynbay/simple-social/internal/feed/feedimpl"
	"github.com/aidosorynbay/simple-social/internal/ratelimit"
	"github.com/aidosorynbay/simple-social/internal/session"
	"github.com/aidosorynbay/simple-social/internal/telegram"
	"github.com/aidosorynbay/simple-social/internal/telegram/telegramimpl"
	"github.com/aidosorynbay/simple-social/internal/tokenstore"
	"github.com/aidosorynbay/simple-social/pkg/config"
	"github.com/aidosorynbay/simple-social/pkg/logger"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		session.New,
		func() ratelimit.Limiter {
			return ratelimit.NewInMemoryLimiter(1, 2*time.Second, 3)
		},
	),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		), fx.Annotate(
			apiimpl.New,
			fx.As(new(api.Client)),
		), fx.Annotate(
			feedimpl.New,
			fx.As(new(feed.Renderer)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
	),
	tokenstore.Module,
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, tgClient telegram.Client,
	machine *session.Machine, cmdClient command.Client) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, cfg)

			ctx := context.Background()
			go func() {
				if err := cmdClient.HandleUpdates(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("Update loop stopped", "error", err)
				}
			}()

			// Resume the previous session, or land on the auth pane.
			if err := machine.Restore(ctx); err != nil {
				log.Error("Failed to restore session", "error", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			tgClient.StopReceivingUpdates()
			return nil
		},
	})
}

func startHttpServer(log logger.Logger, cfg *config.Config) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start", "error", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Info("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "Error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
