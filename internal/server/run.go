package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"recipebox/internal/app"
	"recipebox/internal/telegram"
)

const shutdownTimeout = 10 * time.Second

// Run serves the API, and the Telegram webhook when configured, until ctx is
// cancelled. In-flight requests and chat replies are drained before it returns.
func Run(ctx context.Context, a *app.App) error {
	cfg := a.Config()

	var (
		bot     *telegram.Bot
		webhook http.Handler
	)
	if cfg.TelegramEnabled() {
		svc := telegram.Services{
			Lists:     a.Shopping,
			Suggester: a.Suggester,
			Usage:     a.Metrics,
		}
		if a.Clipper != nil {
			svc.Importer = a.Clipper
		}
		var err error
		bot, err = telegram.NewBot(cfg, svc)
		if err != nil {
			return err
		}
		webhook = http.HandlerFunc(bot.HandleWebhook)
	}

	a.Hub.Start()
	defer a.Hub.Stop()

	srv := NewServer(cfg.Port, a, webhook)
	// Event streams only end when the hub closes their channels.
	srv.httpServer.RegisterOnShutdown(a.Hub.Stop)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	err := g.Wait()
	if bot != nil {
		slog.Debug("Waiting for chat replies")
		bot.Wait()
	}
	return err
}
