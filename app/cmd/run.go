// Package cmd contains commands for the application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Semior001/politicalfeed/app/admin"
	"github.com/Semior001/politicalfeed/app/bot"
	"github.com/Semior001/politicalfeed/app/feed"
	"github.com/Semior001/politicalfeed/pkg/botx"
	"github.com/Semior001/politicalfeed/pkg/botx/botapi"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Run is a command to run the bot.
type Run struct {
	CommonOpts

	Bot struct {
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"2m" description:"timeout for handling a message"`

		Telegram struct {
			Token string `long:"token" env:"TOKEN" required:"true" description:"telegram token"`
		} `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`

		AdminIDs []string `long:"admin-ids" env:"ADMIN_IDS" env-delim:"," description:"admin chat IDs"`
	} `group:"bot" namespace:"bot" env-namespace:"BOT"`

	Feed struct {
		MaxRetries int           `long:"max-retries" env:"MAX_RETRIES" default:"5" description:"retries after the first failed attempt"`
		RetryDelay time.Duration `long:"retry-delay" env:"RETRY_DELAY" default:"3s" description:"delay between attempts"`
		CacheTTL   time.Duration `long:"cache-ttl" env:"CACHE_TTL" default:"1m" description:"ttl of cached articles"`
	} `group:"feed" namespace:"feed" env-namespace:"FEED"`
}

// Execute runs the command.
func (r *Run) Execute(_ []string) error {
	d, err := r.setup()
	if err != nil {
		return err
	}
	defer d.close()

	lg := d.log

	api, err := botapi.NewTelegram(
		lg.With(slog.String("prefix", "telegram")),
		r.Bot.Telegram.Token,
		100,
	)
	if err != nil {
		return fmt.Errorf("make telegram controller: %w", err)
	}

	ctrl := &bot.Ctrl{
		Logger:  lg.With(slog.String("prefix", "bot")),
		API:     api,
		Session: d.session,
		Feed: feed.NewLoader(
			lg.With(slog.String("prefix", "feed")),
			d.rem,
			feed.WithMaxRetries(r.Feed.MaxRetries),
			feed.WithRetryDelay(r.Feed.RetryDelay),
		),
		Editor:         admin.NewService(lg.With(slog.String("prefix", "admin")), d.rem, d.session, r.Feed.CacheTTL),
		AdminIDs:       r.Bot.AdminIDs,
		HandlerTimeout: r.Bot.Timeout,
	}

	b := botx.NewBot(
		ctrl.Routes().Handle,
		api,
		botx.WithLogger(lg.With(slog.String("prefix", "botx"))),
		botx.WithWorkers(10),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case sig := <-sig:
			lg.Warn("caught signal, stopping", slog.String("signal", sig.String()))
			stop()
			return ctx.Err()
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	ewg.Go(func() error {
		lg.Info("starting session manager")
		return d.session.Run(ctx)
	})
	ewg.Go(func() error {
		return ctrl.Watch(ctx)
	})
	ewg.Go(func() error {
		st := ctrl.Feed.Load(ctx, false)
		lg.Info("initial feed loaded",
			slog.Int("featured", len(st.Featured)),
			slog.Int("latest", len(st.Latest)),
			slog.String("error", st.Error),
		)
		return nil
	})
	ewg.Go(func() error {
		lg.Info("starting telegram api")
		return api.Run(ctx)
	})
	ewg.Go(func() error {
		lg.Info("starting bot")
		b.Run(ctx)
		lg.Warn("bot stopped")
		return nil
	})

	if err := ctrl.NotifyAdmins(ctx, "bot started"); err != nil {
		lg.Warn("failed to notify admins about started bot", slog.Any("err", err))
	}

	if err := ewg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		msg := fmt.Sprintf("bot stopped with error: %v", err)

		if sendErr := ctrl.NotifyAdmins(context.Background(), msg); sendErr != nil {
			return fmt.Errorf("notify admins about stopped bot (for reason: %v): %w", err, sendErr)
		}

		return err
	}

	if err := ctrl.NotifyAdmins(context.Background(), "bot stopped"); err != nil {
		return fmt.Errorf("notify admins about stopped bot: %w", err)
	}

	return nil
}
