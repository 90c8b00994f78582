// Package bot contains routers and controllers for bots.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Semior001/politicalfeed/app/admin"
	"github.com/Semior001/politicalfeed/app/feed"
	"github.com/Semior001/politicalfeed/app/session"
	"github.com/Semior001/politicalfeed/pkg/botx"
	"github.com/Semior001/politicalfeed/pkg/botx/botmw"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Ctrl provides routes and controllers for bot updates.
type Ctrl struct {
	Logger         *slog.Logger
	API            botx.API
	Session        *session.Manager
	Feed           *feed.Loader
	Editor         *admin.Service
	AdminIDs       []string
	HandlerTimeout time.Duration

	// loggingOut is set while the logout is requested by an admin,
	// so that the watcher does not report it as an expired session.
	loggingOut atomic.Bool
}

// Routes returns a multiplexer for bot controllers.
func (c *Ctrl) Routes() *botx.Router {
	rtr := botx.NewRouter()

	rtr.Use(
		botmw.RequestID(),
		botmw.AppendRequestIDOnError(),
		botmw.Recover(c.Logger),
		botmw.Logger(c.Logger),
		botmw.Timeout(c.HandlerTimeout),
	)

	rtr.Add("/start", c.start)
	rtr.Add("/help", c.start)
	rtr.Add("/feed", botx.Handler(c.feed).With(botmw.Typing(c.API, "Loading articles...")))
	rtr.Add("/refresh", botx.Handler(c.refresh).With(botmw.Typing(c.API, "Refreshing...")))
	rtr.Add("/article", c.article)
	rtr.Add("/status", c.status)

	rtr.Group(func(rtr *botx.Router) {
		rtr.Use(botmw.OnlyFrom(c.AdminIDs...))

		rtr.Add("/login", c.login)
		rtr.Add("/logout", c.logout)
		rtr.Add("/delete", c.delete)
		rtr.Add("/contacts", c.contacts)
		rtr.Add("/cache", c.cacheStats)
	})

	return rtr
}

const startMsg = "Hello! I show the latest political news.\n\n" +
	"/feed - featured and latest articles\n" +
	"/refresh - reload the articles\n" +
	"/article <id> - read the article\n" +
	"/status - backend and session status"

const adminStartMsg = "\n\nEditor commands:\n" +
	"/login <username> <password> - sign in\n" +
	"/logout - sign out\n" +
	"/delete <id> - delete the article\n" +
	"/contacts [page] - contact form submissions\n" +
	"/cache - article cache stats"

func (c *Ctrl) start(_ context.Context, req botx.Request) ([]botx.Response, error) {
	text := startMsg
	if c.isAdmin(req.Chat.ID) {
		text += adminStartMsg
	}

	return []botx.Response{{ChatID: req.Chat.ID, Text: text}}, nil
}

// Watch reports session changes to admins until the context is done:
// successful logins and sessions lost because the token could not be refreshed.
func (c *Ctrl) Watch(ctx context.Context) error {
	updates, cancel := c.Session.Subscribe()
	defer cancel()

	loggedIn := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.Session.LoginSucceeded():
			loggedIn = true
			c.notify(ctx, loginMessage(c.Session.State()))
		case st, ok := <-updates:
			if !ok {
				return errors.New("session updates chan closed")
			}

			if !st.LoggedIn {
				requested := c.loggingOut.Swap(false)
				if loggedIn && !requested {
					c.notify(ctx, "Session expired. Please login again: /login <username> <password>")
				}
			}
			loggedIn = st.LoggedIn
		}
	}
}

func loginMessage(st session.State) string {
	if st.User == nil {
		return "Logged in."
	}
	return fmt.Sprintf("Logged in as %s (%s).", st.User.Username, st.User.Role)
}

func (c *Ctrl) notify(ctx context.Context, msg string) {
	if err := c.NotifyAdmins(ctx, msg); err != nil {
		c.Logger.WarnCtx(ctx, "failed to notify admins", slog.Any("err", err))
	}
}

// NotifyAdmins sends a message to all admins.
func (c *Ctrl) NotifyAdmins(ctx context.Context, msg string) error {
	for _, adminID := range c.AdminIDs {
		if err := c.API.SendMessage(ctx, botx.Response{
			ChatID: adminID,
			Text:   msg,
		}); err != nil {
			return fmt.Errorf("send message to admin: %w", err)
		}
	}

	return nil
}

func (c *Ctrl) isAdmin(chatID string) bool { return lo.Contains(c.AdminIDs, chatID) }

func text(req botx.Request, msg string) []botx.Response {
	return []botx.Response{{ChatID: req.Chat.ID, Text: msg}}
}

var mdEscaper = strings.NewReplacer(
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	"[", "\\[",
)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}

// truncate cuts the string to n runes, telegram messages are limited in size.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
