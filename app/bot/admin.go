package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Semior001/politicalfeed/app/admin"
	"github.com/Semior001/politicalfeed/app/session"
	"github.com/Semior001/politicalfeed/pkg/botx"
	"golang.org/x/exp/slog"
)

func (c *Ctrl) status(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	sb := &strings.Builder{}
	_, _ = sb.WriteString(c.Session.CheckHealth(ctx))
	_, _ = sb.WriteString("\n")

	st := c.Session.Sync(ctx)
	if !st.LoggedIn || st.User == nil {
		_, _ = sb.WriteString("Not logged in.")
		return text(req, sb.String()), nil
	}

	_, _ = sb.WriteString(loginMessage(st))

	token, err := c.Session.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get access token: %w", err)
	}

	claims, err := session.ParseClaims(token)
	if err != nil {
		c.Logger.DebugCtx(ctx, "access token is not a jwt", slog.Any("err", err))
		return text(req, sb.String()), nil
	}

	if !claims.ExpiresAt.IsZero() {
		_, _ = sb.WriteString(fmt.Sprintf("\nToken expires at %s.", claims.ExpiresAt.UTC().Format(time.RFC1123)))
	}

	return text(req, sb.String()), nil
}

// login replies only on failure, the success is announced
// to all admins by the session watcher.
func (c *Ctrl) login(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	args := req.Args()
	if len(args) != 2 {
		return text(req, "Usage: /login <username> <password>"), nil
	}

	st := c.Session.Login(ctx, args[0], args[1])
	if st.Error != "" {
		msg := st.Error
		c.Session.ClearError()
		return text(req, msg), nil
	}

	return nil, nil
}

func (c *Ctrl) logout(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	if c.Session.State().LoggedIn {
		c.loggingOut.Store(true)
	}

	c.Session.Logout(ctx)

	return text(req, "Logged out."), nil
}

func (c *Ctrl) delete(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	id, ok := articleID(req)
	if !ok {
		return text(req, "Usage: /delete <id>"), nil
	}

	if err := c.Editor.DeleteArticle(ctx, id); err != nil {
		return c.editorError(req, err)
	}

	return text(req, admin.MsgDeleted), nil
}

func (c *Ctrl) contacts(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	page := admin.DefaultPage
	if args := req.Args(); len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p <= 0 {
			return text(req, "Usage: /contacts [page]"), nil
		}
		page = p
	}

	res, err := c.Editor.ContactSubmissions(ctx, page, admin.DefaultPageLimit)
	if err != nil {
		return c.editorError(req, err)
	}

	if len(res.Submissions) == 0 {
		return text(req, "No contact submissions."), nil
	}

	sb := &strings.Builder{}
	_, _ = sb.WriteString(fmt.Sprintf("Contact submissions, page %d of %d (total %d):\n",
		res.Pagination.Current, res.Pagination.Pages, res.Pagination.Total))
	for _, s := range res.Submissions {
		_, _ = sb.WriteString(fmt.Sprintf("\nfrom: %s <%s>, at: %s\n%s\n",
			s.Name, s.Email, s.Timestamp, truncate(s.Message, 500)))
	}

	return text(req, sb.String()), nil
}

func (c *Ctrl) cacheStats(_ context.Context, req botx.Request) ([]botx.Response, error) {
	stats := c.Editor.CacheStat()
	return text(req, fmt.Sprintf("hits: %d, misses: %d, added: %d, evicted: %d",
		stats.Hits, stats.Misses, stats.Added, stats.Evicted)), nil
}
