// Package admin implements the operations of the logged in editor:
// article details, publishing, editing, deleting and reading
// the contact submissions.
package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Semior001/politicalfeed/app/feed"
	"github.com/Semior001/politicalfeed/app/remote"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_remote.go . Remote
//go:generate moq -out mock_token_source.go . TokenSource

// Remote defines the backend calls of the editor.
type Remote interface {
	Article(ctx context.Context, id int) (remote.DetailedArticle, error)
	CreateArticle(ctx context.Context, token string, form remote.ArticleForm) (remote.Article, error)
	UpdateArticle(ctx context.Context, token string, id int, form remote.ArticleForm) error
	DeleteArticle(ctx context.Context, token string, id int) error
	ContactSubmissions(ctx context.Context, token string, page, limit int) (remote.ContactSubmissions, error)
	ImageURL(id int) string
}

// TokenSource provides the access token of the current session.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Defaults.
const (
	NoContent        = "No content available"
	DateLayout       = "2006-01-02T15:04:05"
	DefaultPage      = 1
	DefaultPageLimit = 20
	ArticleCacheTTL  = time.Minute
)

// Messages of the successful operations.
const (
	MsgUpdated = "Article updated successfully!"
	MsgDeleted = "Article deleted successfully!"
)

// PublishedMessage returns the message about the published article.
func PublishedMessage(title string) string {
	return fmt.Sprintf("Article '%s' published successfully!", title)
}

// Article is an article with its full text.
// Date is formatted for display, PublishedAt is the date as returned by the backend.
type Article struct {
	ID          int
	Title       string
	Excerpt     string
	Content     string
	ImageURL    string
	Category    string
	Date        string
	PublishedAt string
	Featured    bool
}

// Service performs the editor operations.
type Service struct {
	log    *slog.Logger
	rem    Remote
	tokens TokenSource
	cache  cache.Cache[int, Article]
	now    func() time.Time
}

// NewService makes a new Service. Articles are cached for the given ttl,
// zero ttl disables the cache.
func NewService(lg *slog.Logger, rem Remote, tokens TokenSource, ttl time.Duration) *Service {
	svc := &Service{
		log:    lg,
		rem:    rem,
		tokens: tokens,
		now:    time.Now,
	}

	if ttl > 0 {
		svc.cache = cache.NewCache[int, Article]().
			WithLRU().
			WithMaxKeys(100).
			WithTTL(ttl)
	}

	return svc
}

// CacheStat returns the article cache stats.
func (s *Service) CacheStat() cache.Stats {
	if s.cache == nil {
		return cache.Stats{}
	}
	return s.cache.Stat()
}

// Article returns the article by its id.
func (s *Service) Article(ctx context.Context, id int) (Article, error) {
	if s.cache != nil {
		if a, ok := s.cache.Get(id); ok {
			return a, nil
		}
	}

	da, err := s.rem.Article(ctx, id)
	if err != nil {
		return Article{}, articleError(err)
	}

	content := NoContent
	if da.Text != nil {
		content = *da.Text
	}

	a := Article{
		ID:          da.ID,
		Title:       da.Title,
		Excerpt:     da.Summary,
		Content:     content,
		ImageURL:    s.rem.ImageURL(da.ID),
		Category:    da.Category,
		Date:        feed.FormatDate(da.Date),
		PublishedAt: da.Date,
		Featured:    lo.FromPtr(da.Featured),
	}

	if s.cache != nil {
		s.cache.Set(id, a, 0)
	}

	return a, nil
}

// CreateArticle publishes a new article dated now.
func (s *Service) CreateArticle(ctx context.Context, form remote.ArticleForm) (remote.Article, error) {
	token, err := s.token(ctx, "Please login again to continue")
	if err != nil {
		return remote.Article{}, err
	}

	form.Date = s.now().Format(DateLayout)

	a, err := s.rem.CreateArticle(ctx, token, form)
	if err != nil {
		return remote.Article{}, createError(err)
	}

	s.log.InfoCtx(ctx, "article published", slog.Int("id", a.ID), slog.String("title", a.Title))

	return a, nil
}

// UpdateArticle replaces the fields of the article.
func (s *Service) UpdateArticle(ctx context.Context, id int, form remote.ArticleForm) error {
	token, err := s.token(ctx, "Authentication required")
	if err != nil {
		return err
	}

	if err = s.rem.UpdateArticle(ctx, token, id, form); err != nil {
		return updateError(err)
	}

	s.invalidate(id)
	s.log.InfoCtx(ctx, "article updated", slog.Int("id", id))

	return nil
}

// DeleteArticle removes the article.
func (s *Service) DeleteArticle(ctx context.Context, id int) error {
	token, err := s.token(ctx, "No authentication token found. Please login again.")
	if err != nil {
		return err
	}

	if err = s.rem.DeleteArticle(ctx, token, id); err != nil {
		return deleteError(err)
	}

	s.invalidate(id)
	s.log.InfoCtx(ctx, "article deleted", slog.Int("id", id))

	return nil
}

// ContactSubmissions returns the page of the contact submissions.
// Non-positive page and limit are replaced with defaults.
func (s *Service) ContactSubmissions(ctx context.Context, page, limit int) (remote.ContactSubmissions, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	token, err := s.token(ctx, "Authentication required")
	if err != nil {
		return remote.ContactSubmissions{}, err
	}

	res, err := s.rem.ContactSubmissions(ctx, token, page, limit)
	if err != nil {
		return remote.ContactSubmissions{}, contactsError(err)
	}

	return res, nil
}

func (s *Service) token(ctx context.Context, missingMsg string) (string, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return "", &Error{Message: "Error: " + err.Error(), Err: err}
	}

	if token == "" {
		return "", &Error{Message: missingMsg, Reauth: true}
	}

	return token, nil
}

func (s *Service) invalidate(id int) {
	if s.cache != nil {
		s.cache.Invalidate(id)
	}
}

// ErrReauth is matched by errors, which require the user to login again.
var ErrReauth = errors.New("re-authentication required")

// Error is a failure of the editor operation with the message
// to show to the user.
type Error struct {
	Message string
	Reauth  bool
	Err     error
}

func (e *Error) Error() string { return e.Message }

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether the error requires the user to login again.
func (e *Error) Is(target error) bool { return e.Reauth && target == ErrReauth }

// describe converts the remote failure into the user-facing error,
// statusMsgs override messages for the specific status codes.
func describe(err error, failedTo string, statusMsgs map[int]string) *Error {
	var rerr *remote.Error
	if !errors.As(err, &rerr) || rerr.Kind == remote.Network {
		cause := err
		if rerr != nil && rerr.Err != nil {
			cause = rerr.Err
		}
		return &Error{Message: fmt.Sprintf("Network error: %v", cause), Err: err}
	}

	if msg, ok := statusMsgs[rerr.Status]; ok {
		return &Error{Message: msg, Err: err}
	}

	if rerr.Kind == remote.Validation {
		return &Error{Message: "Invalid response from server", Err: err}
	}

	body := rerr.Body
	if body == "" {
		body = "Unknown error"
	}

	return &Error{Message: fmt.Sprintf("Failed to %s: %d - %s", failedTo, rerr.Status, body), Err: err}
}

func articleError(err error) error {
	e := describe(err, "fetch article", map[int]string{http.StatusNotFound: "Article not found"})
	if remote.KindOf(err) == remote.Validation {
		e.Message = "Article not found"
	}
	return e
}

func createError(err error) error {
	e := describe(err, "create article", nil)

	var rerr *remote.Error
	if errors.As(err, &rerr) && (rerr.Status == http.StatusUnauthorized || strings.Contains(rerr.Body, "Unauthorized")) {
		e.Message = "Session expired. Please login again."
		e.Reauth = true
	}
	return e
}

func updateError(err error) error {
	return describe(err, "update article", nil)
}

func deleteError(err error) error {
	e := describe(err, "delete article", map[int]string{
		http.StatusUnauthorized: "Authentication failed. Please login again.",
		http.StatusForbidden:    "You don't have permission to delete this article.",
		http.StatusNotFound:     "Article not found.",
	})
	e.Reauth = strings.Contains(e.Message, "Authentication failed") || strings.Contains(e.Message, "Invalid token")
	return e
}

func contactsError(err error) error {
	e := describe(err, "fetch contact submissions", map[int]string{
		http.StatusUnauthorized: "Authentication failed. Please login again.",
		http.StatusForbidden:    "You don't have permission to view contact submissions.",
	})
	e.Reauth = remote.KindOf(err) == remote.Auth && e.Message == "Authentication failed. Please login again."
	return e
}
