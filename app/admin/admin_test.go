package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Semior001/politicalfeed/app/remote"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func imageURL(id int) string { return fmt.Sprintf("https://example.com/api/image/%d", id) }

func token(tkn string) *TokenSourceMock {
	return &TokenSourceMock{AccessTokenFunc: func(context.Context) (string, error) { return tkn, nil }}
}

func TestService_Article(t *testing.T) {
	rem := &RemoteMock{
		ArticleFunc: func(_ context.Context, id int) (remote.DetailedArticle, error) {
			return remote.DetailedArticle{
				Article: remote.Article{ID: id, Title: "T", Summary: "S", Category: "C", Date: "2024-02-10T08:00:00"},
			}, nil
		},
		ImageURLFunc: imageURL,
	}
	svc := NewService(slog.Default(), rem, token(""), time.Minute)

	a, err := svc.Article(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, Article{
		ID:          7,
		Title:       "T",
		Excerpt:     "S",
		Content:     NoContent,
		ImageURL:    "https://example.com/api/image/7",
		Category:    "C",
		Date:        "February 10, 2024",
		PublishedAt: "2024-02-10T08:00:00",
		Featured:    false,
	}, a)

	// served from cache
	_, err = svc.Article(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, rem.ArticleCalls(), 1)
	assert.Equal(t, 1, svc.CacheStat().Hits)
}

func TestService_Article_TextAndFeatured(t *testing.T) {
	rem := &RemoteMock{
		ArticleFunc: func(_ context.Context, id int) (remote.DetailedArticle, error) {
			return remote.DetailedArticle{
				Article:  remote.Article{ID: id},
				Text:     lo.ToPtr("full text"),
				Featured: lo.ToPtr(true),
			}, nil
		},
		ImageURLFunc: imageURL,
	}
	svc := NewService(slog.Default(), rem, token(""), 0)

	a, err := svc.Article(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "full text", a.Content)
	assert.True(t, a.Featured)

	_, err = svc.Article(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, rem.ArticleCalls(), 2, "cache is disabled")
}

func TestService_Article_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "not found", err: &remote.Error{Kind: remote.NotFound, Status: 404}, want: "Article not found"},
		{name: "empty body", err: &remote.Error{Kind: remote.Validation, Status: 200}, want: "Article not found"},
		{name: "server", err: &remote.Error{Kind: remote.Server, Status: 500, Body: "oops"}, want: "Failed to fetch article: 500 - oops"},
		{
			name: "network",
			err:  &remote.Error{Kind: remote.Network, Err: errors.New("connection refused")},
			want: "Network error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rem := &RemoteMock{ArticleFunc: func(context.Context, int) (remote.DetailedArticle, error) {
				return remote.DetailedArticle{}, fmt.Errorf("get article 1: %w", tt.err)
			}}
			svc := NewService(slog.Default(), rem, token(""), time.Minute)

			_, err := svc.Article(context.Background(), 1)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestService_CreateArticle(t *testing.T) {
	rem := &RemoteMock{
		CreateArticleFunc: func(_ context.Context, tkn string, form remote.ArticleForm) (remote.Article, error) {
			assert.Equal(t, "tkn", tkn)
			assert.Equal(t, "2024-05-01T12:30:00", form.Date)
			assert.Equal(t, "Title", form.Title)
			require.NotNil(t, form.Image)
			return remote.Article{ID: 3, Title: form.Title}, nil
		},
	}
	svc := NewService(slog.Default(), rem, token("tkn"), time.Minute)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	a, err := svc.CreateArticle(context.Background(), remote.ArticleForm{
		Title: "Title",
		Image: &remote.Image{Name: "a.png", Body: strings.NewReader("png")},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, a.ID)
	assert.Equal(t, "Article 'Title' published successfully!", PublishedMessage(a.Title))
}

func TestService_CreateArticle_Errors(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		svc := NewService(slog.Default(), &RemoteMock{}, token(""), time.Minute)
		_, err := svc.CreateArticle(context.Background(), remote.ArticleForm{})
		require.Error(t, err)
		assert.Equal(t, "Please login again to continue", err.Error())
		assert.ErrorIs(t, err, ErrReauth)
	})

	t.Run("token store failure", func(t *testing.T) {
		tokens := &TokenSourceMock{AccessTokenFunc: func(context.Context) (string, error) {
			return "", errors.New("db closed")
		}}
		svc := NewService(slog.Default(), &RemoteMock{}, tokens, time.Minute)
		_, err := svc.CreateArticle(context.Background(), remote.ArticleForm{})
		require.Error(t, err)
		assert.Equal(t, "Error: db closed", err.Error())
		assert.NotErrorIs(t, err, ErrReauth)
	})

	tests := []struct {
		name   string
		err    error
		want   string
		reauth bool
	}{
		{
			name:   "unauthorized",
			err:    &remote.Error{Kind: remote.Auth, Status: http.StatusUnauthorized},
			want:   "Session expired. Please login again.",
			reauth: true,
		},
		{
			name: "bad request",
			err:  &remote.Error{Kind: remote.Server, Status: http.StatusBadRequest, Body: `{"message":"title required"}`},
			want: `Failed to create article: 400 - {"message":"title required"}`,
		},
		{
			name: "no body",
			err:  &remote.Error{Kind: remote.Server, Status: http.StatusBadGateway},
			want: "Failed to create article: 502 - Unknown error",
		},
		{
			name: "invalid response",
			err:  &remote.Error{Kind: remote.Validation, Status: http.StatusCreated},
			want: "Invalid response from server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rem := &RemoteMock{CreateArticleFunc: func(context.Context, string, remote.ArticleForm) (remote.Article, error) {
				return remote.Article{}, tt.err
			}}
			svc := NewService(slog.Default(), rem, token("tkn"), time.Minute)

			_, err := svc.CreateArticle(context.Background(), remote.ArticleForm{})
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.reauth, errors.Is(err, ErrReauth))
		})
	}
}

func TestService_UpdateArticle(t *testing.T) {
	rem := &RemoteMock{
		ArticleFunc: func(_ context.Context, id int) (remote.DetailedArticle, error) {
			return remote.DetailedArticle{Article: remote.Article{ID: id, Title: "old"}}, nil
		},
		UpdateArticleFunc: func(_ context.Context, tkn string, id int, form remote.ArticleForm) error {
			assert.Equal(t, "tkn", tkn)
			assert.Equal(t, 5, id)
			assert.Nil(t, form.Image)
			return nil
		},
		ImageURLFunc: imageURL,
	}
	svc := NewService(slog.Default(), rem, token("tkn"), time.Minute)

	_, err := svc.Article(context.Background(), 5)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateArticle(context.Background(), 5, remote.ArticleForm{Title: "new"}))

	_, err = svc.Article(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, rem.ArticleCalls(), 2, "updated article must be refetched")

	t.Run("failure", func(t *testing.T) {
		rem.UpdateArticleFunc = func(context.Context, string, int, remote.ArticleForm) error {
			return &remote.Error{Kind: remote.Server, Status: 500, Body: "boom"}
		}
		err := svc.UpdateArticle(context.Background(), 5, remote.ArticleForm{})
		require.Error(t, err)
		assert.Equal(t, "Failed to update article: 500 - boom", err.Error())
	})

	t.Run("no token", func(t *testing.T) {
		svc := NewService(slog.Default(), rem, token(""), time.Minute)
		err := svc.UpdateArticle(context.Background(), 5, remote.ArticleForm{})
		require.Error(t, err)
		assert.Equal(t, "Authentication required", err.Error())
	})
}

func TestService_DeleteArticle(t *testing.T) {
	rem := &RemoteMock{
		DeleteArticleFunc: func(_ context.Context, tkn string, id int) error {
			assert.Equal(t, "tkn", tkn)
			assert.Equal(t, 9, id)
			return nil
		},
	}
	svc := NewService(slog.Default(), rem, token("tkn"), time.Minute)
	require.NoError(t, svc.DeleteArticle(context.Background(), 9))
	assert.Len(t, rem.DeleteArticleCalls(), 1)

	t.Run("no token", func(t *testing.T) {
		svc := NewService(slog.Default(), rem, token(""), time.Minute)
		err := svc.DeleteArticle(context.Background(), 9)
		require.Error(t, err)
		assert.Equal(t, "No authentication token found. Please login again.", err.Error())
		assert.ErrorIs(t, err, ErrReauth)
	})
}

func TestService_DeleteArticle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   string
		reauth bool
	}{
		{
			name:   "unauthorized",
			err:    &remote.Error{Kind: remote.Auth, Status: http.StatusUnauthorized},
			want:   "Authentication failed. Please login again.",
			reauth: true,
		},
		{
			name: "forbidden",
			err:  &remote.Error{Kind: remote.Auth, Status: http.StatusForbidden},
			want: "You don't have permission to delete this article.",
		},
		{
			name: "not found",
			err:  &remote.Error{Kind: remote.NotFound, Status: http.StatusNotFound},
			want: "Article not found.",
		},
		{
			name:   "invalid token",
			err:    &remote.Error{Kind: remote.Server, Status: http.StatusBadRequest, Body: "Invalid token"},
			want:   "Failed to delete article: 400 - Invalid token",
			reauth: true,
		},
		{
			name: "network",
			err:  &remote.Error{Kind: remote.Network, Err: errors.New("timeout")},
			want: "Network error: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rem := &RemoteMock{DeleteArticleFunc: func(context.Context, string, int) error { return tt.err }}
			svc := NewService(slog.Default(), rem, token("tkn"), time.Minute)

			err := svc.DeleteArticle(context.Background(), 1)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.reauth, errors.Is(err, ErrReauth))
		})
	}
}

func TestService_ContactSubmissions(t *testing.T) {
	rem := &RemoteMock{
		ContactSubmissionsFunc: func(_ context.Context, tkn string, page, limit int) (remote.ContactSubmissions, error) {
			assert.Equal(t, "tkn", tkn)
			assert.Equal(t, 1, page)
			assert.Equal(t, 20, limit)
			return remote.ContactSubmissions{
				Submissions: []remote.ContactSubmission{{ID: "a", Name: "N"}},
				Pagination:  remote.Pagination{Current: 1, Pages: 1, Total: 1},
			}, nil
		},
	}
	svc := NewService(slog.Default(), rem, token("tkn"), time.Minute)

	res, err := svc.ContactSubmissions(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, res.Submissions, 1)
	assert.Equal(t, 1, res.Pagination.Total)
}

func TestService_ContactSubmissions_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   string
		reauth bool
	}{
		{
			name:   "unauthorized",
			err:    &remote.Error{Kind: remote.Auth, Status: http.StatusUnauthorized},
			want:   "Authentication failed. Please login again.",
			reauth: true,
		},
		{
			name: "forbidden",
			err:  &remote.Error{Kind: remote.Auth, Status: http.StatusForbidden},
			want: "You don't have permission to view contact submissions.",
		},
		{
			name: "server",
			err:  &remote.Error{Kind: remote.Server, Status: http.StatusInternalServerError, Body: "db down"},
			want: "Failed to fetch contact submissions: 500 - db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rem := &RemoteMock{
				ContactSubmissionsFunc: func(context.Context, string, int, int) (remote.ContactSubmissions, error) {
					return remote.ContactSubmissions{}, tt.err
				},
			}
			svc := NewService(slog.Default(), rem, token("tkn"), time.Minute)

			_, err := svc.ContactSubmissions(context.Background(), 2, 5)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.reauth, errors.Is(err, ErrReauth))
		})
	}
}
