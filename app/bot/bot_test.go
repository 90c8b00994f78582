package bot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Semior001/politicalfeed/app/admin"
	"github.com/Semior001/politicalfeed/app/feed"
	"github.com/Semior001/politicalfeed/app/remote"
	"github.com/Semior001/politicalfeed/app/session"
	"github.com/Semior001/politicalfeed/app/store"
	"github.com/Semior001/politicalfeed/pkg/botx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

const adminID = "100"

type backend struct {
	featuredHits atomic.Int32
	refreshFails atomic.Bool
}

func (b *backend) handler(t *testing.T) http.Handler {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	authorized := func(r *http.Request) bool { return r.Header.Get("Authorization") == "Bearer "+token }

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","dbState":"connected"}`))
	})
	mux.HandleFunc("/api/articles/featured", func(w http.ResponseWriter, r *http.Request) {
		b.featuredHits.Add(1)
		_, _ = w.Write([]byte(`[{"articleId":1,"title":"Vote *today*","summary":"Polls are open",` +
			`"category":"Elections","date":"2024-01-01T00:00:00"}]`))
	})
	mux.HandleFunc("/api/articles/latest", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "4", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/articles/1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"articleId":1,"title":"Vote *today*","summary":"Polls are open",` +
				`"category":"Elections","date":"2024-01-01T00:00:00","article_text":"Full text","featured":true}`))
		case http.MethodDelete:
			if !authorized(r) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"message":"deleted"}`))
		}
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"accessToken":  token,
			"refreshToken": "refresh",
			"user":         map[string]string{"id": "1", "username": req.Username, "role": "admin"},
		})
	})
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		if b.refreshFails.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": token})
	})
	mux.HandleFunc("/api/admin/contact-submissions", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"submissions":[{"_id":"a","name":"Bob","email":"bob@example.com",` +
			`"message":"Hello","timestamp":"2024-01-01T00:00:00Z"}],"pagination":{"current":2,"pages":3,"total":41}}`))
	})

	return mux
}

type fixture struct {
	ctrl *Ctrl
	rtr  *botx.Router
	api  *botx.APIMock
	kv   *store.Bolt
	be   *backend
}

func prepareCtrl(t *testing.T) *fixture {
	t.Helper()

	be := &backend{}
	ts := httptest.NewServer(be.handler(t))
	t.Cleanup(ts.Close)

	kv, err := store.NewBolt(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	lg := slog.Default()
	rem := remote.NewClient(lg, http.Client{Timeout: 5 * time.Second}, ts.URL+"/api")
	sess := session.NewManager(lg, rem, store.NewCredentialStore(kv))

	api := &botx.APIMock{SendMessageFunc: func(context.Context, botx.Response) error { return nil }}
	ctrl := &Ctrl{
		Logger:         lg,
		API:            api,
		Session:        sess,
		Feed:           feed.NewLoader(lg, rem, feed.WithRetryDelay(time.Millisecond)),
		Editor:         admin.NewService(lg, rem, sess, time.Minute),
		AdminIDs:       []string{adminID},
		HandlerTimeout: 5 * time.Second,
	}

	return &fixture{ctrl: ctrl, rtr: ctrl.Routes(), api: api, kv: kv, be: be}
}

func (f *fixture) send(t *testing.T, chatID, msg string) []botx.Response {
	t.Helper()
	resps, err := f.rtr.Handle(context.Background(), botx.Request{Chat: botx.Chat{ID: chatID}, Text: msg})
	require.NoError(t, err)
	return resps
}

func (f *fixture) sent() []string {
	return lo.Map(f.api.SendMessageCalls(), func(c struct {
		Ctx  context.Context
		Resp botx.Response
	}, _ int) string {
		return c.Resp.Text
	})
}

func TestCtrl_Feed(t *testing.T) {
	f := prepareCtrl(t)

	resps := f.send(t, "1", "/feed")
	require.Len(t, resps, 1)
	assert.True(t, resps[0].Markdown)
	assert.Contains(t, resps[0].Text, "*Featured*")
	assert.Contains(t, resps[0].Text, `*Vote \*today\**`)
	assert.Contains(t, resps[0].Text, "_Elections, January 01, 2024_")
	assert.Contains(t, resps[0].Text, "/article 1")
	assert.NotContains(t, resps[0].Text, "*Latest*")
	assert.Equal(t, []string{"Loading articles..."}, f.sent())

	// shown content is refreshed
	f.send(t, "1", "/feed")
	f.send(t, "1", "/refresh")
	assert.Equal(t, int32(3), f.be.featuredHits.Load())
	assert.False(t, f.ctrl.Feed.State().Refreshing)
}

func TestCtrl_Article(t *testing.T) {
	f := prepareCtrl(t)

	resps := f.send(t, "1", "/article 1")
	require.Len(t, resps, 1)
	assert.Contains(t, resps[0].Text, "Full text")
	assert.Contains(t, resps[0].Text, "_Elections, January 01, 2024, featured_")
	assert.Contains(t, resps[0].Text, "/api/image/1)")

	resps = f.send(t, "1", "/article abc")
	require.Len(t, resps, 1)
	assert.Equal(t, "Usage: /article <id>", resps[0].Text)
}

func TestCtrl_Start(t *testing.T) {
	f := prepareCtrl(t)

	resps := f.send(t, "1", "/start")
	require.Len(t, resps, 1)
	assert.NotContains(t, resps[0].Text, "/delete")

	resps = f.send(t, adminID, "/start")
	require.Len(t, resps, 1)
	assert.Contains(t, resps[0].Text, "/delete")
}

func TestCtrl_AdminOnly(t *testing.T) {
	f := prepareCtrl(t)

	for _, cmd := range []string{"/login admin secret", "/logout", "/delete 1", "/contacts", "/cache"} {
		assert.Empty(t, f.send(t, "1", cmd), cmd)
	}
	assert.False(t, f.ctrl.Session.State().LoggedIn)
}

func TestCtrl_Session(t *testing.T) {
	f := prepareCtrl(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = f.ctrl.Watch(ctx) }()

	resps := f.send(t, adminID, "/delete 1")
	require.Len(t, resps, 1)
	assert.Equal(t, "No authentication token found. Please login again.\n"+
		"Use /login <username> <password> to sign in.", resps[0].Text)

	resps = f.send(t, adminID, "/login admin wrong")
	require.Len(t, resps, 1)
	assert.Equal(t, "Invalid credentials", resps[0].Text)
	assert.Empty(t, f.ctrl.Session.State().Error, "error is shown once")

	assert.Empty(t, f.send(t, adminID, "/login admin secret"))
	require.Eventually(t, func() bool {
		return lo.Contains(f.sent(), "Logged in as admin (admin).")
	}, time.Second, 10*time.Millisecond)

	resps = f.send(t, adminID, "/status")
	require.Len(t, resps, 1)
	assert.Equal(t, "Backend: ok, DB: connected\nLogged in as admin (admin).\n"+
		"Token expires at Tue, 01 Jan 2030 00:00:00 UTC.", resps[0].Text)

	resps = f.send(t, adminID, "/delete 1")
	require.Len(t, resps, 1)
	assert.Equal(t, "Article deleted successfully!", resps[0].Text)

	resps = f.send(t, adminID, "/contacts 2")
	require.Len(t, resps, 1)
	assert.Contains(t, resps[0].Text, "page 2 of 3 (total 41)")
	assert.Contains(t, resps[0].Text, "from: Bob <bob@example.com>")

	resps = f.send(t, adminID, "/logout")
	require.Len(t, resps, 1)
	assert.Equal(t, "Logged out.", resps[0].Text)

	resps = f.send(t, adminID, "/status")
	require.Len(t, resps, 1)
	assert.Equal(t, "Backend: ok, DB: connected\nNot logged in.", resps[0].Text)

	time.Sleep(50 * time.Millisecond)
	for _, msg := range f.sent() {
		assert.False(t, strings.HasPrefix(msg, "Session expired"), "explicit logout must not be reported")
	}
}

func TestCtrl_Watch_SessionExpired(t *testing.T) {
	f := prepareCtrl(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = f.ctrl.Watch(ctx) }()

	assert.Empty(t, f.send(t, adminID, "/login admin secret"))
	require.Eventually(t, func() bool {
		return lo.Contains(f.sent(), "Logged in as admin (admin).")
	}, time.Second, 10*time.Millisecond)

	f.be.refreshFails.Store(true)
	require.NoError(t, f.kv.Delete(context.Background(), store.KeyAccessToken))

	st := f.ctrl.Session.Sync(context.Background())
	assert.False(t, st.LoggedIn)

	require.Eventually(t, func() bool {
		return lo.Contains(f.sent(), "Session expired. Please login again: /login <username> <password>")
	}, time.Second, 10*time.Millisecond)
}

func TestCtrl_CacheStats(t *testing.T) {
	f := prepareCtrl(t)

	f.send(t, "1", "/article 1")
	f.send(t, "1", "/article 1")

	resps := f.send(t, adminID, "/cache")
	require.Len(t, resps, 1)
	assert.Equal(t, "hits: 1, misses: 1, added: 1, evicted: 0", resps[0].Text)
}
