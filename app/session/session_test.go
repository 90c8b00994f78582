package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Semior001/politicalfeed/app/remote"
	"github.com/Semior001/politicalfeed/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

var admin = store.User{ID: "1", Username: "admin", Role: "admin"}

func prepareCreds(t *testing.T) *store.CredentialStore {
	t.Helper()
	b, err := store.NewBolt(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, b.Close()) })
	return store.NewCredentialStore(b)
}

func okLogin(_ context.Context, username, password string) (remote.LoginResponse, error) {
	return remote.LoginResponse{
		AccessToken:  "a1",
		RefreshToken: "r1",
		User:         remote.User{ID: admin.ID, Username: admin.Username, Role: admin.Role},
	}, nil
}

func persisted(t *testing.T, creds *store.CredentialStore) store.Credentials {
	t.Helper()
	c, err := creds.Credentials(context.Background())
	require.NoError(t, err)
	return c
}

func TestManager_Login(t *testing.T) {
	creds := prepareCreds(t)
	m := NewManager(slog.Default(), &RemoteMock{LoginFunc: okLogin}, creds)

	st := m.Login(context.Background(), "admin", "secret")
	assert.Equal(t, State{LoggedIn: true, User: &admin, BackendStatus: StatusChecking}, st)
	assert.Equal(t, st, m.State())

	assert.Equal(t, store.Credentials{AccessToken: "a1", RefreshToken: "r1", User: &admin}, persisted(t, creds))

	select {
	case <-m.LoginSucceeded():
	default:
		t.Fatal("login success signal is not fired")
	}

	select {
	case <-m.LoginSucceeded():
		t.Fatal("login success signal must be consumed once")
	default:
	}
}

func TestManager_Login_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "structured message",
			err:  &remote.Error{Kind: remote.Auth, Status: http.StatusUnauthorized, Message: "Invalid credentials"},
			want: "Invalid credentials",
		},
		{
			name: "unstructured body",
			err:  &remote.Error{Kind: remote.Server, Status: http.StatusBadGateway, Body: "<html>"},
			want: "Login failed: 502 Bad Gateway",
		},
		{
			name: "network",
			err:  &remote.Error{Kind: remote.Network, Err: errors.New("connection refused")},
			want: "Network error: connection refused",
		},
		{
			name: "empty body",
			err:  &remote.Error{Kind: remote.Validation, Status: http.StatusOK},
			want: "Invalid response",
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: "Network error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := prepareCreds(t)
			m := NewManager(slog.Default(), &RemoteMock{
				LoginFunc: func(context.Context, string, string) (remote.LoginResponse, error) {
					return remote.LoginResponse{}, tt.err
				},
			}, creds)

			st := m.Login(context.Background(), "admin", "wrong")
			assert.False(t, st.LoggedIn)
			assert.False(t, st.Loading)
			assert.Nil(t, st.User)
			assert.Equal(t, tt.want, st.Error)
			assert.Equal(t, store.Credentials{}, persisted(t, creds))

			select {
			case <-m.LoginSucceeded():
				t.Fatal("login success signal must not fire on failure")
			default:
			}

			m.ClearError()
			assert.Empty(t, m.State().Error)
		})
	}
}

func TestManager_Logout(t *testing.T) {
	creds := prepareCreds(t)
	m := NewManager(slog.Default(), &RemoteMock{
		LoginFunc: okLogin,
		CheckHealthFunc: func(context.Context) (remote.Health, error) {
			return remote.Health{Status: "ok"}, nil
		},
	}, creds)

	m.CheckHealth(context.Background())
	m.Login(context.Background(), "admin", "secret")

	st := m.Logout(context.Background())
	assert.Equal(t, State{BackendStatus: "Backend: ok"}, st)
	assert.Equal(t, store.Credentials{}, persisted(t, creds))

	again := m.Logout(context.Background())
	assert.Equal(t, st, again, "logout must be idempotent")
	assert.Equal(t, store.Credentials{}, persisted(t, creds))
}

func TestManager_Sync_Refresh(t *testing.T) {
	ctx := context.Background()
	creds := prepareCreds(t)
	require.NoError(t, creds.SaveAuth(ctx, "", "r1", admin))

	rem := &RemoteMock{RefreshTokenFunc: func(_ context.Context, tok string) (string, error) {
		assert.Equal(t, "r1", tok)
		return "a2", nil
	}}
	m := NewManager(slog.Default(), rem, creds)

	st := m.Sync(ctx)
	assert.True(t, st.LoggedIn)
	assert.Equal(t, &admin, st.User)
	assert.Equal(t, store.Credentials{AccessToken: "a2", RefreshToken: "r1", User: &admin}, persisted(t, creds))
	assert.Len(t, rem.RefreshTokenCalls(), 1)

	tok, err := m.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a2", tok)

	// access token is present now, so nothing to refresh
	m.Sync(ctx)
	assert.Len(t, rem.RefreshTokenCalls(), 1)
}

func TestManager_Sync_RefreshFailed(t *testing.T) {
	ctx := context.Background()
	creds := prepareCreds(t)
	require.NoError(t, creds.SaveAuth(ctx, "", "r1", admin))

	m := NewManager(slog.Default(), &RemoteMock{RefreshTokenFunc: func(context.Context, string) (string, error) {
		return "", &remote.Error{Kind: remote.Auth, Status: http.StatusUnauthorized}
	}}, creds)

	st := m.Sync(ctx)
	assert.False(t, st.LoggedIn)
	assert.Nil(t, st.User)
	assert.Equal(t, store.Credentials{}, persisted(t, creds))
}

func TestManager_Sync_NoRefreshWithoutUser(t *testing.T) {
	ctx := context.Background()
	creds := prepareCreds(t)
	require.NoError(t, creds.UpdateAccessToken(ctx, ""))

	m := NewManager(slog.Default(), &RemoteMock{}, creds)

	st := m.Sync(ctx)
	assert.False(t, st.LoggedIn)
}

func TestManager_CheckHealth(t *testing.T) {
	tests := []struct {
		name   string
		health remote.Health
		err    error
		want   string
	}{
		{name: "with db", health: remote.Health{Status: "ok", DBState: "connected"}, want: "Backend: ok, DB: connected"},
		{name: "without db", health: remote.Health{Status: "ok"}, want: "Backend: ok"},
		{name: "empty body", want: "Backend: connected"},
		{name: "failure", err: errors.New("timeout"), want: StatusUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rem := &RemoteMock{CheckHealthFunc: func(context.Context) (remote.Health, error) {
				return tt.health, tt.err
			}}
			m := NewManager(slog.Default(), rem, prepareCreds(t))
			assert.Equal(t, StatusChecking, m.State().BackendStatus)

			assert.Equal(t, tt.want, m.CheckHealth(context.Background()))
			assert.Equal(t, tt.want, m.State().BackendStatus)
			assert.Len(t, rem.CheckHealthCalls(), 1)
		})
	}
}

func TestManager_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	creds := prepareCreds(t)
	require.NoError(t, creds.SaveAuth(ctx, "", "r1", admin))

	rem := &RemoteMock{
		CheckHealthFunc: func(context.Context) (remote.Health, error) {
			return remote.Health{}, errors.New("down")
		},
		RefreshTokenFunc: func(context.Context, string) (string, error) { return "a2", nil },
		LoginFunc:        okLogin,
	}
	m := NewManager(slog.Default(), rem, creds)

	states, unsub := m.Subscribe()
	defer unsub()

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool {
		st := m.State()
		return st.LoggedIn && st.BackendStatus == StatusUnavailable
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, store.Credentials{AccessToken: "a2", RefreshToken: "r1", User: &admin}, persisted(t, creds))

	// access token is invalidated externally, the manager must refresh it again
	require.NoError(t, creds.UpdateAccessToken(ctx, ""))
	require.Eventually(t, func() bool {
		return len(rem.RefreshTokenCalls()) == 2 && persisted(t, creds).AccessToken == "a2"
	}, time.Second, 10*time.Millisecond)

	// the logout is observed by subscribers
	m.Logout(ctx)
	require.Eventually(t, func() bool {
		select {
		case st := <-states:
			return !st.LoggedIn && st.User == nil
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("run is not stopped")
	}
}
