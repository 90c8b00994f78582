// Package session keeps track of the authenticated user: it logs in and out,
// and silently refreshes the access token when only the refresh token is left.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Semior001/politicalfeed/app/remote"
	"github.com/Semior001/politicalfeed/app/store"
	"github.com/Semior001/politicalfeed/pkg/pubsub"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

//go:generate moq -out mock_remote.go . Remote

// Remote defines the backend calls needed to maintain the session.
type Remote interface {
	CheckHealth(ctx context.Context) (remote.Health, error)
	Login(ctx context.Context, username, password string) (remote.LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
}

// CredentialStore defines methods of the persisted credentials.
type CredentialStore interface {
	Credentials(ctx context.Context) (store.Credentials, error)
	SaveAuth(ctx context.Context, access, refresh string, u store.User) error
	UpdateAccessToken(ctx context.Context, access string) error
	ClearAuth(ctx context.Context) error
	Subscribe() (<-chan store.Credentials, func())
}

// Backend status strings.
const (
	StatusChecking    = "Checking..."
	StatusUnavailable = "Backend unavailable"
)

// State is a snapshot of the session, as it should be shown to the user.
type State struct {
	LoggedIn      bool
	User          *store.User
	Loading       bool
	Error         string
	BackendStatus string
}

// Manager owns the session state.
type Manager struct {
	log   *slog.Logger
	rem   Remote
	creds CredentialStore

	state    *pubsub.Value[State]
	loggedIn chan struct{}
}

// NewManager makes a new Manager.
func NewManager(lg *slog.Logger, rem Remote, creds CredentialStore) *Manager {
	return &Manager{
		log:      lg,
		rem:      rem,
		creds:    creds,
		state:    pubsub.NewValue(State{BackendStatus: StatusChecking}),
		loggedIn: make(chan struct{}, 1),
	}
}

// Run checks the backend health once and reconciles the session with every
// change of the persisted credentials until the context is done.
func (m *Manager) Run(ctx context.Context) error {
	ewg, ctx := errgroup.WithContext(ctx)

	ewg.Go(func() error {
		m.CheckHealth(ctx)
		return nil
	})

	ewg.Go(func() error {
		updates, cancel := m.creds.Subscribe()
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case creds, ok := <-updates:
				if !ok {
					return errors.New("credentials updates chan closed")
				}
				m.apply(ctx, creds)
			}
		}
	})

	return ewg.Wait()
}

// State returns the current state.
func (m *Manager) State() State { return m.state.Get() }

// Subscribe returns a channel of state snapshots.
func (m *Manager) Subscribe() (<-chan State, func()) { return m.state.Subscribe() }

// LoginSucceeded returns a channel that fires once per successful login.
// A single receive consumes the signal.
func (m *Manager) LoginSucceeded() <-chan struct{} { return m.loggedIn }

// ClearError resets the error message.
func (m *Manager) ClearError() {
	m.state.Update(func(s State) State {
		s.Error = ""
		return s
	})
}

// CheckHealth requests the backend health and stores the human-readable status.
// It is never retried.
func (m *Manager) CheckHealth(ctx context.Context) string {
	status := StatusUnavailable

	h, err := m.rem.CheckHealth(ctx)
	switch {
	case err != nil:
		m.log.WarnCtx(ctx, "backend health check failed", slog.Any("err", err))
	case h.DBState != "":
		status = fmt.Sprintf("Backend: %s, DB: %s", h.Status, h.DBState)
	case h.Status != "":
		status = fmt.Sprintf("Backend: %s", h.Status)
	default:
		status = "Backend: connected"
	}

	m.state.Update(func(s State) State {
		s.BackendStatus = status
		return s
	})

	return status
}

// Sync reads the persisted credentials, refreshes the access token if it is
// missing, and updates the state accordingly.
func (m *Manager) Sync(ctx context.Context) State {
	creds, err := m.creds.Credentials(ctx)
	if err != nil {
		m.log.ErrorCtx(ctx, "failed to read credentials", slog.Any("err", err))
		return m.State()
	}
	return m.apply(ctx, creds)
}

func (m *Manager) apply(ctx context.Context, creds store.Credentials) State {
	if creds.Stale() {
		creds = m.refresh(ctx, creds)
	}

	return m.state.Update(func(s State) State {
		s.LoggedIn = creds.LoggedIn()
		s.User = creds.User
		return s
	})
}

// refresh exchanges the refresh token, on any failure the credentials are cleared.
func (m *Manager) refresh(ctx context.Context, creds store.Credentials) store.Credentials {
	tok, err := m.rem.RefreshToken(ctx, creds.RefreshToken)
	if err == nil {
		if err = m.creds.UpdateAccessToken(ctx, tok); err == nil {
			m.log.InfoCtx(ctx, "access token refreshed", slog.String("username", creds.User.Username))
			creds.AccessToken = tok
			return creds
		}
	}

	m.log.WarnCtx(ctx, "failed to refresh access token, logging out", slog.Any("err", err))

	if err = m.creds.ClearAuth(ctx); err != nil {
		m.log.ErrorCtx(ctx, "failed to clear credentials", slog.Any("err", err))
	}

	return store.Credentials{}
}

// Login authenticates the user and persists the credentials.
// Failures are reported in the Error field of the returned state.
func (m *Manager) Login(ctx context.Context, username, password string) State {
	m.state.Update(func(s State) State {
		s.Loading = true
		s.Error = ""
		return s
	})

	resp, err := m.rem.Login(ctx, username, password)
	if err != nil {
		m.log.WarnCtx(ctx, "login failed", slog.String("username", username), slog.Any("err", err))
		return m.fail(LoginError(err))
	}

	u := store.User{ID: resp.User.ID, Username: resp.User.Username, Role: resp.User.Role}

	if err = m.creds.SaveAuth(ctx, resp.AccessToken, resp.RefreshToken, u); err != nil {
		m.log.ErrorCtx(ctx, "failed to save credentials", slog.Any("err", err))
		return m.fail(fmt.Sprintf("Login failed: %v", err))
	}

	st := m.state.Update(func(s State) State {
		s.Loading = false
		s.LoggedIn = true
		s.User = &u
		return s
	})

	select {
	case m.loggedIn <- struct{}{}:
	default:
	}

	m.log.InfoCtx(ctx, "logged in", slog.String("username", u.Username), slog.String("role", u.Role))
	return st
}

func (m *Manager) fail(msg string) State {
	return m.state.Update(func(s State) State {
		s.Loading = false
		s.Error = msg
		return s
	})
}

// Logout clears the credentials and every transient flag,
// only the backend status survives.
func (m *Manager) Logout(ctx context.Context) State {
	if err := m.creds.ClearAuth(ctx); err != nil {
		m.log.ErrorCtx(ctx, "failed to clear credentials", slog.Any("err", err))
	}

	select {
	case <-m.loggedIn:
	default:
	}

	return m.state.Update(func(s State) State {
		return State{BackendStatus: s.BackendStatus}
	})
}

// AccessToken returns the persisted access token, or empty string if there is none.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	creds, err := m.creds.Credentials(ctx)
	if err != nil {
		return "", fmt.Errorf("get credentials: %w", err)
	}
	return creds.AccessToken, nil
}

// LoginError converts the login failure into the message for the user.
func LoginError(err error) string {
	var rerr *remote.Error
	if !errors.As(err, &rerr) {
		return fmt.Sprintf("Network error: %v", err)
	}

	switch {
	case rerr.Kind == remote.Network:
		return fmt.Sprintf("Network error: %v", rerr.Err)
	case rerr.Kind == remote.Validation:
		return "Invalid response"
	case rerr.Message != "":
		return rerr.Message
	default:
		return fmt.Sprintf("Login failed: %d %s", rerr.Status, http.StatusText(rerr.Status))
	}
}
