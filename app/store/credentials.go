package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Keys of the credential slots.
const (
	KeyAccessToken  = "auth_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user_data"
)

// User is an identity of the logged in user.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Credentials is a snapshot of the credential slots.
// Empty token means that the slot is absent.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	User         *User
}

// LoggedIn returns true if there is at least one token and the user identity.
func (c Credentials) LoggedIn() bool {
	return (c.AccessToken != "" || c.RefreshToken != "") && c.User != nil
}

// Stale returns true if the access token is gone, but it can be refreshed.
func (c Credentials) Stale() bool {
	return c.AccessToken == "" && c.RefreshToken != "" && c.User != nil
}

// CredentialStore keeps credentials in the key-value storage.
type CredentialStore struct {
	kv Interface
}

// NewCredentialStore makes a new CredentialStore over the given storage.
func NewCredentialStore(kv Interface) *CredentialStore {
	return &CredentialStore{kv: kv}
}

// Credentials reads the current credentials.
func (s *CredentialStore) Credentials(ctx context.Context) (Credentials, error) {
	m, err := s.kv.GetMany(ctx, KeyAccessToken, KeyRefreshToken, KeyUser)
	if err != nil {
		return Credentials{}, fmt.Errorf("get credentials: %w", err)
	}
	return fromMap(m), nil
}

// SaveAuth stores tokens and the user at once.
func (s *CredentialStore) SaveAuth(ctx context.Context, access, refresh string, u User) error {
	bts, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	err = s.kv.Put(ctx, map[string]string{
		KeyAccessToken:  access,
		KeyRefreshToken: refresh,
		KeyUser:         string(bts),
	})
	if err != nil {
		return fmt.Errorf("put credentials: %w", err)
	}

	return nil
}

// UpdateAccessToken overwrites only the access token.
func (s *CredentialStore) UpdateAccessToken(ctx context.Context, access string) error {
	if err := s.kv.Put(ctx, map[string]string{KeyAccessToken: access}); err != nil {
		return fmt.Errorf("put access token: %w", err)
	}
	return nil
}

// ClearAuth removes all credential slots.
func (s *CredentialStore) ClearAuth(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyAccessToken, KeyRefreshToken, KeyUser); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	return nil
}

// Subscribe returns a channel of credential snapshots, the current one is
// delivered immediately. Only the latest snapshot is kept for a slow reader.
func (s *CredentialStore) Subscribe() (<-chan Credentials, func()) {
	src, cancel := s.kv.Subscribe()
	out := make(chan Credentials, 1)

	go func() {
		defer close(out)
		for m := range src {
			c := fromMap(m)

			select {
			case <-out:
			default:
			}
			out <- c
		}
	}()

	return out, cancel
}

func fromMap(m map[string]string) Credentials {
	return Credentials{
		AccessToken:  m[KeyAccessToken],
		RefreshToken: m[KeyRefreshToken],
		User:         decodeUser(m[KeyUser]),
	}
}

// malformed user data is treated as absent
func decodeUser(s string) *User {
	if s == "" {
		return nil
	}

	var u User
	if err := json.Unmarshal([]byte(s), &u); err != nil {
		return nil
	}
	return &u
}
