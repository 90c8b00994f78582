package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/Semior001/politicalfeed/app/session"
)

// Login is a command to sign in and persist the credentials.
type Login struct {
	CommonOpts
	Username string `long:"username" env:"USERNAME" required:"true" description:"username"`
	Password string `long:"password" env:"PASSWORD" required:"true" description:"password"`
}

// Execute runs the command.
func (l *Login) Execute(_ []string) error {
	d, err := l.setup()
	if err != nil {
		return err
	}
	defer d.close()

	st := d.session.Login(context.Background(), l.Username, l.Password)
	if st.Error != "" {
		return errors.New(st.Error)
	}

	l.printf("Logged in as %s (%s)\n", st.User.Username, st.User.Role)
	return nil
}

// Logout is a command to clear the persisted credentials.
type Logout struct {
	CommonOpts
}

// Execute runs the command.
func (l *Logout) Execute(_ []string) error {
	d, err := l.setup()
	if err != nil {
		return err
	}
	defer d.close()

	d.session.Logout(context.Background())
	l.printf("Logged out\n")
	return nil
}

// Status is a command to show the backend health and the session.
type Status struct {
	CommonOpts
}

// Execute runs the command.
func (s *Status) Execute(_ []string) error {
	d, err := s.setup()
	if err != nil {
		return err
	}
	defer d.close()

	ctx := context.Background()

	s.printf("%s\n", d.session.CheckHealth(ctx))

	st := d.session.Sync(ctx)
	if !st.LoggedIn || st.User == nil {
		s.printf("Not logged in\n")
		return nil
	}

	s.printf("Logged in as %s (%s)\n", st.User.Username, st.User.Role)

	token, err := d.session.AccessToken(ctx)
	if err != nil {
		return err
	}

	claims, err := session.ParseClaims(token)
	if err != nil || claims.ExpiresAt.IsZero() {
		return nil
	}

	if claims.Expired(time.Now()) {
		s.printf("Access token expired at %s\n", claims.ExpiresAt.UTC().Format(time.RFC3339))
		return nil
	}

	s.printf("Access token expires at %s\n", claims.ExpiresAt.UTC().Format(time.RFC3339))
	return nil
}
