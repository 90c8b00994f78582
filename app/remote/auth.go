package remote

import (
	"context"
	"fmt"
	"net/http"
)

// CheckHealth requests the backend health report.
func (c *Client) CheckHealth(ctx context.Context) (Health, error) {
	var h Health
	err := c.call(ctx, call{method: http.MethodGet, path: "health"}, &h)
	if isEmptyBody(err) {
		return Health{}, nil
	}
	if err != nil {
		return Health{}, fmt.Errorf("check health: %w", err)
	}
	return h, nil
}

// Login exchanges user credentials to the pair of tokens.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	cl, err := jsonCall(http.MethodPost, "auth/login", loginRequest{Username: username, Password: password})
	if err != nil {
		return LoginResponse{}, err
	}

	var resp LoginResponse
	if err = c.call(ctx, cl, &resp); err != nil {
		return LoginResponse{}, fmt.Errorf("login: %w", err)
	}

	return resp, nil
}

// RefreshToken exchanges the refresh token to a new access token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	cl, err := jsonCall(http.MethodPost, "auth/refresh", refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", err
	}

	var resp refreshResponse
	if err = c.call(ctx, cl, &resp); err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}

	if resp.AccessToken == "" {
		return "", fmt.Errorf("refresh token: %w", &Error{Kind: Validation, Status: http.StatusOK, Err: errEmptyBody})
	}

	return resp.AccessToken, nil
}
