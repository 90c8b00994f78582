package remote

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// ContactSubmissions returns the page of messages left through the contact form.
func (c *Client) ContactSubmissions(ctx context.Context, token string, page, limit int) (ContactSubmissions, error) {
	var res ContactSubmissions
	err := c.call(ctx, call{
		method: http.MethodGet,
		path:   "admin/contact-submissions",
		token:  token,
		query: map[string][]string{
			"page":  {strconv.Itoa(page)},
			"limit": {strconv.Itoa(limit)},
		},
	}, &res)
	if err != nil {
		return ContactSubmissions{}, fmt.Errorf("get contact submissions: %w", err)
	}
	return res, nil
}
