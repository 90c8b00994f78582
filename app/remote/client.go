// Package remote contains a client of the political news REST backend.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Semior001/politicalfeed/pkg/logx"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/exp/slog"
)

// DefaultBaseURL is the URL of the production backend.
const DefaultBaseURL = "https://politicalgossips.vercel.app/api/"

// Client makes requests to the backend.
type Client struct {
	log     *slog.Logger
	rq      *requester.Requester
	baseURL string
}

// NewClient makes a new Client. baseURL must be an absolute URL,
// the trailing slash is added if missing.
func NewClient(lg *slog.Logger, cl http.Client, baseURL string) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		log:     lg,
		baseURL: baseURL,
		rq: requester.New(cl,
			middleware.Header("User-Agent", "politicalfeed"),
			logx.RequestIDHeader,
			logx.LoggingRoundTripper(lg, logx.RoundTripperOpts{
				Level:         slog.LevelDebug,
				SecretHeaders: []string{"Authorization"},
			}),
		),
	}
}

// ImageURL returns the URL of the article image.
func (c *Client) ImageURL(id int) string { return fmt.Sprintf("%simage/%d", c.baseURL, id) }

type call struct {
	method      string
	path        string
	query       url.Values
	token       string
	body        io.Reader
	contentType string
}

// jsonCall makes a call with JSON encoded body.
func jsonCall(method, path string, body any) (call, error) {
	cl := call{method: method, path: path, body: http.NoBody}
	if body == nil {
		return cl, nil
	}

	bts, err := json.Marshal(body)
	if err != nil {
		return call{}, fmt.Errorf("marshal request body: %w", err)
	}
	cl.body = bytes.NewReader(bts)
	cl.contentType = "application/json"
	return cl, nil
}

// do sends the request, converts transport failures and non-2xx
// responses into *Error. On success the caller must close the body.
func (c *Client) do(ctx context.Context, cl call) (*http.Response, error) {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	if cl.body == nil {
		cl.body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, cl.body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	rq := c.rq
	if cl.contentType == "application/json" || cl.body == http.NoBody {
		rq = rq.With(middleware.JSON)
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if cl.token != "" {
		req.Header.Set("Authorization", bearer(cl.token))
	}

	resp, err := rq.Do(req)
	if err != nil {
		return nil, &Error{Kind: Network, Err: err}
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return resp, nil
	}

	defer c.closeBody(ctx, resp)

	rerr := &Error{Kind: kindByStatus(resp.StatusCode), Status: resp.StatusCode}

	bts, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		rerr.Err = fmt.Errorf("read error body: %w", err)
		return nil, rerr
	}
	rerr.Body = strings.TrimSpace(string(bts))

	var apiErr apiError
	if err := json.Unmarshal(bts, &apiErr); err == nil {
		rerr.Message = apiErr.Message
	}

	return nil, rerr
}

var errEmptyBody = errors.New("empty response body")

// call performs the request and decodes the JSON response into dst,
// dst may be nil if the response body is not needed.
func (c *Client) call(ctx context.Context, cl call, dst any) error {
	resp, err := c.do(ctx, cl)
	if err != nil {
		return err
	}
	defer c.closeBody(ctx, resp)

	if dst == nil {
		return nil
	}

	bts, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: Network, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	bts = bytes.TrimSpace(bts)
	if len(bts) == 0 || bytes.Equal(bts, []byte("null")) {
		return &Error{Kind: Validation, Status: resp.StatusCode, Err: errEmptyBody}
	}

	if err = json.Unmarshal(bts, dst); err != nil {
		return &Error{Kind: Validation, Status: resp.StatusCode, Err: fmt.Errorf("unmarshal body: %w", err)}
	}

	return nil
}

func (c *Client) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
	}
}

func bearer(token string) string {
	if strings.HasPrefix(token, "Bearer ") {
		return token
	}
	return "Bearer " + token
}

// isEmptyBody reports whether the error is about the missing response body.
func isEmptyBody(err error) bool { return errors.Is(err, errEmptyBody) }
