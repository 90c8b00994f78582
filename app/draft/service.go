// Package draft prepares article drafts from existing web pages.
package draft

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/exp/slog"
)

// Summarizer writes a short summary of the page.
type Summarizer interface {
	Summarize(ctx context.Context, page Page) (string, error)
}

// Draft is a prepared article.
type Draft struct {
	Title    string
	Summary  string
	Text     string
	ImageURL string
	Source   string
}

// Service drafts articles from web pages.
type Service struct {
	log        *slog.Logger
	cl         *http.Client
	summarizer Summarizer
	extractor  Extractor
}

// NewService makes a new Service. If summarizer is nil,
// the page excerpt is used as a summary.
func NewService(lg *slog.Logger, cl *http.Client, summarizer Summarizer) *Service {
	return &Service{log: lg, cl: cl, summarizer: summarizer}
}

// Draft downloads the page and makes a draft from it.
func (s *Service) Draft(ctx context.Context, u string) (Draft, error) {
	page, err := s.Page(ctx, u)
	if err != nil {
		return Draft{}, err
	}

	d := Draft{
		Title:    page.Title,
		Summary:  page.Excerpt,
		Text:     page.Content,
		ImageURL: page.ImageURL,
		Source:   u,
	}

	if s.summarizer == nil {
		return d, nil
	}

	if d.Summary, err = s.summarizer.Summarize(ctx, page); err != nil {
		return Draft{}, fmt.Errorf("summarize page: %w", err)
	}

	return d, nil
}

// Page downloads the page and extracts its readable part.
func (s *Service) Page(ctx context.Context, u string) (Page, error) {
	s.log.DebugCtx(ctx, "drafting article from", slog.String("url", u))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.cl.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return Page{}, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	page, err := s.extractor.Extract(resp.Body)
	if err != nil {
		return Page{}, fmt.Errorf("extract article: %w", err)
	}
	page.URL = u

	return page, nil
}
