package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strconv"
)

// FeaturedArticles returns the list of featured articles.
func (c *Client) FeaturedArticles(ctx context.Context) ([]Article, error) {
	return c.articles(ctx, call{method: http.MethodGet, path: "articles/featured"})
}

// LatestArticles returns up to limit latest articles.
func (c *Client) LatestArticles(ctx context.Context, limit int) ([]Article, error) {
	return c.articles(ctx, call{
		method: http.MethodGet,
		path:   "articles/latest",
		query:  map[string][]string{"limit": {strconv.Itoa(limit)}},
	})
}

func (c *Client) articles(ctx context.Context, cl call) ([]Article, error) {
	var res []Article
	err := c.call(ctx, cl, &res)
	if isEmptyBody(err) {
		return []Article{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", cl.path, err)
	}
	return res, nil
}

// Article returns the article with its text.
func (c *Client) Article(ctx context.Context, id int) (DetailedArticle, error) {
	var res DetailedArticle
	if err := c.call(ctx, call{method: http.MethodGet, path: "articles/" + strconv.Itoa(id)}, &res); err != nil {
		return DetailedArticle{}, fmt.Errorf("get article %d: %w", id, err)
	}
	return res, nil
}

// CreateArticle publishes a new article, form must contain an image.
func (c *Client) CreateArticle(ctx context.Context, token string, form ArticleForm) (Article, error) {
	if form.Image == nil {
		return Article{}, fmt.Errorf("create article: image is required")
	}

	body, contentType, err := encodeForm(form)
	if err != nil {
		return Article{}, fmt.Errorf("encode article form: %w", err)
	}

	var res Article
	err = c.call(ctx, call{
		method:      http.MethodPost,
		path:        "articles",
		token:       token,
		body:        body,
		contentType: contentType,
	}, &res)
	if err != nil {
		return Article{}, fmt.Errorf("create article: %w", err)
	}

	return res, nil
}

// UpdateArticle replaces the article fields, the image is replaced only
// if present in the form.
func (c *Client) UpdateArticle(ctx context.Context, token string, id int, form ArticleForm) error {
	body, contentType, err := encodeForm(form)
	if err != nil {
		return fmt.Errorf("encode article form: %w", err)
	}

	err = c.call(ctx, call{
		method:      http.MethodPut,
		path:        "articles/" + strconv.Itoa(id),
		token:       token,
		body:        body,
		contentType: contentType,
	}, nil)
	if err != nil {
		return fmt.Errorf("update article %d: %w", id, err)
	}

	return nil
}

// DeleteArticle removes the article.
func (c *Client) DeleteArticle(ctx context.Context, token string, id int) error {
	err := c.call(ctx, call{method: http.MethodDelete, path: "articles/" + strconv.Itoa(id), token: token}, nil)
	if err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	return nil
}

func encodeForm(form ArticleForm) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct{ name, value string }{
		{"title", form.Title},
		{"summary", form.Summary},
		{"article_text", form.Text},
		{"category", form.Category},
		{"date", form.Date},
		{"featured", strconv.FormatBool(form.Featured)},
	}

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	if form.Image != nil {
		ct := mime.TypeByExtension(filepath.Ext(form.Image.Name))
		if ct == "" {
			ct = "application/octet-stream"
		}

		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(form.Image.Name)))
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}

		if _, err = io.Copy(part, form.Image.Body); err != nil {
			return nil, "", fmt.Errorf("write image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return buf, w.FormDataContentType(), nil
}
