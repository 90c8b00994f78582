package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Semior001/politicalfeed/app/admin"
	"github.com/Semior001/politicalfeed/app/draft"
	"github.com/Semior001/politicalfeed/app/remote"
	"golang.org/x/exp/slog"
)

// ArticleID is a positional argument with the id of the article.
type ArticleID struct {
	ID int `positional-arg-name:"id" required:"true"`
}

func editor(d *deps) *admin.Service {
	// one-shot commands do not benefit from the cache
	return admin.NewService(d.log.With(slog.String("prefix", "admin")), d.rem, d.session, 0)
}

// Article is a command to show the article.
type Article struct {
	CommonOpts
	Args ArticleID `positional-args:"yes"`
}

// Execute runs the command.
func (a *Article) Execute(_ []string) error {
	d, err := a.setup()
	if err != nil {
		return err
	}
	defer d.close()

	art, err := editor(d).Article(context.Background(), a.Args.ID)
	if err != nil {
		return err
	}

	a.printf("[%d] %s\n%s, %s", art.ID, art.Title, art.Category, art.Date)
	if art.Featured {
		a.printf(", featured")
	}
	a.printf("\nimage: %s\n\n%s\n\n%s\n", art.ImageURL, art.Excerpt, art.Content)
	return nil
}

// Publish is a command to publish a new article.
type Publish struct {
	CommonOpts
	Title    string `long:"title" description:"article title"`
	Summary  string `long:"summary" description:"article summary"`
	Text     string `long:"text" description:"article text"`
	Category string `long:"category" default:"Politics" description:"article category"`
	Featured bool   `long:"featured" description:"mark the article as featured"`
	Image    string `long:"image" required:"true" description:"path to the article image"`

	Draft struct {
		URL    string `long:"url" description:"url of the page to draft the article from"`
		OpenAI struct {
			Token     string `long:"token" env:"TOKEN" description:"OpenAI token, enables summaries"`
			MaxTokens int    `long:"max-tokens" env:"MAX_TOKENS" default:"300" description:"max tokens for the summary"`
		} `group:"openai" namespace:"openai" env-namespace:"OPENAI"`
	} `group:"draft" namespace:"draft" env-namespace:"DRAFT"`
}

// Execute runs the command.
func (p *Publish) Execute(_ []string) error {
	d, err := p.setup()
	if err != nil {
		return err
	}
	defer d.close()

	ctx := context.Background()

	form := remote.ArticleForm{
		Title:    p.Title,
		Summary:  p.Summary,
		Text:     p.Text,
		Category: p.Category,
		Featured: p.Featured,
	}

	if p.Draft.URL != "" {
		if form, err = p.draft(ctx, d, form); err != nil {
			return err
		}
	}

	if form.Title == "" {
		return fmt.Errorf("title is required")
	}

	f, err := os.Open(p.Image)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			d.log.Warn("close image", slog.Any("err", err))
		}
	}()

	form.Image = &remote.Image{Name: filepath.Base(p.Image), Body: f}

	art, err := editor(d).CreateArticle(ctx, form)
	if err != nil {
		return err
	}

	p.printf("%s\nid: %d\n", admin.PublishedMessage(art.Title), art.ID)
	return nil
}

// draft fills the empty fields of the form from the page.
func (p *Publish) draft(ctx context.Context, d *deps, form remote.ArticleForm) (remote.ArticleForm, error) {
	var summarizer draft.Summarizer
	if p.Draft.OpenAI.Token != "" {
		summarizer = draft.NewChatGPT(
			d.log.With(slog.String("prefix", "chatgpt")),
			&http.Client{Timeout: p.Timeout},
			p.Draft.OpenAI.Token,
			p.Draft.OpenAI.MaxTokens,
		)
	}

	svc := draft.NewService(d.log.With(slog.String("prefix", "draft")), &http.Client{Timeout: p.Timeout}, summarizer)

	dr, err := svc.Draft(ctx, p.Draft.URL)
	if err != nil {
		return remote.ArticleForm{}, fmt.Errorf("draft article: %w", err)
	}

	if form.Title == "" {
		form.Title = dr.Title
	}
	if form.Summary == "" {
		form.Summary = dr.Summary
	}
	if form.Text == "" {
		form.Text = dr.Text
	}

	return form, nil
}

// Edit is a command to update the article, only the given fields are changed.
type Edit struct {
	CommonOpts
	Args     ArticleID `positional-args:"yes"`
	Title    string    `long:"title" description:"new title"`
	Summary  string    `long:"summary" description:"new summary"`
	Text     string    `long:"text" description:"new text"`
	Category string    `long:"category" description:"new category"`
	Featured string    `long:"featured" choice:"yes" choice:"no" description:"change featured mark"`
	Image    string    `long:"image" description:"path to the new image"`
}

// Execute runs the command.
func (e *Edit) Execute(_ []string) error {
	d, err := e.setup()
	if err != nil {
		return err
	}
	defer d.close()

	ctx := context.Background()
	svc := editor(d)

	cur, err := svc.Article(ctx, e.Args.ID)
	if err != nil {
		return err
	}

	form := remote.ArticleForm{
		Title:    pick(e.Title, cur.Title),
		Summary:  pick(e.Summary, cur.Excerpt),
		Text:     pick(e.Text, cur.Content),
		Category: pick(e.Category, cur.Category),
		Date:     cur.PublishedAt,
		Featured: cur.Featured,
	}

	switch e.Featured {
	case "yes":
		form.Featured = true
	case "no":
		form.Featured = false
	}

	if e.Image != "" {
		f, err := os.Open(e.Image)
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				d.log.Warn("close image", slog.Any("err", err))
			}
		}()

		form.Image = &remote.Image{Name: filepath.Base(e.Image), Body: f}
	}

	if err = svc.UpdateArticle(ctx, e.Args.ID, form); err != nil {
		return err
	}

	e.printf("%s\n", admin.MsgUpdated)
	return nil
}

func pick(val, fallback string) string {
	if val != "" {
		return val
	}
	return fallback
}

// Delete is a command to delete the article.
type Delete struct {
	CommonOpts
	Args ArticleID `positional-args:"yes"`
}

// Execute runs the command.
func (c *Delete) Execute(_ []string) error {
	d, err := c.setup()
	if err != nil {
		return err
	}
	defer d.close()

	if err = editor(d).DeleteArticle(context.Background(), c.Args.ID); err != nil {
		return err
	}

	c.printf("%s\n", admin.MsgDeleted)
	return nil
}

// Contacts is a command to list the contact submissions.
type Contacts struct {
	CommonOpts
	Page  int `long:"page" default:"1" description:"page number"`
	Limit int `long:"limit" default:"20" description:"submissions per page"`
}

// Execute runs the command.
func (c *Contacts) Execute(_ []string) error {
	d, err := c.setup()
	if err != nil {
		return err
	}
	defer d.close()

	res, err := editor(d).ContactSubmissions(context.Background(), c.Page, c.Limit)
	if err != nil {
		return err
	}

	c.printf("page %d of %d, total %d\n", res.Pagination.Current, res.Pagination.Pages, res.Pagination.Total)
	for _, s := range res.Submissions {
		c.printf("\n%s <%s> at %s\n%s\n", s.Name, s.Email, s.Timestamp, s.Message)
	}
	return nil
}
