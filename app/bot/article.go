package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/Semior001/politicalfeed/app/admin"
	"github.com/Semior001/politicalfeed/app/feed"
	"github.com/Semior001/politicalfeed/pkg/botx"
	"github.com/samber/lo"
)

var feedMessageTmpl = template.Must(template.New("feedMessage").Parse(`
{{- if .Featured}}*Featured*
{{range .Featured}}
*{{.Title}}*
_{{.Category}}, {{.Date}}_
{{.Excerpt}}
/article {{.ID}}
{{end}}{{end}}
{{- if .Latest}}
*Latest*
{{range .Latest}}
*{{.Title}}*
_{{.Category}}, {{.Date}}_
{{.Excerpt}}
/article {{.ID}}
{{end}}{{end}}`))

// feed loads the articles, if some are already shown, they are refreshed.
func (c *Ctrl) feed(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	if c.Feed.State().HasContent {
		return c.renderFeed(req, c.Feed.Refresh(ctx))
	}
	return c.renderFeed(req, c.Feed.Load(ctx, false))
}

func (c *Ctrl) refresh(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	return c.renderFeed(req, c.Feed.Refresh(ctx))
}

func (c *Ctrl) renderFeed(req botx.Request, st feed.State) ([]botx.Response, error) {
	if st.Error != "" {
		return text(req, st.Error), nil
	}

	if !st.HasContent {
		return text(req, "No articles yet."), nil
	}

	escape := func(s feed.Summary, _ int) feed.Summary {
		s.Title = escapeMarkdown(s.Title)
		s.Excerpt = escapeMarkdown(truncate(s.Excerpt, 300))
		s.Category = escapeMarkdown(s.Category)
		s.Date = escapeMarkdown(s.Date)
		return s
	}

	sb := &strings.Builder{}
	err := feedMessageTmpl.Execute(sb, feed.State{
		Featured: lo.Map(st.Featured, escape),
		Latest:   lo.Map(st.Latest, escape),
	})
	if err != nil {
		return nil, fmt.Errorf("execute feed message template: %w", err)
	}

	return []botx.Response{{ChatID: req.Chat.ID, Text: sb.String(), Markdown: true}}, nil
}

var articleMessageTmpl = template.Must(template.New("articleMessage").Parse(`
*{{.Title}}*
_{{.Category}}, {{.Date}}{{if .Featured}}, featured{{end}}_

{{.Excerpt}}

{{.Content}}

[image]({{.ImageURL}})
`))

func (c *Ctrl) article(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	id, ok := articleID(req)
	if !ok {
		return text(req, "Usage: /article <id>"), nil
	}

	a, err := c.Editor.Article(ctx, id)
	if err != nil {
		return c.editorError(req, err)
	}

	a.Title = escapeMarkdown(a.Title)
	a.Excerpt = escapeMarkdown(a.Excerpt)
	a.Content = escapeMarkdown(truncate(a.Content, 3000))
	a.Category = escapeMarkdown(a.Category)
	a.Date = escapeMarkdown(a.Date)

	sb := &strings.Builder{}
	if err = articleMessageTmpl.Execute(sb, a); err != nil {
		return nil, fmt.Errorf("execute article message template: %w", err)
	}

	return []botx.Response{{ChatID: req.Chat.ID, Text: sb.String(), Markdown: true}}, nil
}

// editorError replies with the message of the editor failure,
// unexpected errors are returned as is.
func (c *Ctrl) editorError(req botx.Request, err error) ([]botx.Response, error) {
	var aerr *admin.Error
	if !errors.As(err, &aerr) {
		return nil, err
	}

	msg := aerr.Message
	if errors.Is(err, admin.ErrReauth) {
		msg += "\nUse /login <username> <password> to sign in."
	}

	return text(req, msg), nil
}

func articleID(req botx.Request) (int, bool) {
	args := req.Args()
	if len(args) != 1 {
		return 0, false
	}

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
