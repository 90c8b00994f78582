package botx

import (
	"context"
	"strings"
)

// Handler handles requests.
type Handler func(ctx context.Context, req Request) ([]Response, error)

// Middleware wraps the handler.
type Middleware func(Handler) Handler

// With returns a new handler with middlewares applied,
// the first middleware is the outermost one.
func (h Handler) With(mws ...Middleware) Handler {
	base := h
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// Response is a response from handler.
type Response struct {
	ReplyToMessageID string
	ChatID           string
	Text             string
	// Markdown enables markdown formatting of the text.
	Markdown bool
}

// Request is a request for handler.
type Request struct {
	MessageID string
	Chat      Chat
	Text      string
}

// Command returns the command of the request without the bot mention,
// e.g. "/feed" for "/feed@politicalbot now". Empty for plain text messages.
func (r Request) Command() string {
	if !strings.HasPrefix(r.Text, "/") {
		return ""
	}

	cmd, _, _ := strings.Cut(strings.Fields(r.Text)[0], "@")
	return cmd
}

// Args returns the space-separated arguments of the command.
func (r Request) Args() []string {
	fields := strings.Fields(r.Text)
	if r.Command() == "" || len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

// Chat contains chat information.
type Chat struct {
	ID       string
	Username string
}

// NotFound is a default handler for not found commands.
func NotFound(_ context.Context, req Request) ([]Response, error) {
	return []Response{{
		ChatID: req.Chat.ID,
		Text:   "command not found",
	}}, nil
}
