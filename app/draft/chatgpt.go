package draft

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/template"

	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/exp/slog"
)

//go:embed data/prompt.tmpl
var prompt string

var promptTmpl = template.Must(template.New("prompt").Parse(prompt))

//go:generate moq -out mock_openai_client.go . OpenAIClient

// OpenAIClient is an interface of the OpenAI client.
type OpenAIClient interface {
	CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatGPT writes article summaries with OpenAI chat completions.
type ChatGPT struct {
	log       *slog.Logger
	cl        OpenAIClient
	maxTokens int
	cache     cache.Cache[string, string]
}

// NewChatGPT makes a new ChatGPT.
func NewChatGPT(lg *slog.Logger, cl *http.Client, token string, maxTokens int) *ChatGPT {
	config := openai.DefaultConfig(token)
	config.HTTPClient = cl

	return newChatGPT(lg, openai.NewClientWithConfig(config), maxTokens)
}

func newChatGPT(lg *slog.Logger, cl OpenAIClient, maxTokens int) *ChatGPT {
	return &ChatGPT{
		log:       lg,
		cl:        &loggingClient{log: lg, cl: cl},
		maxTokens: maxTokens,
		cache: cache.NewCache[string, string]().
			WithLRU().
			WithMaxKeys(100),
	}
}

// maxRequestTokens is an approximate limit of the model context.
const maxRequestTokens = 4097

// ErrTooManyTokens is returned when the page is too long to summarize.
var ErrTooManyTokens = errors.New("too many tokens")

// CacheStat returns stats of the summaries cache.
func (c *ChatGPT) CacheStat() cache.Stats { return c.cache.Stat() }

// Summarize writes a short summary of the page. Summaries are cached by the page URL.
func (c *ChatGPT) Summarize(ctx context.Context, page Page) (string, error) {
	if page.URL != "" {
		if resp, ok := c.cache.Get(page.URL); ok {
			return resp, nil
		}
	}

	buf := &strings.Builder{}
	if err := promptTmpl.Execute(buf, page); err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	// words are a rough estimate of tokens
	if len(strings.Fields(buf.String())) > maxRequestTokens {
		return "", ErrTooManyTokens
	}

	resp, err := c.cl.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     openai.GPT3Dot5Turbo,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buf.String()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	result := strings.TrimSpace(resp.Choices[0].Message.Content)
	if page.URL != "" {
		c.cache.Set(page.URL, result, 0)
	}

	return result, nil
}

type loggingClient struct {
	log *slog.Logger
	cl  OpenAIClient
}

func (l *loggingClient) CreateChatCompletion(
	ctx context.Context,
	req openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	l.log.DebugCtx(ctx, "sending request to chatGPT")
	resp, err := l.cl.CreateChatCompletion(ctx, req)
	l.log.DebugCtx(ctx, "response received from chatGPT", slog.Any("err", err))
	return resp, err
}
