// Package botapi contains implementations of bot API interfaces.
package botapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Semior001/politicalfeed/pkg/botx"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/exp/slog"
)

// Telegram is a controller that handles requests from telegram.
type Telegram struct {
	log     *slog.Logger
	api     *tgbotapi.BotAPI
	updates chan botx.Request
}

// NewTelegram returns a new telegram bot controller.
func NewTelegram(lg *slog.Logger, token string, bufferSize int) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("make new api: %w", err)
	}

	api.Debug = lg.Enabled(context.Background(), slog.LevelDebug)

	stdlibLogger := slog.NewLogLogger(lg.Handler(), slog.LevelWarn)
	stdlibLogger.SetPrefix("telegram-bot-api: ")

	if err = tgbotapi.SetLogger(stdlibLogger); err != nil {
		return nil, fmt.Errorf("set logger: %w", err)
	}

	return &Telegram{
		log:     lg,
		api:     api,
		updates: make(chan botx.Request, bufferSize),
	}, nil
}

// Run runs telegram bot listener until context is dead.
// The updates channel is closed on exit.
func (b *Telegram) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	defer close(b.updates)
	defer b.api.StopReceivingUpdates()

	b.log.InfoCtx(ctx, "started bot listener", slog.String("bot", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return errors.New("telegram updates chan closed")
			}

			req, ok := request(update)
			if !ok {
				continue
			}

			select {
			case b.updates <- req:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func request(update tgbotapi.Update) (botx.Request, bool) {
	if update.Message == nil || update.Message.Chat == nil || update.Message.Text == "" {
		return botx.Request{}, false
	}

	return botx.Request{
		MessageID: strconv.Itoa(update.Message.MessageID),
		Chat: botx.Chat{
			ID:       strconv.FormatInt(update.Message.Chat.ID, 10),
			Username: update.Message.Chat.UserName,
		},
		Text: update.Message.Text,
	}, true
}

// Updates returns updates channel.
func (b *Telegram) Updates() <-chan botx.Request {
	return b.updates
}

// SendMessage sends message to telegram user.
func (b *Telegram) SendMessage(ctx context.Context, resp botx.Response) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg, err := message(resp)
	if err != nil {
		return err
	}

	if _, err = b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func message(resp botx.Response) (tgbotapi.MessageConfig, error) {
	chatID, err := strconv.ParseInt(resp.ChatID, 10, 64)
	if err != nil {
		return tgbotapi.MessageConfig{}, fmt.Errorf("parse chat id: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, resp.Text)
	msg.DisableWebPagePreview = true
	if resp.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}

	if resp.ReplyToMessageID != "" {
		if msg.ReplyToMessageID, err = strconv.Atoi(resp.ReplyToMessageID); err != nil {
			return tgbotapi.MessageConfig{}, fmt.Errorf("parse reply to message id: %w", err)
		}
	}

	return msg, nil
}
