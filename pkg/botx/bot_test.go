package botx

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestBot_Run(t *testing.T) {
	updates := make(chan Request, 3)
	updates <- Request{Chat: Chat{ID: "1"}, Text: "/ping"}
	updates <- Request{Chat: Chat{ID: "2"}, Text: "/ping"}
	updates <- Request{Chat: Chat{ID: "3"}, Text: "/fail"}
	close(updates)

	mu := sync.Mutex{}
	var sent []Response

	api := &APIMock{
		UpdatesFunc: func() <-chan Request { return updates },
		SendMessageFunc: func(_ context.Context, resp Response) error {
			mu.Lock()
			defer mu.Unlock()
			sent = append(sent, resp)
			if resp.ChatID == "2" {
				return errors.New("blocked by user")
			}
			return nil
		},
	}

	rtr := NewRouter()
	rtr.Add("/ping", reply("pong"))
	rtr.Add("/fail", func(context.Context, Request) ([]Response, error) { return nil, errors.New("boom") })

	bot := NewBot(rtr.Handle, api, WithWorkers(2), WithLogger(slog.Default()))

	done := make(chan struct{})
	go func() {
		bot.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bot must stop when updates are closed")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, sent, 2)
	assert.ElementsMatch(t, []Response{{ChatID: "1", Text: "pong"}, {ChatID: "2", Text: "pong"}}, sent)
}

func TestBot_Run_ContextDone(t *testing.T) {
	api := &APIMock{UpdatesFunc: func() <-chan Request { return make(chan Request) }}
	bot := NewBot(NotFound, api)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	bot.Run(ctx)
	assert.Empty(t, api.SendMessageCalls())
}
