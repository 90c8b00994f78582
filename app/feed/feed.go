// Package feed loads the featured and latest articles, hides transient
// backend failures behind a bounded retry and never replaces
// the shown content with an error.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Semior001/politicalfeed/app/remote"
	"github.com/Semior001/politicalfeed/pkg/pubsub"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

//go:generate moq -out mock_remote.go . Remote

// Remote defines the backend calls needed to load the feed.
type Remote interface {
	FeaturedArticles(ctx context.Context) ([]remote.Article, error)
	LatestArticles(ctx context.Context, limit int) ([]remote.Article, error)
	ImageURL(id int) string
}

// Defaults of the loader.
const (
	LatestPageSize = 4
	MaxRetries     = 5
	RetryDelay     = 3 * time.Second
)

// State is a snapshot of the feed.
type State struct {
	Featured   []Summary
	Latest     []Summary
	Loading    bool
	Refreshing bool
	Error      string
	// HasContent is recomputed only by a successful load.
	HasContent bool
}

// Loader loads the feed.
type Loader struct {
	log *slog.Logger
	rem Remote
	Options

	state *pubsub.Value[State]

	mu      sync.Mutex
	retries int
}

// NewLoader makes a new Loader.
func NewLoader(lg *slog.Logger, rem Remote, opts ...Option) *Loader {
	options := Options{
		MaxRetries: MaxRetries,
		RetryDelay: RetryDelay,
		PageSize:   LatestPageSize,
	}

	for _, opt := range opts {
		opt(&options)
	}

	return &Loader{
		log:     lg,
		rem:     rem,
		Options: options,
		state:   pubsub.NewValue(State{}),
	}
}

// State returns the current snapshot.
func (l *Loader) State() State { return l.state.Get() }

// Subscribe returns a channel of feed snapshots.
func (l *Loader) Subscribe() (<-chan State, func()) { return l.state.Subscribe() }

// Refresh reloads the feed, same as Load, but marks the state as refreshing.
func (l *Loader) Refresh(ctx context.Context) State { return l.Load(ctx, true) }

// Load fetches both lists and returns the settled state. If nothing usable
// was fetched, the attempt is silently repeated up to MaxRetries times.
func (l *Loader) Load(ctx context.Context, isRefresh bool) State {
	l.state.Update(func(s State) State {
		if isRefresh {
			s.Refreshing = true
		} else {
			s.Loading = true
		}
		s.Error = ""
		return s
	})

	return l.attempt(ctx)
}

func (l *Loader) attempt(ctx context.Context) State {
	res, err := l.fetch(ctx)
	if err == nil && (!res.failed() || res.hasContent()) {
		l.resetRetries()
		return l.state.Update(func(State) State {
			return State{
				Featured:   res.featured,
				Latest:     res.latest,
				HasContent: res.hasContent(),
			}
		})
	}

	canRetry := ctx.Err() == nil && l.nextRetry()
	if canRetry {
		l.log.WarnCtx(ctx, "failed to load articles, retrying",
			slog.Int("retry", l.retryNum()),
			slog.Duration("delay", l.RetryDelay),
			slog.Any("err", errors.Join(err, res.featuredErr, res.latestErr)),
		)

		select {
		case <-time.After(l.RetryDelay):
			return l.attempt(ctx)
		case <-ctx.Done():
			err = ctx.Err()
		}
	}

	l.resetRetries()

	msg := res.message()
	if err != nil {
		msg = fmt.Sprintf("Failed to load content: %v", err)
	}

	l.log.ErrorCtx(ctx, "failed to load articles", slog.String("msg", msg))

	return l.state.Update(func(s State) State {
		s.Loading = false
		s.Refreshing = false
		s.Error = msg
		if s.HasContent {
			s.Error = ""
		}
		return s
	})
}

type outcome struct {
	featured, latest       []Summary
	featuredErr, latestErr error
}

func (o outcome) failed() bool     { return o.featuredErr != nil || o.latestErr != nil }
func (o outcome) hasContent() bool { return len(o.featured) > 0 || len(o.latest) > 0 }

func (o outcome) message() string {
	switch {
	case o.featuredErr != nil && o.latestErr != nil:
		return "Failed to load articles"
	case o.featuredErr != nil:
		return "Failed to load featured articles"
	case o.latestErr != nil:
		return "Failed to load latest articles"
	default:
		return ""
	}
}

// fetch requests both lists concurrently. The returned error is set only for
// unexpected failures: a panic in the attempt or a cancelled context.
func (l *Loader) fetch(ctx context.Context) (res outcome, err error) {
	var ewg errgroup.Group

	ewg.Go(func() (err error) {
		defer recoverTo(&err)
		arts, ferr := l.rem.FeaturedArticles(ctx)
		res.featured, res.featuredErr = l.summarize(arts), ferr
		return nil
	})

	ewg.Go(func() (err error) {
		defer recoverTo(&err)
		arts, ferr := l.rem.LatestArticles(ctx, l.PageSize)
		res.latest, res.latestErr = l.summarize(arts), ferr
		return nil
	})

	if err = ewg.Wait(); err != nil {
		return outcome{}, err
	}

	if err = ctx.Err(); err != nil {
		return outcome{}, err
	}

	return res, nil
}

func (l *Loader) summarize(arts []remote.Article) []Summary {
	return lo.Map(arts, func(a remote.Article, _ int) Summary { return Summarize(a, l.rem.ImageURL) })
}

func recoverTo(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%v", r)
	}
}

func (l *Loader) nextRetry() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.retries >= l.MaxRetries {
		return false
	}
	l.retries++
	return true
}

func (l *Loader) retryNum() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.retries
}

func (l *Loader) resetRetries() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.retries = 0
}
