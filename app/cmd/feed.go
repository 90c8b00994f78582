package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/Semior001/politicalfeed/app/feed"
	"golang.org/x/exp/slog"
)

// Feed is a command to load and print the featured and latest articles.
type Feed struct {
	CommonOpts
	Refresh    bool          `long:"refresh" description:"load as a refresh"`
	MaxRetries int           `long:"max-retries" env:"MAX_RETRIES" default:"5" description:"retries after the first failed attempt"`
	RetryDelay time.Duration `long:"retry-delay" env:"RETRY_DELAY" default:"3s" description:"delay between attempts"`
	PageSize   int           `long:"page-size" env:"PAGE_SIZE" default:"4" description:"number of latest articles"`
}

// Execute runs the command.
func (f *Feed) Execute(_ []string) error {
	d, err := f.setup()
	if err != nil {
		return err
	}
	defer d.close()

	ld := feed.NewLoader(d.log.With(slog.String("prefix", "feed")), d.rem,
		feed.WithMaxRetries(f.MaxRetries),
		feed.WithRetryDelay(f.RetryDelay),
		feed.WithPageSize(f.PageSize),
	)

	st := ld.Load(context.Background(), f.Refresh)
	if st.Error != "" {
		return errors.New(st.Error)
	}

	if !st.HasContent {
		f.printf("No articles yet\n")
		return nil
	}

	f.printSection("Featured", st.Featured)
	f.printSection("Latest", st.Latest)
	return nil
}

func (f *Feed) printSection(name string, list []feed.Summary) {
	if len(list) == 0 {
		return
	}

	f.printf("%s:\n", name)
	for _, s := range list {
		f.printf("  [%d] %s\n      %s, %s\n      %s\n      %s\n", s.ID, s.Title, s.Category, s.Date, s.Excerpt, s.ImageURL)
	}
}
