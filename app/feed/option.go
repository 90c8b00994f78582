package feed

import "time"

// Options defines options for Loader.
type Options struct {
	MaxRetries int
	RetryDelay time.Duration
	PageSize   int
}

// Option defines a function that configures Loader.
type Option func(*Options)

// WithMaxRetries sets the number of retries after the first failed attempt.
func WithMaxRetries(n int) Option {
	return func(o *Options) { o.MaxRetries = n }
}

// WithRetryDelay sets the delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(o *Options) { o.RetryDelay = d }
}

// WithPageSize sets the number of latest articles to request.
func WithPageSize(n int) Option {
	return func(o *Options) { o.PageSize = n }
}
