package botmw

import (
	"context"
	"errors"
	"time"

	"github.com/Semior001/politicalfeed/pkg/botx"
)

// ErrTimeout is returned by Timeout middleware when handler timed out.
var ErrTimeout = errors.New("timed out")

// Timeout sets the timeout for handler.
func Timeout(dur time.Duration) botx.Middleware {
	type result struct {
		resps []botx.Response
		err   error
	}

	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			// set context timeout additionally
			ctx, cancel := context.WithTimeout(ctx, dur)
			defer cancel()

			// buffered, the late handler must not block after timeout
			done := make(chan result, 1)

			go func() {
				resps, err := next(ctx, req)
				done <- result{resps: resps, err: err}
			}()

			timer := time.NewTimer(dur)
			defer timer.Stop()

			select {
			case res := <-done:
				return res.resps, res.err
			case <-timer.C:
				return nil, ErrTimeout
			}
		}
	}
}
