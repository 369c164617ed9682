package content

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Do runs op up to attempts times, logging every failure. It returns nil on
// the first success and the last error once the bound is exhausted. No
// backoff: the refresh cycle tolerates a failed category, so hammering the
// upstream with delays buys nothing.
func Do(ctx context.Context, attempts int, log *zap.SugaredLogger, label string, op func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		log.Warnw("Attempt failed",
			"op", label,
			"attempt", attempt,
			"maxAttempts", attempts,
			"error", lastErr,
		)
	}
	return fmt.Errorf("%s: all %d attempts failed: %w", label, attempts, lastErr)
}
