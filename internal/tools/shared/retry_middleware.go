package shared

import (
	"time"

	"google.golang.org/adk/tool"
)

// RetryMiddleware retries tool execution on error with optional backoff.
type RetryMiddleware struct {
	Attempts int
	Backoff  time.Duration
}

func wrapWithRetry(m RetryMiddleware, fn ToolFunc) ToolFunc {
	attempts := m.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	return func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		var result map[string]interface{}
		var err error

		for i := 0; i < attempts; i++ {
			result, err = fn(ctx, args)
			if err == nil {
				return result, nil
			}

			if m.Backoff > 0 && i < attempts-1 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(m.Backoff):
				}
			}
		}

		return result, err
	}
}
