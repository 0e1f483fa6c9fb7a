package shared

import (
	"context"
	"time"

	"google.golang.org/adk/tool"
)

// TimeoutMiddleware enforces a deadline on tool execution.
type TimeoutMiddleware struct {
	Timeout time.Duration
}

// timeoutContext overlays a deadline-bearing context on a tool.Context while
// keeping the tool-specific accessors (state, session, user) intact.
type timeoutContext struct {
	tool.Context
	std context.Context
}

func (c timeoutContext) Deadline() (time.Time, bool) {
	return c.std.Deadline()
}

func (c timeoutContext) Done() <-chan struct{} {
	return c.std.Done()
}

func (c timeoutContext) Err() error {
	return c.std.Err()
}

func (c timeoutContext) Value(key interface{}) interface{} {
	return c.std.Value(key)
}

func wrapWithTimeout(m TimeoutMiddleware, fn ToolFunc) ToolFunc {
	if m.Timeout <= 0 {
		return fn
	}

	return func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		std, cancel := context.WithTimeout(ctx, m.Timeout)
		defer cancel()

		return fn(timeoutContext{Context: ctx, std: std}, args)
	}
}
