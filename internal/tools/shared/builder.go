package shared

import (
	"time"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

// ToolBuilder provides a fluent API for creating tools with middleware.
type ToolBuilder struct {
	name        string
	description string
	fn          ToolFunc
	deps        Deps

	withRetry   bool
	retryConfig RetryMiddleware

	withTimeout   bool
	timeoutConfig TimeoutMiddleware

	withStats bool
}

// NewToolBuilder starts building a tool.
func NewToolBuilder(name, description string, fn ToolFunc, deps Deps) *ToolBuilder {
	return &ToolBuilder{
		name:        name,
		description: description,
		fn:          fn,
		deps:        deps,
		// Default configs
		retryConfig:   RetryMiddleware{Attempts: 3, Backoff: 500 * time.Millisecond},
		timeoutConfig: TimeoutMiddleware{Timeout: 30 * time.Second},
	}
}

// WithRetry enables retry middleware.
func (b *ToolBuilder) WithRetry(attempts int, backoff time.Duration) *ToolBuilder {
	b.withRetry = true
	b.retryConfig = RetryMiddleware{Attempts: attempts, Backoff: backoff}
	return b
}

// WithTimeout enables timeout middleware.
func (b *ToolBuilder) WithTimeout(timeout time.Duration) *ToolBuilder {
	b.withTimeout = true
	b.timeoutConfig = TimeoutMiddleware{Timeout: timeout}
	return b
}

// WithStats enables execution metrics tracking.
func (b *ToolBuilder) WithStats() *ToolBuilder {
	b.withStats = true
	return b
}

// Build creates the tool with configured middleware applied. Inner layers
// run first: retry wraps the tool logic, timeout bounds all attempts, stats
// observes everything including retries.
func (b *ToolBuilder) Build() tool.Tool {
	fn := b.fn

	if b.withRetry {
		fn = wrapWithRetry(b.retryConfig, fn)
	}

	if b.withTimeout {
		fn = wrapWithTimeout(b.timeoutConfig, fn)
	}

	if b.withStats {
		fn = wrapWithStats(b.name, b.deps.Log, fn)
	}

	t, _ := functiontool.New(functiontool.Config{
		Name:        b.name,
		Description: b.description,
	}, functiontool.Func[map[string]interface{}, map[string]interface{}](fn))

	return t
}
