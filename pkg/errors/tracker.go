package errors

import (
	"context"
)

// Tracker reports errors and diagnostic events to an external tracking
// service. The logger calls CaptureError on every Error-level log; the
// Sentry adapter is the real implementation and noop stands in when
// tracking is disabled.
type Tracker interface {
	// CaptureError reports an error with optional tags.
	CaptureError(ctx context.Context, err error, tags map[string]string) error

	// CaptureMessage reports a plain message at the given level.
	CaptureMessage(ctx context.Context, message string, level Level, tags map[string]string) error

	// SetUser attaches user identity to subsequent reports.
	SetUser(ctx context.Context, userID string, email string, username string)

	// AddBreadcrumb records a trail entry shown alongside later reports.
	AddBreadcrumb(ctx context.Context, message string, category string, level Level, data map[string]interface{})

	// Flush blocks until pending reports are delivered or ctx expires.
	Flush(ctx context.Context) error
}

// Level is the severity attached to tracked errors and messages.
type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelFatal   Level = "fatal"
)

func (l Level) String() string {
	return string(l)
}
