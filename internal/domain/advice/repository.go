package advice

import "context"

// Repository archives advice reports for later retrieval.
type Repository interface {
	// Save persists a report. A zero ID is assigned before insert.
	Save(ctx context.Context, report *Report) error

	// ListByTicker returns reports for a ticker, newest first.
	ListByTicker(ctx context.Context, ticker string, limit int) ([]*Report, error)

	// Latest returns the most recent report for a ticker.
	Latest(ctx context.Context, ticker string) (*Report, error)
}
