package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"finadvisor/internal/domain/advice"
	"finadvisor/internal/metrics"
	"finadvisor/pkg/errors"
)

// Compile-time check
var _ advice.Repository = (*AdviceRepository)(nil)

const defaultListLimit = 20

// AdviceRepository implements advice.Repository using sqlx.
type AdviceRepository struct {
	db *sqlx.DB
}

// NewAdviceRepository creates a new advice report repository.
func NewAdviceRepository(db *sqlx.DB) *AdviceRepository {
	return &AdviceRepository{db: db}
}

// EnsureSchema creates the advice_reports table if it does not exist.
func (r *AdviceRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS advice_reports (
			id UUID PRIMARY KEY,
			ticker TEXT NOT NULL,
			summary TEXT NOT NULL,
			document TEXT NOT NULL,
			filename TEXT NOT NULL,
			app_name TEXT NOT NULL DEFAULT '',
			user_id TEXT NOT NULL DEFAULT '',
			session_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_advice_reports_ticker_created
			ON advice_reports (ticker, created_at DESC);
	`

	_, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "failed to ensure advice_reports schema")
	}

	return nil
}

// Save inserts an advice report.
func (r *AdviceRepository) Save(ctx context.Context, report *advice.Report) error {
	if report == nil {
		return errors.Wrap(errors.ErrInvalidInput, "report is nil")
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO advice_reports (
			id, ticker, summary, document, filename,
			app_name, user_id, session_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	start := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.Ticker, report.Summary, report.Document, report.Filename,
		report.AppName, report.UserID, report.SessionID, report.CreatedAt,
	)
	metrics.RecordDBQuery("postgres", "save_advice_report", time.Since(start), err)

	if err != nil {
		return errors.Wrapf(err, "failed to save advice report for %s", report.Ticker)
	}

	return nil
}

// ListByTicker returns reports for a ticker, newest first.
func (r *AdviceRepository) ListByTicker(ctx context.Context, ticker string, limit int) ([]*advice.Report, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT * FROM advice_reports
		WHERE ticker = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var reports []*advice.Report

	start := time.Now()
	err := r.db.SelectContext(ctx, &reports, query, ticker, limit)
	metrics.RecordDBQuery("postgres", "list_advice_reports", time.Since(start), err)

	if err != nil {
		return nil, errors.Wrapf(err, "failed to list advice reports for %s", ticker)
	}

	return reports, nil
}

// Latest returns the most recent report for a ticker.
func (r *AdviceRepository) Latest(ctx context.Context, ticker string) (*advice.Report, error) {
	query := `
		SELECT * FROM advice_reports
		WHERE ticker = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var report advice.Report

	start := time.Now()
	err := r.db.GetContext(ctx, &report, query, ticker)
	metrics.RecordDBQuery("postgres", "latest_advice_report", time.Since(start), err)

	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrNotFound, "no advice report for %s", ticker)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get latest advice report for %s", ticker)
	}

	return &report, nil
}
