package yahoo

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a live market snapshot for a single ticker.
type Quote struct {
	Ticker      string
	ShortName   string
	Exchange    string
	Currency    string
	MarketState string
	Price       decimal.Decimal
	Open        decimal.Decimal
	DayHigh     decimal.Decimal
	DayLow      decimal.Decimal
	Volume      int64
	Tradeable   bool
	AsOf        time.Time
}

// HasPrice reports whether the snapshot carries a usable market price.
func (q *Quote) HasPrice() bool {
	return q != nil && q.Price.IsPositive()
}

// Bar is a single daily candle from the chart endpoint.
type Bar struct {
	Timestamp time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	AdjClose  decimal.Decimal
	Volume    int64
}

// CompanyProfile is the descriptive slice of the quoteSummary payload.
type CompanyProfile struct {
	Ticker   string
	LongName string
	Industry string
	Sector   string
	Website  string
	Country  string
	Summary  string
}

// KeyMetrics carries headline valuation figures. Absent fields stay nil so
// callers can distinguish zero from missing.
type KeyMetrics struct {
	Ticker        string
	MarketCap     *float64
	TrailingPE    *float64
	ForwardPE     *float64
	DividendYield *float64
	Beta          *float64
}

// StatementKind selects one of the three financial statements.
type StatementKind string

const (
	StatementIncome   StatementKind = "income"
	StatementBalance  StatementKind = "balance"
	StatementCashFlow StatementKind = "cashflow"
)

// Statement is an annual financial statement keyed by fiscal period end.
type Statement struct {
	Ticker string
	Kind   StatementKind
	// Dates holds fiscal period ends in reverse chronological order,
	// expressed as epoch milliseconds.
	Dates []int64
	// Items maps each date to its line-item values under display names
	// such as "Total Revenue" or "Operating Cash Flow".
	Items map[int64]map[string]float64
}

// Empty reports whether the statement carries no fiscal periods.
func (s *Statement) Empty() bool {
	return s == nil || len(s.Dates) == 0
}

// HistorySummary condenses a price history into the figures agents reason on.
type HistorySummary struct {
	LatestClose   decimal.Decimal
	ChangePct     *decimal.Decimal
	PeriodCandles int
}

// SummarizeBars computes the latest close and percentage change across bars.
// The change is nil when the first close is zero. Returns nil for an empty
// history.
func SummarizeBars(bars []Bar) *HistorySummary {
	if len(bars) == 0 {
		return nil
	}

	first := bars[0].Close
	last := bars[len(bars)-1].Close

	summary := &HistorySummary{
		LatestClose:   last,
		PeriodCandles: len(bars),
	}

	if !first.IsZero() {
		change := last.Sub(first).Div(first).Mul(decimal.NewFromInt(100))
		summary.ChangePct = &change
	}

	return summary
}
