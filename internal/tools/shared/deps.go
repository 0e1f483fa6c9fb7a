package shared

import (
	"context"

	"finadvisor/internal/adapters/firecrawl"
	"finadvisor/internal/adapters/yahoo"
	"finadvisor/internal/domain/advice"
	"finadvisor/internal/report"
	"finadvisor/pkg/logger"
)

// MarketData is the market data surface the analyst tools consume.
type MarketData interface {
	Quote(ctx context.Context, ticker string) (*yahoo.Quote, error)
	PriceHistory(ctx context.Context, ticker string, period yahoo.Period) ([]yahoo.Bar, error)
	CompanyProfile(ctx context.Context, ticker string) (*yahoo.CompanyProfile, error)
	KeyMetrics(ctx context.Context, ticker string) (*yahoo.KeyMetrics, error)
	IncomeStatement(ctx context.Context, ticker string) (*yahoo.Statement, error)
	BalanceSheet(ctx context.Context, ticker string) (*yahoo.Statement, error)
	CashFlow(ctx context.Context, ticker string) (*yahoo.Statement, error)
}

// Searcher runs web searches for the research tools.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) (*firecrawl.SearchResponse, error)
}

// Compile-time checks that the adapters satisfy the tool-facing interfaces.
var (
	_ MarketData = (*yahoo.Client)(nil)
	_ Searcher   = (*firecrawl.Client)(nil)
)

// Deps bundles dependencies required by concrete tool implementations.
// AppName scopes saved artifacts and archived reports.
type Deps struct {
	AppName    string
	Market     MarketData
	Search     Searcher
	Artifacts  report.ArtifactStore
	AdviceRepo advice.Repository
	Log        *logger.Logger
}

// HasMarketData reports whether the market data client is available.
func (d Deps) HasMarketData() bool {
	return d.Market != nil
}

// HasSearch reports whether the search client is available.
func (d Deps) HasSearch() bool {
	return d.Search != nil
}

// HasArtifacts reports whether the artifact store is available.
func (d Deps) HasArtifacts() bool {
	return d.Artifacts != nil
}

// HasAdviceArchive reports whether the report archive is configured.
func (d Deps) HasAdviceArchive() bool {
	return d.AdviceRepo != nil
}
