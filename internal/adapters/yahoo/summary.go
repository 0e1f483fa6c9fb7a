package yahoo

import (
	"context"
	"net/url"

	"finadvisor/pkg/errors"
)

type quoteSummaryEnvelope struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	AssetProfile         *assetProfile         `json:"assetProfile"`
	Price                *priceModule          `json:"price"`
	SummaryDetail        *summaryDetail        `json:"summaryDetail"`
	DefaultKeyStatistics *defaultKeyStatistics `json:"defaultKeyStatistics"`
}

type assetProfile struct {
	Industry            string `json:"industry"`
	Sector              string `json:"sector"`
	Website             string `json:"website"`
	Country             string `json:"country"`
	LongBusinessSummary string `json:"longBusinessSummary"`
}

type priceModule struct {
	LongName  string `json:"longName"`
	ShortName string `json:"shortName"`
}

type summaryDetail struct {
	MarketCap     *rawValue `json:"marketCap"`
	TrailingPE    *rawValue `json:"trailingPE"`
	ForwardPE     *rawValue `json:"forwardPE"`
	DividendYield *rawValue `json:"dividendYield"`
	Beta          *rawValue `json:"beta"`
}

type defaultKeyStatistics struct {
	Beta      *rawValue `json:"beta"`
	ForwardPE *rawValue `json:"forwardPE"`
}

// CompanyProfile fetches the descriptive company record. Returns
// ErrEmptyProfile when Yahoo has no profile for the ticker.
func (c *Client) CompanyProfile(ctx context.Context, ticker string) (*CompanyProfile, error) {
	result, err := c.quoteSummary(ctx, ticker, "assetProfile,price")
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.Wrapf(errors.ErrEmptyProfile, "no profile for %s", ticker)
		}
		return nil, err
	}
	if result.AssetProfile == nil && result.Price == nil {
		return nil, errors.Wrapf(errors.ErrEmptyProfile, "empty profile for %s", ticker)
	}

	profile := &CompanyProfile{Ticker: ticker}
	if p := result.Price; p != nil {
		profile.LongName = p.LongName
		if profile.LongName == "" {
			profile.LongName = p.ShortName
		}
	}
	if a := result.AssetProfile; a != nil {
		profile.Industry = a.Industry
		profile.Sector = a.Sector
		profile.Website = a.Website
		profile.Country = a.Country
		profile.Summary = a.LongBusinessSummary
	}

	return profile, nil
}

// KeyMetrics fetches headline valuation figures. Fields missing from the
// payload stay nil; ErrEmptyProfile means Yahoo returned no data at all.
func (c *Client) KeyMetrics(ctx context.Context, ticker string) (*KeyMetrics, error) {
	result, err := c.quoteSummary(ctx, ticker, "summaryDetail,defaultKeyStatistics")
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.Wrapf(errors.ErrEmptyProfile, "no metrics for %s", ticker)
		}
		return nil, err
	}
	if result.SummaryDetail == nil && result.DefaultKeyStatistics == nil {
		return nil, errors.Wrapf(errors.ErrEmptyProfile, "empty metrics for %s", ticker)
	}

	m := &KeyMetrics{Ticker: ticker}
	if d := result.SummaryDetail; d != nil {
		m.MarketCap = d.MarketCap.value()
		m.TrailingPE = d.TrailingPE.value()
		m.ForwardPE = d.ForwardPE.value()
		m.DividendYield = d.DividendYield.value()
		m.Beta = d.Beta.value()
	}
	if s := result.DefaultKeyStatistics; s != nil {
		if m.Beta == nil {
			m.Beta = s.Beta.value()
		}
		if m.ForwardPE == nil {
			m.ForwardPE = s.ForwardPE.value()
		}
	}

	return m, nil
}

func (c *Client) quoteSummary(ctx context.Context, ticker, modules string) (*quoteSummaryResult, error) {
	if ticker == "" {
		return nil, errors.Wrap(errors.ErrInvalidTicker, "empty ticker")
	}

	query := url.Values{}
	query.Set("modules", modules)

	var envelope quoteSummaryEnvelope
	path := quoteSummaryPath + url.PathEscape(ticker)
	if err := c.getJSON(ctx, "quote_summary", path, query, &envelope); err != nil {
		return nil, err
	}

	if e := envelope.QuoteSummary.Error; e != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "yahoo quoteSummary %s: %s", ticker, e.Description)
	}
	if len(envelope.QuoteSummary.Result) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "yahoo quoteSummary %s: empty result", ticker)
	}

	return &envelope.QuoteSummary.Result[0], nil
}
