package yahoo

import (
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"finadvisor/pkg/errors"
)

// statementFields lists the timeseries line items fetched per statement,
// without the annual prefix the API expects.
var statementFields = map[StatementKind][]string{
	StatementIncome: {
		"TotalRevenue",
		"CostOfRevenue",
		"GrossProfit",
		"OperatingExpense",
		"OperatingIncome",
		"PretaxIncome",
		"TaxProvision",
		"NetIncome",
		"BasicEPS",
		"DilutedEPS",
		"EBITDA",
	},
	StatementBalance: {
		"TotalAssets",
		"CurrentAssets",
		"CashAndCashEquivalents",
		"TotalLiabilitiesNetMinorityInterest",
		"CurrentLiabilities",
		"TotalDebt",
		"StockholdersEquity",
		"WorkingCapital",
		"RetainedEarnings",
	},
	StatementCashFlow: {
		"OperatingCashFlow",
		"InvestingCashFlow",
		"FinancingCashFlow",
		"CapitalExpenditure",
		"FreeCashFlow",
		"EndCashPosition",
		"ChangesInCash",
	},
}

type timeseriesEnvelope struct {
	Timeseries struct {
		Result []json.RawMessage `json:"result"`
		Error  *apiError         `json:"error"`
	} `json:"timeseries"`
}

type timeseriesMeta struct {
	Symbol []string `json:"symbol"`
	Type   []string `json:"type"`
}

type timeseriesPoint struct {
	AsOfDate      string    `json:"asOfDate"`
	PeriodType    string    `json:"periodType"`
	ReportedValue *rawValue `json:"reportedValue"`
}

// IncomeStatement fetches the annual income statement.
func (c *Client) IncomeStatement(ctx context.Context, ticker string) (*Statement, error) {
	return c.fetchStatement(ctx, ticker, StatementIncome)
}

// BalanceSheet fetches the annual balance sheet.
func (c *Client) BalanceSheet(ctx context.Context, ticker string) (*Statement, error) {
	return c.fetchStatement(ctx, ticker, StatementBalance)
}

// CashFlow fetches the annual cash flow statement.
func (c *Client) CashFlow(ctx context.Context, ticker string) (*Statement, error) {
	return c.fetchStatement(ctx, ticker, StatementCashFlow)
}

func (c *Client) fetchStatement(ctx context.Context, ticker string, kind StatementKind) (*Statement, error) {
	if ticker == "" {
		return nil, errors.Wrap(errors.ErrInvalidTicker, "empty ticker")
	}

	fields := statementFields[kind]
	types := make([]string, len(fields))
	for i, f := range fields {
		types[i] = "annual" + f
	}

	query := url.Values{}
	query.Set("symbol", ticker)
	query.Set("type", strings.Join(types, ","))
	// Earliest period the fundamentals endpoint accepts.
	query.Set("period1", "493590046")
	query.Set("period2", strconv.FormatInt(c.now().Unix(), 10))

	stmt := &Statement{
		Ticker: ticker,
		Kind:   kind,
		Items:  map[int64]map[string]float64{},
	}

	var envelope timeseriesEnvelope
	path := timeseriesPath + url.PathEscape(ticker)
	if err := c.getJSON(ctx, "timeseries", path, query, &envelope); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			// No fundamentals published for this symbol.
			return stmt, nil
		}
		return nil, err
	}
	if e := envelope.Timeseries.Error; e != nil {
		return nil, errors.Newf("yahoo timeseries %s: %s", ticker, e.Description)
	}

	for _, raw := range envelope.Timeseries.Result {
		name, points, err := decodeSeries(raw)
		if err != nil {
			c.log.Warnf("Skipping malformed timeseries block for %s: %v", ticker, err)
			continue
		}
		if name == "" {
			continue
		}

		item := displayName(strings.TrimPrefix(name, "annual"))
		for _, p := range points {
			if p.ReportedValue == nil || p.ReportedValue.Raw == nil || p.AsOfDate == "" {
				continue
			}
			t, err := time.Parse("2006-01-02", p.AsOfDate)
			if err != nil {
				continue
			}

			dateMs := t.UnixMilli()
			if _, ok := stmt.Items[dateMs]; !ok {
				stmt.Items[dateMs] = map[string]float64{}
				stmt.Dates = append(stmt.Dates, dateMs)
			}
			stmt.Items[dateMs][item] = *p.ReportedValue.Raw
		}
	}

	// Most recent fiscal period first, matching how statements are read.
	sort.Slice(stmt.Dates, func(i, j int) bool { return stmt.Dates[i] > stmt.Dates[j] })

	return stmt, nil
}

// decodeSeries extracts one typed series from a timeseries result block.
// Each block carries its line-item key in meta.type and the data points
// under a field of the same name, with null entries for missing periods.
func decodeSeries(raw json.RawMessage) (string, []timeseriesPoint, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", nil, errors.Wrap(err, "decode timeseries result")
	}

	var meta timeseriesMeta
	if m, ok := fields["meta"]; ok {
		if err := json.Unmarshal(m, &meta); err != nil {
			return "", nil, errors.Wrap(err, "decode timeseries meta")
		}
	}
	if len(meta.Type) == 0 {
		return "", nil, nil
	}

	name := meta.Type[0]
	data, ok := fields[name]
	if !ok {
		return name, nil, nil
	}

	var points []*timeseriesPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return name, nil, errors.Wrapf(err, "decode %s series", name)
	}

	out := make([]timeseriesPoint, 0, len(points))
	for _, p := range points {
		if p != nil {
			out = append(out, *p)
		}
	}
	return name, out, nil
}

// displayName converts a camel-cased line-item key into its report form,
// e.g. TotalRevenue -> "Total Revenue", BasicEPS -> "Basic EPS".
func displayName(field string) string {
	runes := []rune(field)

	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
