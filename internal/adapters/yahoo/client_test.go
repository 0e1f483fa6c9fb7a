package yahoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finadvisor/internal/adapters/config"
	"finadvisor/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.YahooConfig{
		BaseURL:        srv.URL,
		Timeout:        5 * time.Second,
		RequestsPerMin: 6000,
	}, nil)
}

func TestCompanyProfile(t *testing.T) {
	var gotModules string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotModules = r.URL.Query().Get("modules")
		w.Write([]byte(`{"quoteSummary":{"result":[{
			"assetProfile":{"industry":"Consumer Electronics","sector":"Technology","country":"United States"},
			"price":{"longName":"Apple Inc.","shortName":"Apple"}
		}],"error":null}}`))
	}))

	profile, err := client.CompanyProfile(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "assetProfile,price", gotModules)
	assert.Equal(t, "AAPL", profile.Ticker)
	assert.Equal(t, "Apple Inc.", profile.LongName)
	assert.Equal(t, "Consumer Electronics", profile.Industry)
	assert.Equal(t, "Technology", profile.Sector)
}

func TestCompanyProfileFallsBackToShortName(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[{"price":{"shortName":"Apple"}}],"error":null}}`))
	}))

	profile, err := client.CompanyProfile(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple", profile.LongName)
}

func TestCompanyProfileNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found for ticker symbol: NOPE"}}}`))
	}))

	_, err := client.CompanyProfile(context.Background(), "NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyProfile))
}

func TestCompanyProfileServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.CompanyProfile(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrProviderUnavailable))
	assert.False(t, errors.Is(err, errors.ErrEmptyProfile))
}

func TestKeyMetrics(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[{
			"summaryDetail":{
				"marketCap":{"raw":2950000000000,"fmt":"2.95T"},
				"trailingPE":29.5,
				"dividendYield":{},
				"beta":{"raw":1.28}
			}
		}],"error":null}}`))
	}))

	m, err := client.KeyMetrics(context.Background(), "AAPL")
	require.NoError(t, err)

	require.NotNil(t, m.MarketCap)
	assert.Equal(t, 2.95e12, *m.MarketCap)

	require.NotNil(t, m.TrailingPE)
	assert.Equal(t, 29.5, *m.TrailingPE)

	require.NotNil(t, m.Beta)
	assert.Equal(t, 1.28, *m.Beta)

	assert.Nil(t, m.DividendYield)
	assert.Nil(t, m.ForwardPE)
}

func TestKeyMetricsStatisticsFallback(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[{
			"summaryDetail":{"marketCap":{"raw":1000}},
			"defaultKeyStatistics":{"beta":{"raw":0.9},"forwardPE":{"raw":21.4}}
		}],"error":null}}`))
	}))

	m, err := client.KeyMetrics(context.Background(), "AAPL")
	require.NoError(t, err)

	require.NotNil(t, m.Beta)
	assert.Equal(t, 0.9, *m.Beta)
	require.NotNil(t, m.ForwardPE)
	assert.Equal(t, 21.4, *m.ForwardPE)
}

func TestKeyMetricsEmpty(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[{}],"error":null}}`))
	}))

	_, err := client.KeyMetrics(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyProfile))
}

func TestIncomeStatement(t *testing.T) {
	var gotTypes string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTypes = r.URL.Query().Get("type")
		w.Write([]byte(`{"timeseries":{"result":[
			{"meta":{"symbol":["AAPL"],"type":["annualTotalRevenue"]},
			 "annualTotalRevenue":[
				{"asOfDate":"2022-09-24","periodType":"12M","reportedValue":{"raw":394328000000,"fmt":"394.33B"}},
				{"asOfDate":"2023-09-30","periodType":"12M","reportedValue":{"raw":383285000000,"fmt":"383.29B"}}
			 ]},
			{"meta":{"symbol":["AAPL"],"type":["annualNetIncome"]},
			 "annualNetIncome":[
				null,
				{"asOfDate":"2023-09-30","periodType":"12M","reportedValue":{"raw":96995000000,"fmt":"97.00B"}}
			 ]}
		],"error":null}}`))
	}))

	stmt, err := client.IncomeStatement(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Contains(t, gotTypes, "annualTotalRevenue")
	assert.Contains(t, gotTypes, "annualNetIncome")

	require.Len(t, stmt.Dates, 2)
	// Most recent fiscal period first.
	assert.Greater(t, stmt.Dates[0], stmt.Dates[1])

	latest := stmt.Items[stmt.Dates[0]]
	assert.Equal(t, 383285000000.0, latest["Total Revenue"])
	assert.Equal(t, 96995000000.0, latest["Net Income"])

	prior := stmt.Items[stmt.Dates[1]]
	assert.Equal(t, 394328000000.0, prior["Total Revenue"])
	_, hasNetIncome := prior["Net Income"]
	assert.False(t, hasNetIncome)
}

func TestStatementEmptyResult(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timeseries":{"result":[],"error":null}}`))
	}))

	stmt, err := client.BalanceSheet(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.True(t, stmt.Empty())
	assert.Equal(t, "{}", StatementJSON(stmt))
}

func TestStatementNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	stmt, err := client.CashFlow(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.True(t, stmt.Empty())
}

func TestStatementServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.IncomeStatement(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrProviderUnavailable))
}

func TestRawValueUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *float64
	}{
		{"wrapped", `{"raw":1.5,"fmt":"1.50"}`, ptr(1.5)},
		{"plain", `2.5`, ptr(2.5)},
		{"empty object", `{}`, nil},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v rawValue
			require.NoError(t, json.Unmarshal([]byte(tt.in), &v))
			if tt.want == nil {
				assert.Nil(t, v.Raw)
			} else {
				require.NotNil(t, v.Raw)
				assert.Equal(t, *tt.want, *v.Raw)
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }
