package fundamentals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finadvisor/internal/adapters/yahoo"
	"finadvisor/internal/tools/shared"
	"finadvisor/pkg/errors"
)

type fakeStatements struct {
	income  *yahoo.Statement
	balance *yahoo.Statement
	cash    *yahoo.Statement
	err     error
}

func (f *fakeStatements) Quote(_ context.Context, _ string) (*yahoo.Quote, error) {
	return nil, errors.ErrNotFound
}

func (f *fakeStatements) PriceHistory(_ context.Context, _ string, _ yahoo.Period) ([]yahoo.Bar, error) {
	return nil, errors.ErrNotFound
}

func (f *fakeStatements) CompanyProfile(_ context.Context, _ string) (*yahoo.CompanyProfile, error) {
	return nil, errors.ErrNotFound
}

func (f *fakeStatements) KeyMetrics(_ context.Context, _ string) (*yahoo.KeyMetrics, error) {
	return nil, errors.ErrNotFound
}

func (f *fakeStatements) IncomeStatement(_ context.Context, _ string) (*yahoo.Statement, error) {
	return f.income, f.err
}

func (f *fakeStatements) BalanceSheet(_ context.Context, _ string) (*yahoo.Statement, error) {
	return f.balance, f.err
}

func (f *fakeStatements) CashFlow(_ context.Context, _ string) (*yahoo.Statement, error) {
	return f.cash, f.err
}

func statementFixture(kind yahoo.StatementKind, item string, value float64) *yahoo.Statement {
	return &yahoo.Statement{
		Ticker: "AAPL",
		Kind:   kind,
		Dates:  []int64{1695945600000},
		Items: map[int64]map[string]float64{
			1695945600000: {item: value},
		},
	}
}

func TestIncomeStatementSuccess(t *testing.T) {
	deps := shared.Deps{Market: &fakeStatements{
		income: statementFixture(yahoo.StatementIncome, "Total Revenue", 383285000000),
	}}

	result, err := incomeStatement(context.Background(), deps, map[string]interface{}{"ticker": "AAPL"})
	require.NoError(t, err)

	assert.Equal(t, "AAPL", result["ticker"])
	assert.Equal(t, true, result["success"])
	assert.Contains(t, result["income_statement"], "Total Revenue")
	assert.Contains(t, result["income_statement"], "383285000000")
}

func TestBalanceSheetSuccess(t *testing.T) {
	deps := shared.Deps{Market: &fakeStatements{
		balance: statementFixture(yahoo.StatementBalance, "Total Assets", 352755000000),
	}}

	result, err := balanceSheet(context.Background(), deps, map[string]interface{}{"ticker": "AAPL"})
	require.NoError(t, err)

	assert.Equal(t, true, result["success"])
	assert.Contains(t, result["balance_sheet"], "Total Assets")
}

func TestCashFlowSuccess(t *testing.T) {
	deps := shared.Deps{Market: &fakeStatements{
		cash: statementFixture(yahoo.StatementCashFlow, "Operating Cash Flow", 110543000000),
	}}

	result, err := cashFlow(context.Background(), deps, map[string]interface{}{"ticker": "AAPL"})
	require.NoError(t, err)

	assert.Equal(t, true, result["success"])
	assert.Contains(t, result["cash_flow"], "Operating Cash Flow")
}

func TestStatementsPropagateProviderErrors(t *testing.T) {
	failing := errors.Wrap(errors.ErrProviderUnavailable, "quoteSummary 502")
	deps := shared.Deps{Market: &fakeStatements{err: failing}}
	args := map[string]interface{}{"ticker": "AAPL"}

	for name, fn := range map[string]func(context.Context, shared.Deps, map[string]interface{}) (map[string]interface{}, error){
		"income":  incomeStatement,
		"balance": balanceSheet,
		"cash":    cashFlow,
	} {
		t.Run(name, func(t *testing.T) {
			result, err := fn(context.Background(), deps, args)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, errors.ErrProviderUnavailable))
		})
	}
}

func TestStatementsRequireTicker(t *testing.T) {
	deps := shared.Deps{Market: &fakeStatements{}}

	result, err := incomeStatement(context.Background(), deps, map[string]interface{}{})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, errors.ErrInvalidTicker))
}

func TestEmptyStatementRendersEmptyObject(t *testing.T) {
	deps := shared.Deps{Market: &fakeStatements{income: &yahoo.Statement{Ticker: "AAPL"}}}

	result, err := incomeStatement(context.Background(), deps, map[string]interface{}{"ticker": "AAPL"})
	require.NoError(t, err)

	assert.Equal(t, true, result["success"])
	assert.Equal(t, "{}", result["income_statement"])
}
