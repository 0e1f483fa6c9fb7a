// Package fundamentals exposes the three financial statement tools used by
// the financial analyst agent. Unlike the market tools these propagate
// provider errors, so the ADK surfaces the failure to the model as-is.
package fundamentals

import (
	"context"
	"time"

	"google.golang.org/adk/tool"

	"finadvisor/internal/adapters/yahoo"
	"finadvisor/internal/tools/shared"
	"finadvisor/pkg/errors"
)

const incomeStatementDescription = "종합적인 매출 및 수익성 분석을 위한 손익계산서를 조회합니다. " +
	"최근 분기와 회계연도의 총매출, 매출원가, 영업이익, EBITDA, 당기순이익, EPS 항목을 JSON 문자열로 반환합니다. " +
	"매출 성장과 마진 추세, 수익성 파악에 유용합니다. 인자: ticker(주식 티커 심볼, 예: 'AAPL')."

const balanceSheetDescription = "재무 상태와 자본 구조를 파악하기 위한 대차대조표를 조회합니다. " +
	"유동·비유동 자산, 유동·비유동 부채, 총자본, 운전자본 구성을 JSON 문자열로 반환합니다. " +
	"유동성 지표 계산과 부채 수준, 장부가치 분석에 사용됩니다. 인자: ticker(주식 티커 심볼, 예: 'AAPL')."

const cashFlowDescription = "현금 창출 능력과 자본 배분을 평가하기 위한 현금흐름표를 조회합니다. " +
	"영업·투자·재무 활동별 현금 흐름과 자본적지출, 잉여현금흐름, 현금증감을 JSON 문자열로 반환합니다. " +
	"배당 지속 가능성과 성장 투자 여력 평가에 핵심입니다. 인자: ticker(주식 티커 심볼, 예: 'AAPL')."

// NewGetIncomeStatementTool returns the income statement tool.
func NewGetIncomeStatementTool(deps shared.Deps) tool.Tool {
	fn := func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		return incomeStatement(ctx, deps, args)
	}

	return shared.NewToolBuilder("get_income_statement", incomeStatementDescription, fn, deps).
		WithRetry(2, 500*time.Millisecond).
		WithTimeout(30 * time.Second).
		WithStats().
		Build()
}

// NewGetBalanceSheetTool returns the balance sheet tool.
func NewGetBalanceSheetTool(deps shared.Deps) tool.Tool {
	fn := func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		return balanceSheet(ctx, deps, args)
	}

	return shared.NewToolBuilder("get_balance_sheet", balanceSheetDescription, fn, deps).
		WithRetry(2, 500*time.Millisecond).
		WithTimeout(30 * time.Second).
		WithStats().
		Build()
}

// NewGetCashFlowTool returns the cash flow statement tool.
func NewGetCashFlowTool(deps shared.Deps) tool.Tool {
	fn := func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		return cashFlow(ctx, deps, args)
	}

	return shared.NewToolBuilder("get_cash_flow", cashFlowDescription, fn, deps).
		WithRetry(2, 500*time.Millisecond).
		WithTimeout(30 * time.Second).
		WithStats().
		Build()
}

func incomeStatement(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	return fetchStatement(ctx, deps, args, "income_statement", deps.Market.IncomeStatement)
}

func balanceSheet(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	return fetchStatement(ctx, deps, args, "balance_sheet", deps.Market.BalanceSheet)
}

func cashFlow(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	return fetchStatement(ctx, deps, args, "cash_flow", deps.Market.CashFlow)
}

func fetchStatement(
	ctx context.Context,
	_ shared.Deps,
	args map[string]interface{},
	resultKey string,
	fetch func(context.Context, string) (*yahoo.Statement, error),
) (map[string]interface{}, error) {
	ticker, _ := args["ticker"].(string)
	if ticker == "" {
		return nil, errors.Wrap(errors.ErrInvalidTicker, "ticker is required")
	}

	statement, err := fetch(ctx, ticker)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"ticker":  ticker,
		"success": true,
		resultKey: yahoo.StatementJSON(statement),
	}, nil
}
