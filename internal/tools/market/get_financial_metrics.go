package market

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/adk/tool"

	"finadvisor/internal/tools/shared"
	"finadvisor/pkg/errors"
)

const financialMetricsDescription = "주식 분석에 필요한 핵심 재무 지표를 제공합니다. " +
	"시가총액, PER, 배당수익률, 베타를 반환하며 값이 없는 항목은 \"NA\"로 표시됩니다. " +
	"인자: ticker(주식 티커 심볼)."

// NewGetFinancialMetricsTool returns the valuation metrics tool.
func NewGetFinancialMetricsTool(deps shared.Deps) tool.Tool {
	fn := func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		return financialMetrics(ctx, deps, args)
	}

	return shared.NewToolBuilder("get_financial_metrics", financialMetricsDescription, fn, deps).
		WithTimeout(30 * time.Second).
		WithStats().
		Build()
}

func financialMetrics(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	ticker, _ := args["ticker"].(string)
	if ticker == "" {
		return errorResult(ticker, "재무 지표 조회 실패: 티커가 제공되지 않았습니다."), nil
	}

	keyMetrics, err := deps.Market.KeyMetrics(ctx, ticker)
	if err != nil {
		if errors.Is(err, errors.ErrEmptyProfile) || errors.Is(err, errors.ErrNotFound) {
			return errorResult(ticker, "재무 지표 데이터를 찾을 수 없습니다."), nil
		}
		return errorResult(ticker, fmt.Sprintf("재무 지표 조회 실패: %v", err)), nil
	}

	return map[string]interface{}{
		"ticker":         ticker,
		"success":        true,
		"market_cap":     floatOrNA(keyMetrics.MarketCap),
		"pe_ratio":       floatOrNA(keyMetrics.TrailingPE),
		"dividend_yield": floatOrNA(keyMetrics.DividendYield),
		"beta":           floatOrNA(keyMetrics.Beta),
	}, nil
}
