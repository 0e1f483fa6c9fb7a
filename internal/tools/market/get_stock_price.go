package market

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/adk/tool"

	"finadvisor/internal/adapters/yahoo"
	"finadvisor/internal/tools/shared"
	"finadvisor/pkg/errors"
)

const stockPriceDescription = "지정된 기간의 주가 이력과 현재가를 제공합니다. " +
	"시가·고가·저가·종가·거래량 시계열과 현재 시세, 기간 요약(최근 종가, 등락률, 캔들 수)을 함께 반환합니다. " +
	"인자: ticker(주식 티커 심볼), period(1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max 중 하나. 기본값 1mo)."

// NewGetStockPriceTool returns the price history tool.
func NewGetStockPriceTool(deps shared.Deps) tool.Tool {
	fn := func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		return stockPrice(ctx, deps, args)
	}

	return shared.NewToolBuilder("get_stock_price", stockPriceDescription, fn, deps).
		WithTimeout(30 * time.Second).
		WithStats().
		Build()
}

func stockPrice(ctx context.Context, deps shared.Deps, args map[string]interface{}) (map[string]interface{}, error) {
	ticker, _ := args["ticker"].(string)
	rawPeriod, _ := args["period"].(string)

	if ticker == "" {
		return errorResult(ticker, "주가 데이터 조회 실패: 티커가 제공되지 않았습니다."), nil
	}

	period, err := yahoo.ParsePeriod(rawPeriod)
	if err != nil {
		return errorResult(ticker, fmt.Sprintf("주가 데이터 조회 실패: %v", err)), nil
	}

	quote, err := deps.Market.Quote(ctx, ticker)
	if err != nil {
		return errorResult(ticker, fmt.Sprintf("주가 데이터 조회 실패: %v", err)), nil
	}

	bars, err := deps.Market.PriceHistory(ctx, ticker, period)
	if err != nil {
		if errors.Is(err, errors.ErrEmptyHistory) {
			return errorResult(ticker, fmt.Sprintf("%s 기간에 대한 주가 이력이 없습니다.", period)), nil
		}
		return errorResult(ticker, fmt.Sprintf("주가 데이터 조회 실패: %v", err)), nil
	}

	// Prefer the live quote; thin or delisted tickers fall back to the
	// last candle close. Stays null when neither exists.
	var currentPrice interface{}
	if quote.HasPrice() {
		currentPrice = quote.Price.InexactFloat64()
	} else if len(bars) > 0 {
		currentPrice = bars[len(bars)-1].Close.InexactFloat64()
	}

	priceSummary := map[string]interface{}{}
	if summary := yahoo.SummarizeBars(bars); summary != nil {
		var changePct interface{}
		if summary.ChangePct != nil {
			changePct = summary.ChangePct.InexactFloat64()
		}
		priceSummary = map[string]interface{}{
			"latest_close":   summary.LatestClose.InexactFloat64(),
			"change_pct":     changePct,
			"period_candles": summary.PeriodCandles,
		}
	}

	return map[string]interface{}{
		"ticker":        ticker,
		"success":       true,
		"history":       yahoo.HistoryJSON(bars),
		"current_price": currentPrice,
		"price_summary": priceSummary,
		"period":        period.String(),
	}, nil
}
