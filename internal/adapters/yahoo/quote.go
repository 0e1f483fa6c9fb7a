package yahoo

import (
	"context"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"

	"finadvisor/internal/metrics"
	"finadvisor/pkg/errors"
)

// Quote fetches the live market snapshot for a ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (*Quote, error) {
	if ticker == "" {
		return nil, errors.Wrap(errors.ErrInvalidTicker, "empty ticker")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "yahoo rate limiter")
	}

	start := time.Now()
	q, err := quote.Get(ticker)
	metrics.RecordProviderAPICall("yahoo", "quote", time.Since(start), err)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "yahoo quote %s: %v", ticker, err)
	}
	if q == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no quote for %s", ticker)
	}

	return &Quote{
		Ticker:      ticker,
		ShortName:   q.ShortName,
		Exchange:    q.FullExchangeName,
		Currency:    q.CurrencyID,
		MarketState: string(q.MarketState),
		Price:       decimal.NewFromFloat(q.RegularMarketPrice),
		Open:        decimal.NewFromFloat(q.RegularMarketOpen),
		DayHigh:     decimal.NewFromFloat(q.RegularMarketDayHigh),
		DayLow:      decimal.NewFromFloat(q.RegularMarketDayLow),
		Volume:      int64(q.RegularMarketVolume),
		Tradeable:   q.IsTradeable,
		AsOf:        time.Unix(int64(q.RegularMarketTime), 0),
	}, nil
}

// PriceHistory fetches daily candles covering the period ending now.
// Returns ErrEmptyHistory when the range holds no trading days.
func (c *Client) PriceHistory(ctx context.Context, ticker string, period Period) ([]Bar, error) {
	if ticker == "" {
		return nil, errors.Wrap(errors.ErrInvalidTicker, "empty ticker")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "yahoo rate limiter")
	}

	end := c.now()
	begin := period.Start(end)

	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&begin),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	start := time.Now()
	iter := chart.Get(params)

	var bars []Bar
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, Bar{
			Timestamp: time.Unix(int64(b.Timestamp), 0),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			AdjClose:  b.AdjClose,
			Volume:    int64(b.Volume),
		})
	}

	err := iter.Err()
	metrics.RecordProviderAPICall("yahoo", "chart", time.Since(start), err)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrProviderUnavailable, "yahoo chart %s: %v", ticker, err)
	}
	if len(bars) == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyHistory, "no candles for %s over %s", ticker, period)
	}

	return bars, nil
}
