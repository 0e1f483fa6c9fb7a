package yahoo

import (
	"time"

	"finadvisor/pkg/errors"
)

// Period identifies a supported price history range.
type Period string

const (
	Period1D  Period = "1d"
	Period5D  Period = "5d"
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
	Period10Y Period = "10y"
	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"
)

// DefaultPeriod is used when the caller does not specify a range.
const DefaultPeriod = Period1Mo

// AllPeriods lists every supported period value.
func AllPeriods() []Period {
	return []Period{
		Period1D, Period5D, Period1Mo, Period3Mo, Period6Mo,
		Period1Y, Period2Y, Period5Y, Period10Y, PeriodYTD, PeriodMax,
	}
}

// ParsePeriod validates a raw period string.
func ParsePeriod(raw string) (Period, error) {
	if raw == "" {
		return DefaultPeriod, nil
	}

	p := Period(raw)
	switch p {
	case Period1D, Period5D, Period1Mo, Period3Mo, Period6Mo,
		Period1Y, Period2Y, Period5Y, Period10Y, PeriodYTD, PeriodMax:
		return p, nil
	}

	return "", errors.Wrapf(errors.ErrInvalidPeriod, "unsupported period %q", raw)
}

// Start returns the beginning of the period relative to now.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case Period1D:
		return now.AddDate(0, 0, -1)
	case Period5D:
		return now.AddDate(0, 0, -5)
	case Period1Mo:
		return now.AddDate(0, -1, 0)
	case Period3Mo:
		return now.AddDate(0, -3, 0)
	case Period6Mo:
		return now.AddDate(0, -6, 0)
	case Period1Y:
		return now.AddDate(-1, 0, 0)
	case Period2Y:
		return now.AddDate(-2, 0, 0)
	case Period5Y:
		return now.AddDate(-5, 0, 0)
	case Period10Y:
		return now.AddDate(-10, 0, 0)
	case PeriodYTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case PeriodMax:
		return time.Unix(0, 0)
	}
	return now.AddDate(0, -1, 0)
}

func (p Period) String() string {
	return string(p)
}
