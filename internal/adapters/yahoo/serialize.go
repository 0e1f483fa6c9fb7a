package yahoo

import (
	"sort"
	"strconv"
	"strings"
)

// historyColumns fixes the serialization order of the candle table.
var historyColumns = []string{"Open", "High", "Low", "Close", "Volume"}

// HistoryJSON renders bars as a column-keyed table where each field maps
// epoch milliseconds to its value:
//
//	{"Open":{"1700092800000":189.89,...},"High":{...},...}
//
// An empty history renders as {}.
func HistoryJSON(bars []Bar) string {
	if len(bars) == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, col := range historyColumns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(col))
		b.WriteByte(':')
		writeSeries(&b, bars, col)
	}
	b.WriteByte('}')
	return b.String()
}

func writeSeries(b *strings.Builder, bars []Bar, col string) {
	b.WriteByte('{')
	for i, bar := range bars {
		if i > 0 {
			b.WriteByte(',')
		}
		key := strconv.FormatInt(bar.Timestamp.UnixMilli(), 10)
		b.WriteString(strconv.Quote(key))
		b.WriteByte(':')
		b.WriteString(barField(bar, col))
	}
	b.WriteByte('}')
}

func barField(bar Bar, col string) string {
	switch col {
	case "Open":
		return bar.Open.String()
	case "High":
		return bar.High.String()
	case "Low":
		return bar.Low.String()
	case "Close":
		return bar.Close.String()
	case "Volume":
		return strconv.FormatInt(bar.Volume, 10)
	}
	return "null"
}

// StatementJSON renders a statement as a date-keyed table where each fiscal
// period end (epoch milliseconds) maps line items to values:
//
//	{"1695945600000":{"Total Revenue":383285000000,...},...}
//
// An empty statement renders as {}.
func StatementJSON(s *Statement) string {
	if s.Empty() {
		return "{}"
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, date := range s.Dates {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(strconv.FormatInt(date, 10)))
		b.WriteByte(':')

		items := s.Items[date]
		names := make([]string, 0, len(items))
		for name := range items {
			names = append(names, name)
		}
		sort.Strings(names)

		b.WriteByte('{')
		for j, name := range names {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(name))
			b.WriteByte(':')
			b.WriteString(strconv.FormatFloat(items[name], 'f', -1, 64))
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.String()
}
