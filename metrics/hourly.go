package metrics

import (
	"slices"

	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
)

// HourBucket is one point of the intraday chart.
type HourBucket struct {
	Hour   string // "00".."23"
	Ops    int
	PnL    decimal.Decimal // this hour only
	CumPnL decimal.Decimal // running sum over the buckets so far
}

// BucketByHour groups trades by the local hour of their timestamp. Only
// hours with trades appear, in ascending order, and CumPnL is a prefix sum
// over those buckets. No trades yields nil.
func BucketByHour(trades []journal.TradeRecord) []HourBucket {
	if len(trades) == 0 {
		return nil
	}

	byHour := make(map[string]*HourBucket)
	for _, t := range trades {
		h := t.Time.Format(market.HourLayout)
		b, ok := byHour[h]
		if !ok {
			b = &HourBucket{Hour: h, PnL: decimal.Zero}
			byHour[h] = b
		}
		b.Ops++
		b.PnL = b.PnL.Add(t.PnL)
	}

	hours := make([]string, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	slices.Sort(hours)

	out := make([]HourBucket, 0, len(hours))
	acc := decimal.Zero
	for _, h := range hours {
		b := *byHour[h]
		acc = acc.Add(b.PnL)
		b.CumPnL = acc
		out = append(out, b)
	}
	return out
}
