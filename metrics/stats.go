// Package metrics derives performance figures from stored trades.
package metrics

import (
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
)

// Stats aggregates a set of trades. Ties counts every outcome that is
// neither a win nor a loss.
type Stats struct {
	Ops     int
	Wins    int
	Losses  int
	Ties    int
	WinRate float64 // percent of decisive trades that were wins
	NetPnL  decimal.Decimal
}

type Summary struct {
	Daily      Stats
	Cumulative Stats
}

// Compute aggregates trades. The win rate is 0 when there are no wins or
// losses; ties never enter the denominator.
func Compute(trades []journal.TradeRecord) Stats {
	s := Stats{Ops: len(trades), NetPnL: decimal.Zero}
	for _, t := range trades {
		switch t.Outcome {
		case market.Win:
			s.Wins++
		case market.Loss:
			s.Losses++
		default:
			s.Ties++
		}
		s.NetPnL = s.NetPnL.Add(t.PnL)
	}
	if decisive := s.Wins + s.Losses; decisive > 0 {
		s.WinRate = float64(s.Wins) / float64(decisive) * 100
	}
	return s
}

// ComputeStats returns the figures for the asOf date alongside those for
// every trade on record.
func ComputeStats(trades []journal.TradeRecord, asOf string) Summary {
	return Summary{
		Daily:      Compute(FilterDay(trades, asOf)),
		Cumulative: Compute(trades),
	}
}

// FilterDay keeps trades whose stored date equals date.
func FilterDay(trades []journal.TradeRecord, date string) []journal.TradeRecord {
	var out []journal.TradeRecord
	for _, t := range trades {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}
