package metrics

import (
	"testing"
	"time"

	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trade(at time.Time, outcome market.Outcome, pnl string) journal.TradeRecord {
	return journal.TradeRecord{
		Time:    at,
		Date:    market.DayOf(at),
		Asset:   "EUR/USD",
		Outcome: outcome,
		PnL:     decimal.RequireFromString(pnl),
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 5, 6, 10, 0, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)

	trades := []journal.TradeRecord{
		trade(yesterday, market.Win, "8.20"),
		trade(yesterday, market.Loss, "-10.00"),
		trade(today, market.Win, "8.20"),
		trade(today, market.Win, "4.10"),
		trade(today, market.Loss, "-5.00"),
		trade(today, market.Tie, "0.00"),
	}

	s := ComputeStats(trades, "2024-05-06")

	assert.Equal(t, 4, s.Daily.Ops)
	assert.Equal(t, 2, s.Daily.Wins)
	assert.Equal(t, 1, s.Daily.Losses)
	assert.Equal(t, 1, s.Daily.Ties)
	assert.InDelta(t, 66.6667, s.Daily.WinRate, 1e-3)
	assert.Equal(t, "7.30", s.Daily.NetPnL.StringFixed(2))

	assert.Equal(t, 6, s.Cumulative.Ops)
	assert.Equal(t, 3, s.Cumulative.Wins)
	assert.Equal(t, 2, s.Cumulative.Losses)
	assert.InDelta(t, 60.0, s.Cumulative.WinRate, 1e-9)
	assert.Equal(t, "5.50", s.Cumulative.NetPnL.StringFixed(2))
}

func TestWinRateZeroWithoutDecisiveTrades(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 6, 10, 0, 0, 0, time.Local)
	s := Compute([]journal.TradeRecord{
		trade(at, market.Tie, "0"),
		trade(at, market.Tie, "0"),
		trade(at, "imported-unknown", "0"),
	})
	assert.Equal(t, 3, s.Ties)
	assert.Equal(t, 0.0, s.WinRate)

	empty := Compute(nil)
	assert.Zero(t, empty.Ops)
	assert.Equal(t, 0.0, empty.WinRate)
	assert.True(t, empty.NetPnL.IsZero())
}

func TestDailyUsesStoredDate(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 6, 10, 0, 0, 0, time.Local)
	rec := trade(at, market.Win, "1")
	rec.Date = "2024-05-05"

	s := ComputeStats([]journal.TradeRecord{rec}, "2024-05-06")
	assert.Zero(t, s.Daily.Ops)
	assert.Equal(t, 1, s.Cumulative.Ops)
}

func TestGoalProgress(t *testing.T) {
	t.Parallel()

	d := decimal.RequireFromString

	tests := []struct {
		name          string
		daily, target string
		elapsed       int64
		targetMinutes int
		pnlPct        float64
		pnlRemaining  string
		timePct       float64
		timeRemaining float64
	}{
		{
			name: "quarter of pnl target", daily: "5", target: "20",
			elapsed: 0, targetMinutes: 60,
			pnlPct: 25, pnlRemaining: "15.00", timePct: 0, timeRemaining: 60,
		},
		{
			name: "time overachieved is clamped", daily: "0", target: "20",
			elapsed: 5400, targetMinutes: 60,
			pnlPct: 0, pnlRemaining: "20.00", timePct: 100, timeRemaining: 0,
		},
		{
			name: "pnl overachieved is clamped", daily: "500", target: "20",
			elapsed: 1800, targetMinutes: 60,
			pnlPct: 100, pnlRemaining: "0.00", timePct: 50, timeRemaining: 30,
		},
		{
			name: "losing day floors at zero", daily: "-30", target: "20",
			elapsed: 90, targetMinutes: 60,
			pnlPct: 0, pnlRemaining: "50.00", timePct: 2.5, timeRemaining: 58.5,
		},
		{
			name: "zero targets do not divide by zero", daily: "1", target: "0",
			elapsed: 30, targetMinutes: 0,
			pnlPct: 100, pnlRemaining: "0.00", timePct: 50, timeRemaining: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GoalProgress(d(tt.daily), d(tt.target), tt.elapsed, tt.targetMinutes)
			assert.InDelta(t, tt.pnlPct, p.PnLPct, 1e-9)
			assert.Equal(t, tt.pnlRemaining, p.PnLRemaining.StringFixed(2))
			assert.InDelta(t, tt.timePct, p.TimePct, 1e-9)
			assert.InDelta(t, tt.timeRemaining, p.TimeRemaining, 1e-9)
		})
	}
}

func TestGoalProgressAlwaysInRange(t *testing.T) {
	t.Parallel()

	goals := DefaultGoals()
	for _, pnl := range []float64{-1e9, -1, 0, 0.01, 19.99, 20, 1e9} {
		for _, secs := range []int64{0, 1, 3599, 3600, 1 << 40} {
			p := goals.Progress(decimal.NewFromFloat(pnl), secs)
			assert.GreaterOrEqual(t, p.PnLPct, 0.0)
			assert.LessOrEqual(t, p.PnLPct, 100.0)
			assert.GreaterOrEqual(t, p.TimePct, 0.0)
			assert.LessOrEqual(t, p.TimePct, 100.0)
			assert.False(t, p.PnLRemaining.IsNegative())
			assert.GreaterOrEqual(t, p.TimeRemaining, 0.0)
		}
	}
}

func TestDefaultGoals(t *testing.T) {
	t.Parallel()

	g := DefaultGoals()
	assert.Equal(t, "20.00", g.TargetPnL.StringFixed(2))
	assert.Equal(t, 60, g.TargetMinutes)
}

func TestBucketByHour(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	// appended out of hour order on purpose
	trades := []journal.TradeRecord{
		trade(at(11, 5), market.Win, "10"),
		trade(at(9, 10), market.Win, "5"),
		trade(at(9, 40), market.Loss, "-2"),
	}

	got := BucketByHour(trades)
	require.Len(t, got, 2)

	assert.Equal(t, "09", got[0].Hour)
	assert.Equal(t, 2, got[0].Ops)
	assert.Equal(t, "3.00", got[0].PnL.StringFixed(2))
	assert.Equal(t, "3.00", got[0].CumPnL.StringFixed(2))

	assert.Equal(t, "11", got[1].Hour)
	assert.Equal(t, 1, got[1].Ops)
	assert.Equal(t, "10.00", got[1].PnL.StringFixed(2))
	assert.Equal(t, "13.00", got[1].CumPnL.StringFixed(2))
}

func TestBucketByHourSparseAndEmpty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, BucketByHour(nil))

	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local)
	got := BucketByHour([]journal.TradeRecord{
		trade(day.Add(23*time.Hour), market.Loss, "-4"),
		trade(day, market.Win, "1"),
	})
	require.Len(t, got, 2)
	assert.Equal(t, "00", got[0].Hour)
	assert.Equal(t, "23", got[1].Hour)
	assert.Equal(t, "-3.00", got[1].CumPnL.StringFixed(2))
}
