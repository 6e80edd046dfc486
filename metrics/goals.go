package metrics

import (
	"github.com/shopspring/decimal"
)

const (
	DefaultTargetPnL     = 20.0
	DefaultTargetMinutes = 60
)

// epsilon stands in for a zero or negative PnL target.
var epsilon = decimal.NewFromFloat(0.01)

// Goals are the user's daily targets. They live in memory only.
type Goals struct {
	TargetPnL     decimal.Decimal
	TargetMinutes int
}

func DefaultGoals() Goals {
	return Goals{
		TargetPnL:     decimal.NewFromFloat(DefaultTargetPnL),
		TargetMinutes: DefaultTargetMinutes,
	}
}

// Progress toward the daily goals. Percentages are clamped to [0, 100].
type Progress struct {
	PnLPct        float64
	PnLRemaining  decimal.Decimal
	TimePct       float64
	TimeRemaining float64 // minutes
}

// GoalProgress compares today's PnL and effective seconds with the targets.
func GoalProgress(dailyPnL, targetPnL decimal.Decimal, elapsedSeconds int64, targetMinutes int) Progress {
	denom := decimal.Max(targetPnL, epsilon)
	pnlPct := clamp(dailyPnL.Div(denom).Mul(decimal.NewFromInt(100)).InexactFloat64())
	pnlRemaining := decimal.Max(decimal.Zero, targetPnL.Sub(dailyPnL))

	mins := float64(elapsedSeconds) / 60
	tgt := max(targetMinutes, 1)
	timePct := clamp(mins / float64(tgt) * 100)
	timeRemaining := max(0, float64(targetMinutes)-mins)

	return Progress{
		PnLPct:        pnlPct,
		PnLRemaining:  pnlRemaining,
		TimePct:       timePct,
		TimeRemaining: timeRemaining,
	}
}

// Progress evaluates g against the given daily figures.
func (g Goals) Progress(dailyPnL decimal.Decimal, elapsedSeconds int64) Progress {
	return GoalProgress(dailyPnL, g.TargetPnL, elapsedSeconds, g.TargetMinutes)
}

func clamp(pct float64) float64 {
	return min(max(pct, 0), 100)
}
