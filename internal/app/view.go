package app

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/metrics"
	"github.com/rustyeddy/tradelog/report"
	"github.com/rustyeddy/tradelog/tracker"
	"github.com/shopspring/decimal"
)

// View is everything the dashboard shows at one instant.
type View struct {
	Now      time.Time
	Today    string
	Summary  metrics.Summary
	Goals    metrics.Goals
	Progress metrics.Progress
	Hourly   []metrics.HourBucket
	Elapsed  int64 // seconds, including an open run
	State    tracker.State
}

// Status is the part of the view refreshed every second.
type Status struct {
	Elapsed  int64
	State    tracker.State
	DailyPnL decimal.Decimal
	Progress metrics.Progress
}

// Snapshot re-reads the log and derives every figure from it.
func (a *App) Snapshot() (View, error) {
	trades, err := a.Trades()
	if err != nil {
		return View{}, err
	}
	today := a.Today()
	summary := metrics.ComputeStats(trades, today)
	elapsed := a.tracker.Display()

	return View{
		Now:      a.now(),
		Today:    today,
		Summary:  summary,
		Goals:    a.goals,
		Progress: a.goals.Progress(summary.Daily.NetPnL, elapsed),
		Hourly:   metrics.BucketByHour(metrics.FilterDay(trades, today)),
		Elapsed:  elapsed,
		State:    a.tracker.State(),
	}, nil
}

// Tick computes the status line from the cached daily PnL and the timer.
// It never reads or writes the journal.
func (a *App) Tick() Status {
	elapsed := a.tracker.Display()
	daily := a.dailyPnL
	if a.pnlDay != a.Today() {
		daily = decimal.Zero
	}
	return Status{
		Elapsed:  elapsed,
		State:    a.tracker.State(),
		DailyPnL: daily,
		Progress: a.goals.Progress(daily, elapsed),
	}
}

// ReportData builds the report figures from the current log.
func (a *App) ReportData() (report.Data, error) {
	trades, err := a.Trades()
	if err != nil {
		return report.Data{}, err
	}
	return report.Build(trades, a.Today(), a.cfg.Report.Currency, a.now()), nil
}

// ExportReport writes the report to path, or to the configured report path
// when path is empty, and returns where it went.
func (a *App) ExportReport(path string, asHTML bool) (string, error) {
	if path == "" {
		path = a.cfg.ReportPath()
	}
	d, err := a.ReportData()
	if err != nil {
		return "", err
	}
	if err := report.WriteFile(path, d, asHTML); err != nil {
		return "", err
	}
	a.log.Info("report written", "path", path, "trades", len(d.Trades), "html", asHTML)
	return path, nil
}

// Org renders trades as Org-mode entries, only today's when todayOnly.
func (a *App) Org(todayOnly bool) (string, error) {
	trades, err := a.Trades()
	if err != nil {
		return "", err
	}
	if todayOnly {
		trades = metrics.FilterDay(trades, a.Today())
	}
	return journal.FormatTradesOrg(trades), nil
}

func (s Status) String() string {
	return fmt.Sprintf("%s %s  pnl %s (%.0f%%)  time %.0f%%",
		tracker.FormatHMS(s.Elapsed), s.State, s.DailyPnL.StringFixed(2),
		s.Progress.PnLPct, s.Progress.TimePct)
}
