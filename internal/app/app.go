// Package app holds the state of one journaling session and exposes the
// actions the command line drives.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/tradelog/config"
	"github.com/rustyeddy/tradelog/internal/logger"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/metrics"
	"github.com/rustyeddy/tradelog/tracker"
	"github.com/shopspring/decimal"
)

// App is not safe for concurrent use. The interactive loop calls it from
// a single goroutine.
type App struct {
	cfg     *config.Config
	journal journal.Journal
	tracker *tracker.Tracker
	goals   metrics.Goals
	now     func() time.Time
	log     *slog.Logger

	// dailyPnL is refreshed whenever trades are read so the once-a-second
	// status never touches the journal.
	dailyPnL decimal.Decimal
	pnlDay   string
}

type Option func(*App)

// WithClock replaces time.Now. Tests use it.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.log = l }
}

// Open creates the journal directory, opens the configured backend and
// restores today's elapsed counter.
func Open(cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:      cfg,
		now:      time.Now,
		log:      logger.L,
		dailyPnL: decimal.Zero,
	}
	for _, o := range opts {
		o(a)
	}

	if err := os.MkdirAll(cfg.Journal.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	j, err := openJournal(cfg)
	if err != nil {
		return nil, err
	}
	a.journal = j

	markers := tracker.NewMarkerStore(cfg.Journal.Dir, cfg.Journal.ElapsedPrefix)
	a.tracker = tracker.New(markers, j, a.now)
	a.goals = metrics.Goals{
		TargetPnL:     decimal.NewFromFloat(cfg.Goals.TargetPnL),
		TargetMinutes: cfg.Goals.TargetMinutes,
	}

	a.log.Debug("journal opened",
		"backend", cfg.Journal.Type,
		"dir", cfg.Journal.Dir,
		"elapsed_today", a.tracker.Elapsed(),
	)
	return a, nil
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch strings.ToLower(cfg.Journal.Type) {
	case "", "csv":
		j, err := journal.NewCSV(cfg.TradesPath(), cfg.SessionsPath())
		if err != nil {
			return nil, fmt.Errorf("open csv journal: %w", err)
		}
		return j, nil
	case "sqlite":
		j, err := journal.NewSQLite(cfg.DBFile())
		if err != nil {
			return nil, fmt.Errorf("open sqlite journal: %w", err)
		}
		return j, nil
	default:
		return nil, fmt.Errorf("unknown journal backend %q", cfg.Journal.Type)
	}
}

// Close pauses a running timer so its time is kept, then closes the journal.
func (a *App) Close() error {
	pauseErr := a.tracker.Pause()
	if err := a.journal.Close(); err != nil {
		return err
	}
	return pauseErr
}

func (a *App) Config() *config.Config    { return a.cfg }
func (a *App) Journal() journal.Journal  { return a.journal }
func (a *App) Tracker() *tracker.Tracker { return a.tracker }
func (a *App) Goals() metrics.Goals      { return a.goals }

// Today is the local calendar date in the journal's date format.
func (a *App) Today() string { return market.DayOf(a.now()) }

// SetGoals replaces the in-memory targets. They are not persisted.
func (a *App) SetGoals(g metrics.Goals) error {
	if g.TargetMinutes < 0 {
		return fmt.Errorf("target minutes must not be negative")
	}
	a.goals = g
	a.log.Info("goals updated", "target_pnl", g.TargetPnL.StringFixed(2), "target_minutes", g.TargetMinutes)
	return nil
}
