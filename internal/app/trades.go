package app

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/metrics"
)

var ErrRowOutOfRange = errors.New("row number out of range")

// Trades re-reads the whole log. The journal is the only source of truth.
func (a *App) Trades() ([]journal.TradeRecord, error) {
	trades, err := a.journal.ReadTrades()
	if err != nil {
		return nil, fmt.Errorf("read trades: %w", err)
	}
	a.cacheDaily(trades)
	return trades, nil
}

// TodayTrades returns the trades dated today.
func (a *App) TodayTrades() ([]journal.TradeRecord, error) {
	trades, err := a.Trades()
	if err != nil {
		return nil, err
	}
	return metrics.FilterDay(trades, a.Today()), nil
}

// AddTrade validates the form values, stamps the trade with the current
// time and appends it. A rejected trade leaves the log untouched.
func (a *App) AddTrade(in journal.TradeInput) (journal.TradeRecord, error) {
	rec, err := journal.NewTrade(in, a.now())
	if err != nil {
		return journal.TradeRecord{}, err
	}
	if err := a.journal.AppendTrade(rec); err != nil {
		return journal.TradeRecord{}, fmt.Errorf("append trade: %w", err)
	}
	a.log.Info("trade added",
		"asset", rec.Asset,
		"outcome", rec.Outcome,
		"pnl", rec.PnL.StringFixed(2),
	)
	if _, err := a.Trades(); err != nil {
		a.log.Warn("refresh after add", "err", err)
	}
	return rec, nil
}

// ListTrades returns the trades of one day, or the whole log when day is
// empty. Row numbers shown to the user index into this slice.
func (a *App) ListTrades(day string) ([]journal.TradeRecord, error) {
	trades, err := a.Trades()
	if err != nil || day == "" {
		return trades, err
	}
	if db, ok := a.journal.(*journal.SQLiteJournal); ok {
		return db.ListTradesOn(day)
	}
	return metrics.FilterDay(trades, day), nil
}

// DeleteTrades removes the selected records from the log. On SQLite,
// records that carry an ID are deleted by ID and the table is not
// rewritten.
func (a *App) DeleteTrades(selected []journal.TradeRecord) (int, error) {
	n, err := a.deleteSelected(selected)
	if err != nil {
		return 0, err
	}
	a.log.Info("trades deleted", "selected", len(selected), "removed", n)
	if _, err := a.Trades(); err != nil {
		a.log.Warn("refresh after delete", "err", err)
	}
	return n, nil
}

func (a *App) deleteSelected(selected []journal.TradeRecord) (int, error) {
	db, isDB := a.journal.(*journal.SQLiteJournal)
	ids, ok := tradeIDs(selected)
	if !isDB || !ok {
		return journal.DeleteSelected(a.journal, selected)
	}
	n, err := db.DeleteTrades(ids...)
	if err != nil {
		return 0, fmt.Errorf("delete trades: %w", err)
	}
	return int(n), nil
}

// tradeIDs reports ok only when every selected record has an ID.
func tradeIDs(selected []journal.TradeRecord) ([]string, bool) {
	if len(selected) == 0 {
		return nil, false
	}
	ids := make([]string, 0, len(selected))
	for _, t := range selected {
		if t.ID == "" {
			return nil, false
		}
		ids = append(ids, t.ID)
	}
	return ids, true
}

// DeleteRows deletes trades by their 1-based position in ListTrades(day),
// so the numbers match the listing the user picked them from. Repeated
// row numbers count once.
func (a *App) DeleteRows(day string, rows []int) (int, error) {
	if len(rows) == 0 {
		return 0, journal.ErrNoSelection
	}
	trades, err := a.ListTrades(day)
	if err != nil {
		return 0, err
	}
	rows = slices.Clone(rows)
	slices.Sort(rows)
	rows = slices.Compact(rows)

	selected := make([]journal.TradeRecord, 0, len(rows))
	for _, r := range rows {
		if r < 1 || r > len(trades) {
			return 0, fmt.Errorf("%w: %d (have %d)", ErrRowOutOfRange, r, len(trades))
		}
		selected = append(selected, trades[r-1])
	}
	return a.DeleteTrades(selected)
}

// Import replaces the trade log with the CSV file at path. Malformed rows
// in the file are dropped when the log is next read.
func (a *App) Import(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open import: %w", err)
	}
	defer f.Close()

	n, err := journal.ImportTrades(a.journal, f)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", path, err)
	}
	a.log.Info("trades imported", "path", path, "records", n)
	if _, err := a.Trades(); err != nil {
		a.log.Warn("refresh after import", "err", err)
	}
	return n, nil
}

// Sessions lists the completed timer runs.
func (a *App) Sessions() ([]journal.SessionRecord, error) {
	s, err := a.journal.ReadSessions()
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	return s, nil
}

func (a *App) cacheDaily(trades []journal.TradeRecord) {
	today := a.Today()
	a.dailyPnL = metrics.Compute(metrics.FilterDay(trades, today)).NetPnL
	a.pnlDay = today
}
