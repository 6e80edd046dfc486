package journal

import (
	"errors"
	"fmt"
	"io"
	"slices"
)

var ErrNoSelection = errors.New("no trades selected")

// Without removes one stored row per selected record and returns what is
// left. Identical duplicates are only removed as many times as they were
// selected.
func Without(all, selected []TradeRecord) (keep []TradeRecord, removed int) {
	pending := slices.Clone(selected)
	keep = make([]TradeRecord, 0, len(all))
	for _, t := range all {
		if i := slices.IndexFunc(pending, t.Equal); i >= 0 {
			pending = slices.Delete(pending, i, i+1)
			removed++
			continue
		}
		keep = append(keep, t)
	}
	return keep, removed
}

// DeleteSelected rewrites the trade log without the selected records.
func DeleteSelected(j Journal, selected []TradeRecord) (int, error) {
	if len(selected) == 0 {
		return 0, ErrNoSelection
	}
	all, err := j.ReadTrades()
	if err != nil {
		return 0, fmt.Errorf("read trades: %w", err)
	}
	keep, removed := Without(all, selected)
	if removed == 0 {
		return 0, nil
	}
	if err := j.RewriteTrades(keep); err != nil {
		return 0, fmt.Errorf("rewrite trades: %w", err)
	}
	return removed, nil
}

type rawReplacer interface {
	ReplaceTrades(io.Reader) error
}

// ImportTrades replaces the whole trade log with the content of r and
// returns how many records are readable afterwards.
func ImportTrades(j Journal, r io.Reader) (int, error) {
	if rr, ok := j.(rawReplacer); ok {
		if err := rr.ReplaceTrades(r); err != nil {
			return 0, err
		}
		recs, err := j.ReadTrades()
		return len(recs), err
	}

	recs, _, err := ParseTrades(r)
	if err != nil {
		return 0, fmt.Errorf("parse import: %w", err)
	}
	if err := j.RewriteTrades(recs); err != nil {
		return 0, err
	}
	return len(recs), nil
}
