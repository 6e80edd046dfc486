package journal

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rustyeddy/tradelog/market"
)

const selectTrades = `
	SELECT trade_id, datetime, date, asset, timeframe, amount, direction, outcome, payout_pct, pnl, emotion, notes
	FROM trades `

// GetTrade returns a single trade record by ID.
func (j *SQLiteJournal) GetTrade(tradeID string) (TradeRecord, error) {
	recs, err := j.queryTrades(`WHERE trade_id = ?`, tradeID)
	if err != nil {
		return TradeRecord{}, err
	}
	if len(recs) == 0 {
		return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
	}
	return recs[0], nil
}

// ListTradesOn returns the trades of one calendar date in insertion order.
func (j *SQLiteJournal) ListTradesOn(date string) ([]TradeRecord, error) {
	return j.queryTrades(`WHERE date = ?`, date)
}

// DeleteTrades removes trades by ID and reports how many rows went away.
func (j *SQLiteJournal) DeleteTrades(ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoSelection
	}
	args := make([]any, len(ids))
	for i, v := range ids {
		args[i] = v
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	res, err := j.db.Exec(`DELETE FROM trades WHERE trade_id IN (`+marks+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (j *SQLiteJournal) queryTrades(where string, args ...any) ([]TradeRecord, error) {
	rows, err := j.db.Query(selectTrades+where+` ORDER BY seq ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		rec, ok, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanTrade reports ok=false for rows whose timestamp does not parse.
func scanTrade(rows *sql.Rows) (TradeRecord, bool, error) {
	var (
		rec                 TradeRecord
		ts, amount, payout  string
		pnl                 string
		asset, tf, dir, out string
		emotion             string
	)
	err := rows.Scan(
		&rec.ID,
		&ts,
		&rec.Date,
		&asset,
		&tf,
		&amount,
		&dir,
		&out,
		&payout,
		&pnl,
		&emotion,
		&rec.Notes,
	)
	if err != nil {
		return TradeRecord{}, false, err
	}

	if rec.Time, err = market.ParseTimestamp(ts); err != nil {
		return TradeRecord{}, false, nil
	}
	rec.Asset = market.Asset(asset)
	rec.Timeframe = market.Timeframe(tf)
	rec.Direction = market.Direction(dir)
	rec.Outcome = market.Outcome(out)
	rec.Emotion = market.Emotion(emotion)
	rec.Amount = decimalOrZero(amount)
	rec.PayoutPct = decimalOrZero(payout)
	rec.PnL = decimalOrZero(pnl)
	return rec, true, nil
}
