package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/pkg/id"
)

// SQLiteJournal is the indexed backend. Trades get a generated ULID so a
// delete can target one row even when another row has identical fields.
type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

const insertTrade = `
	INSERT INTO trades
	(trade_id, datetime, date, asset, timeframe, amount, direction, outcome, payout_pct, pnl, emotion, notes)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertTradeRow(e execer, t TradeRecord) error {
	if t.ID == "" {
		t.ID = id.New()
	}
	args := []any{t.ID}
	for _, v := range t.Row() {
		args = append(args, v)
	}
	_, err := e.Exec(insertTrade, args...)
	return err
}

func (j *SQLiteJournal) AppendTrade(t TradeRecord) error {
	return insertTradeRow(j.db, t)
}

func (j *SQLiteJournal) ReadTrades() ([]TradeRecord, error) {
	return j.queryTrades(`WHERE 1=1`)
}

// RewriteTrades replaces every trade with keep inside one transaction.
func (j *SQLiteJournal) RewriteTrades(keep []TradeRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM trades`); err != nil {
		tx.Rollback()
		return err
	}
	for _, t := range keep {
		if err := insertTradeRow(tx, t); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert trade: %w", err)
		}
	}
	return tx.Commit()
}

func (j *SQLiteJournal) AppendSession(s SessionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO sessions
		(session_id, start_time, end_time, duration_min, notes)
		VALUES (?, ?, ?, ?, ?)`,
		s.SessionID,
		s.Start.Format(market.TimestampLayout),
		s.End.Format(market.TimestampLayout),
		s.DurationMin,
		s.Notes,
	)
	return err
}

func (j *SQLiteJournal) ReadSessions() ([]SessionRecord, error) {
	rows, err := j.db.Query(`
		SELECT session_id, start_time, end_time, duration_min, notes
		FROM sessions
		ORDER BY start_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			s          SessionRecord
			start, end string
		)
		if err := rows.Scan(&s.SessionID, &start, &end, &s.DurationMin, &s.Notes); err != nil {
			return nil, err
		}
		if s.Start, err = market.ParseTimestamp(start); err != nil {
			continue
		}
		if s.End, err = market.ParseTimestamp(end); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
