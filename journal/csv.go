// journal/csv.go
package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
)

// CSVJournal keeps trades and sessions in two UTF-8 CSV files. Nothing is
// cached: every read goes back to disk.
type CSVJournal struct {
	tradesPath   string
	sessionsPath string
}

// NewCSV makes sure both logs exist with their headers.
func NewCSV(tradesPath, sessionsPath string) (*CSVJournal, error) {
	j := &CSVJournal{tradesPath: tradesPath, sessionsPath: sessionsPath}
	if err := ensureHeader(tradesPath, TradeHeader); err != nil {
		return nil, err
	}
	if err := ensureHeader(sessionsPath, SessionHeader); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *CSVJournal) TradesPath() string   { return j.tradesPath }
func (j *CSVJournal) SessionsPath() string { return j.sessionsPath }

func (j *CSVJournal) AppendTrade(t TradeRecord) error {
	return appendRow(j.tradesPath, TradeHeader, t.Row())
}

func (j *CSVJournal) AppendSession(s SessionRecord) error {
	return appendRow(j.sessionsPath, SessionHeader, sessionRow(s))
}

func (j *CSVJournal) ReadTrades() ([]TradeRecord, error) {
	f, err := os.Open(j.tradesPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open trades: %w", err)
	}
	defer f.Close()

	recs, _, err := ParseTrades(f)
	return recs, err
}

func (j *CSVJournal) ReadSessions() ([]SessionRecord, error) {
	f, err := os.Open(j.sessionsPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open sessions: %w", err)
	}
	defer f.Close()

	var out []SessionRecord
	err = readRows(f, func(col func(string) string) {
		start, err := market.ParseTimestamp(col("start"))
		if err != nil {
			return
		}
		end, err := market.ParseTimestamp(col("end"))
		if err != nil {
			return
		}
		mins, _ := strconv.ParseFloat(col("duration_min"), 64)
		out = append(out, SessionRecord{
			SessionID:   col("session_id"),
			Start:       start,
			End:         end,
			DurationMin: mins,
			Notes:       col("notes"),
		})
	})
	return out, err
}

// RewriteTrades replaces the trade log with exactly keep. The new content is
// written to a temp file in the same directory and renamed over the log.
func (j *CSVJournal) RewriteTrades(keep []TradeRecord) error {
	return replaceFile(j.tradesPath, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(TradeHeader); err != nil {
			return err
		}
		for _, t := range keep {
			if err := cw.Write(t.Row()); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// ReplaceTrades swaps the trade log for the raw content of r. Nothing is
// validated here; bad rows are skipped when the log is next read.
func (j *CSVJournal) ReplaceTrades(r io.Reader) error {
	return replaceFile(j.tradesPath, func(w io.Writer) error {
		_, err := io.Copy(w, r)
		return err
	})
}

func (j *CSVJournal) Close() error {
	return nil
}

// ParseTrades reads a trade log with a header row. Columns are matched by
// name so foreign files with a different column order still load. Rows with
// an unparseable timestamp are skipped and counted; bad numbers become 0.
func ParseTrades(r io.Reader) (recs []TradeRecord, skipped int, err error) {
	err = readRows(r, func(col func(string) string) {
		raw := col("datetime")
		if raw == "" {
			raw = col("timestamp")
		}
		ts, perr := market.ParseTimestamp(raw)
		if perr != nil {
			skipped++
			return
		}
		recs = append(recs, TradeRecord{
			Time:      ts,
			Date:      col("date"),
			Asset:     market.Asset(col("asset")),
			Timeframe: market.Timeframe(col("timeframe")),
			Amount:    decimalOrZero(col("amount")),
			Direction: market.Direction(col("direction")),
			Outcome:   market.Outcome(col("outcome")),
			PayoutPct: decimalOrZero(col("payout_pct")),
			PnL:       decimalOrZero(col("pnl")),
			Emotion:   market.Emotion(col("emotion")),
			Notes:     col("notes"),
		})
	})
	return recs, skipped, err
}

// readRows calls fn for every data row with a column lookup by header name.
// Rows the csv reader cannot parse are dropped.
func readRows(r io.Reader, fn func(col func(string) string)) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		}
		if err != nil {
			return err
		}
		fn(func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		})
	}
}

func decimalOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func sessionRow(s SessionRecord) []string {
	return []string{
		s.SessionID,
		s.Start.Format(market.TimestampLayout),
		s.End.Format(market.TimestampLayout),
		strconv.FormatFloat(s.DurationMin, 'f', 2, 64),
		s.Notes,
	}
}

func ensureHeader(path string, header []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	return appendRow(path, header, nil)
}

// appendRow appends one row, writing the header first if the file is new or
// empty. A nil row only ensures the header.
func appendRow(path string, header, row []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	cw := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := cw.Write(header); err != nil {
			f.Close()
			return err
		}
	}
	if row != nil {
		if err := cw.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func replaceFile(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
