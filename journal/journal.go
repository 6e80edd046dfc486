// journal/journal.go
package journal

import (
	"time"

	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
)

// TradeHeader is the fixed column set of the trade log.
var TradeHeader = []string{
	"datetime", "date", "asset", "timeframe", "amount",
	"direction", "outcome", "payout_pct", "pnl", "emotion", "notes",
}

// SessionHeader is the fixed column set of the session log.
var SessionHeader = []string{"session_id", "start", "end", "duration_min", "notes"}

// TradeRecord is one logged operation. PnL is derived once by NewTrade and
// stored; it is never recomputed from Amount or PayoutPct.
type TradeRecord struct {
	ID        string // only set by indexed backends
	Time      time.Time
	Date      string
	Asset     market.Asset
	Timeframe market.Timeframe
	Amount    decimal.Decimal
	Direction market.Direction
	Outcome   market.Outcome
	PayoutPct decimal.Decimal
	PnL       decimal.Decimal
	Emotion   market.Emotion
	Notes     string
}

// SessionRecord covers one contiguous start→end run of the session timer.
type SessionRecord struct {
	SessionID   string
	Start       time.Time
	End         time.Time
	DurationMin float64
	Notes       string
}

type Journal interface {
	AppendTrade(TradeRecord) error
	ReadTrades() ([]TradeRecord, error)
	RewriteTrades(keep []TradeRecord) error
	AppendSession(SessionRecord) error
	ReadSessions() ([]SessionRecord, error)
	Close() error
}
