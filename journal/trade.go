package journal

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("amount must be a non-negative number")
	ErrInvalidPayout = errors.New("payout must be a non-negative number")
)

var hundred = decimal.NewFromInt(100)

// TradeInput carries raw form values before validation.
type TradeInput struct {
	Asset     string
	Timeframe string
	Amount    string
	Direction string
	Outcome   string
	Payout    string
	Emotion   string
	Notes     string
}

// NewTrade validates the input and builds a record stamped at now. Any
// invalid field rejects the whole trade.
func NewTrade(in TradeInput, now time.Time) (TradeRecord, error) {
	asset, err := market.ParseAsset(in.Asset)
	if err != nil {
		return TradeRecord{}, err
	}
	tf, err := market.ParseTimeframe(in.Timeframe)
	if err != nil {
		return TradeRecord{}, err
	}
	dir, err := market.ParseDirection(in.Direction)
	if err != nil {
		return TradeRecord{}, err
	}
	outcome, err := market.ParseOutcome(in.Outcome)
	if err != nil {
		return TradeRecord{}, err
	}
	emotion := market.Emotions[0]
	if strings.TrimSpace(in.Emotion) != "" {
		if emotion, err = market.ParseEmotion(in.Emotion); err != nil {
			return TradeRecord{}, err
		}
	}

	amount, err := parseNonNegative(in.Amount)
	if err != nil {
		return TradeRecord{}, fmt.Errorf("%w: %q", ErrInvalidAmount, in.Amount)
	}
	payout, err := parseNonNegative(in.Payout)
	if err != nil {
		return TradeRecord{}, fmt.Errorf("%w: %q", ErrInvalidPayout, in.Payout)
	}

	ts := now.Truncate(time.Second)
	return TradeRecord{
		Time:      ts,
		Date:      market.DayOf(ts),
		Asset:     asset,
		Timeframe: tf,
		Amount:    amount.Round(2),
		Direction: dir,
		Outcome:   outcome,
		PayoutPct: payout.Round(2),
		PnL:       DerivePnL(amount, payout, outcome),
		Emotion:   emotion,
		Notes:     strings.TrimSpace(in.Notes),
	}, nil
}

// DerivePnL returns the realized result of a trade:
// win pays amount*payout/100, loss forfeits the stake, tie returns it.
func DerivePnL(amount, payoutPct decimal.Decimal, outcome market.Outcome) decimal.Decimal {
	switch outcome {
	case market.Win:
		return amount.Mul(payoutPct).Div(hundred).Round(2)
	case market.Loss:
		return amount.Round(2).Neg()
	default:
		return decimal.Zero
	}
}

func parseNonNegative(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("negative")
	}
	return d, nil
}

// Row returns the displayed fields in TradeHeader order.
func (t TradeRecord) Row() []string {
	return []string{
		t.Time.Format(market.TimestampLayout),
		t.Date,
		string(t.Asset),
		string(t.Timeframe),
		t.Amount.StringFixed(2),
		string(t.Direction),
		string(t.Outcome),
		t.PayoutPct.StringFixed(2),
		t.PnL.StringFixed(2),
		string(t.Emotion),
		t.Notes,
	}
}

// Equal compares every displayed field. Records from an indexed backend
// must also share the same ID.
func (t TradeRecord) Equal(o TradeRecord) bool {
	if t.ID != "" && o.ID != "" && t.ID != o.ID {
		return false
	}
	return slices.Equal(t.Row(), o.Row())
}

// NewSession builds the record for a run from start to end. The ID is the
// start date plus the start epoch seconds.
func NewSession(start, end time.Time, notes string) SessionRecord {
	mins := end.Sub(start).Minutes()
	if mins < 0 {
		mins = 0
	}
	return SessionRecord{
		SessionID:   fmt.Sprintf("%s-%d", start.Format("20060102"), start.Unix()),
		Start:       start.Truncate(time.Second),
		End:         end.Truncate(time.Second),
		DurationMin: math.Round(mins*100) / 100,
		Notes:       notes,
	}
}
