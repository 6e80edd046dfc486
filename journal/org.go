package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/pkg/id"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode block. Structured
// facts go in the PROPERTIES drawer, the free-text note under Review.
func FormatTradeOrg(t TradeRecord) string {
	heading := fmt.Sprintf("** Trade: %s %s %s (%s)",
		t.Asset, t.Direction, t.Outcome, t.Time.Format(market.TimestampLayout))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	if t.ID != "" {
		b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
		// SQLite IDs are ULIDs minted when the row was stored.
		if created, err := id.Time(t.ID); err == nil {
			b.WriteString(fmt.Sprintf(":CREATED: %s\n", created.Local().Format(market.TimestampLayout)))
		}
	}
	b.WriteString(fmt.Sprintf(":DATETIME: %s\n", t.Time.Format(market.TimestampLayout)))
	b.WriteString(fmt.Sprintf(":ASSET: %s\n", t.Asset))
	b.WriteString(fmt.Sprintf(":TIMEFRAME: %s\n", t.Timeframe))
	b.WriteString(fmt.Sprintf(":AMOUNT: %s\n", t.Amount.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":OUTCOME: %s\n", t.Outcome))
	b.WriteString(fmt.Sprintf(":PAYOUT_PCT: %s\n", t.PayoutPct.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":PNL: %s\n", t.PnL.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":EMOTION: %s\n", t.Emotion))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Review\n")
	if t.Notes != "" {
		b.WriteString(fmt.Sprintf("- %s\n", t.Notes))
	} else {
		b.WriteString("- \n")
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}
