// Package report renders the trade journal as a Markdown document, with
// HTML and styled-terminal variants.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/metrics"
	"github.com/shopspring/decimal"
)

// Data is everything the report shows. It is derived from the trade
// sequence alone and never read back.
type Data struct {
	Generated time.Time
	AsOf      string
	Currency  string
	Summary   metrics.Summary
	Hourly    []metrics.HourBucket
	Trades    []journal.TradeRecord // sorted by timestamp
}

// Build computes the report figures for trades as of the given date.
func Build(trades []journal.TradeRecord, asOf, currency string, generated time.Time) Data {
	sorted := slices.Clone(trades)
	slices.SortStableFunc(sorted, func(a, b journal.TradeRecord) int {
		return a.Time.Compare(b.Time)
	})
	if currency == "" {
		currency = "USD"
	}
	return Data{
		Generated: generated,
		AsOf:      asOf,
		Currency:  currency,
		Summary:   metrics.ComputeStats(sorted, asOf),
		Hourly:    metrics.BucketByHour(metrics.FilterDay(sorted, asOf)),
		Trades:    sorted,
	}
}

// WriteMarkdown renders d as Markdown.
func WriteMarkdown(w io.Writer, d Data) error {
	t, err := template.New("report").Funcs(funcs(d.Currency)).Parse(markdownTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}
	if err := t.Execute(w, d); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// Markdown returns the rendered Markdown document.
func Markdown(d Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the report to path, as HTML when asHTML is set.
func WriteFile(path string, d Data, asHTML bool) error {
	md, err := Markdown(d)
	if err != nil {
		return err
	}
	out := md
	if asHTML {
		var buf bytes.Buffer
		if err := HTML(md, &buf); err != nil {
			return err
		}
		out = buf.Bytes()
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func funcs(currency string) template.FuncMap {
	return template.FuncMap{
		"signed": func(d decimal.Decimal) string { return NewMoney(d, currency).SignedString() },
		"money":  func(d decimal.Decimal) string { return NewMoney(d, currency).String() },
		"pct":    func(x float64) string { return fmt.Sprintf("%.1f%%", x) },
		"fixed":  func(d decimal.Decimal) string { return d.StringFixed(2) },
		"ts":     func(t time.Time) string { return t.Format(market.TimestampLayout) },
		"cell":   cell,
	}
}

// cell keeps free text from breaking a Markdown table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

const markdownTemplate = `# Trading Report

_Generated {{.Generated.Format "2006-01-02 15:04"}}, daily figures for {{.AsOf}}_

**Cumulative win rate:** {{pct .Summary.Cumulative.WinRate}}  |  **Cumulative PnL:** {{signed .Summary.Cumulative.NetPnL}}

**Daily win rate:** {{pct .Summary.Daily.WinRate}}  |  **Daily PnL:** {{signed .Summary.Daily.NetPnL}}

| Scope | Ops | Wins | Losses | Ties |
|---|---:|---:|---:|---:|
| Today | {{.Summary.Daily.Ops}} | {{.Summary.Daily.Wins}} | {{.Summary.Daily.Losses}} | {{.Summary.Daily.Ties}} |
| All | {{.Summary.Cumulative.Ops}} | {{.Summary.Cumulative.Wins}} | {{.Summary.Cumulative.Losses}} | {{.Summary.Cumulative.Ties}} |
{{- if .Hourly}}

## Today by hour

| Hour | Ops | PnL | Cumulative |
|---|---:|---:|---:|
{{- range .Hourly}}
| {{.Hour}}:00 | {{.Ops}} | {{signed .PnL}} | {{signed .CumPnL}} |
{{- end}}
{{- end}}

## Trades
{{if .Trades}}
| datetime | asset | tf | amount | dir | outcome | payout% | pnl | emotion | notes |
|---|---|---:|---:|:--:|:--:|---:|---:|:--:|---|
{{- range .Trades}}
| {{ts .Time}} | {{.Asset}} | {{.Timeframe}} | {{fixed .Amount}} | {{.Direction}} | {{.Outcome}} | {{fixed .PayoutPct}} | {{fixed .PnL}} | {{.Emotion}} | {{cell .Notes}} |
{{- end}}
{{else}}
_No trades recorded._
{{end}}`
