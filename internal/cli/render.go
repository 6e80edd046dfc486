package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rustyeddy/tradelog/internal/app"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/metrics"
	"github.com/rustyeddy/tradelog/tracker"
	"github.com/shopspring/decimal"
)

const (
	barWidth   = 24
	chartWidth = 30
)

// theme carries the styles bound to one output. Writers that are not a
// terminal get plain text.
type theme struct {
	title lipgloss.Style
	label lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
	muted lipgloss.Style
	panel lipgloss.Style
}

func newTheme(w io.Writer, noColor bool) theme {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return theme{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		label: r.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
		good:  r.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true),
		bad:   r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		panel: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1),
	}
}

func (t theme) pnl(d decimal.Decimal) string {
	s := signed(d)
	switch {
	case d.IsPositive():
		return t.good.Render(s)
	case d.IsNegative():
		return t.bad.Render(s)
	default:
		return s
	}
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}

// renderTrades lists trades with their 1-based row numbers, which is what
// `trade delete` takes.
func renderTrades(t theme, trades []journal.TradeRecord) string {
	if len(trades) == 0 {
		return t.muted.Render("No trades recorded.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", t.label.Render(fmt.Sprintf("%4s  %-19s  %-7s  %-3s  %8s  %-3s  %-7s  %7s  %8s  %-10s  %s",
		"#", "datetime", "asset", "tf", "amount", "dir", "outcome", "payout%", "pnl", "emotion", "notes")))
	for i, tr := range trades {
		fmt.Fprintf(&b, "%4d  %-19s  %-7s  %-3s  %8s  %-3s  %-7s  %7s  %8s  %-10s  %s\n",
			i+1,
			tr.Time.Format(market.TimestampLayout),
			tr.Asset,
			tr.Timeframe,
			tr.Amount.StringFixed(2),
			tr.Direction,
			tr.Outcome,
			tr.PayoutPct.StringFixed(2),
			t.pnl(tr.PnL),
			tr.Emotion,
			withID(tr),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func withID(tr journal.TradeRecord) string {
	if tr.ID == "" {
		return tr.Notes
	}
	return strings.TrimSpace(tr.Notes + "  [" + tr.ID + "]")
}

func statsLine(t theme, name string, s metrics.Stats) string {
	return fmt.Sprintf("%s  Ops %d  |  W %d  L %d  T %d  |  Win rate %.1f%%  |  PnL %s",
		t.label.Render(name), s.Ops, s.Wins, s.Losses, s.Ties, s.WinRate, t.pnl(s.NetPnL))
}

func renderStats(t theme, s metrics.Summary) string {
	body := strings.Join([]string{
		t.title.Render("Performance"),
		statsLine(t, "Today     ", s.Daily),
		statsLine(t, "Cumulative", s.Cumulative),
	}, "\n")
	return t.panel.Render(body)
}

func bar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func renderGoals(t theme, g metrics.Goals, p metrics.Progress) string {
	body := strings.Join([]string{
		t.title.Render("Daily goal"),
		fmt.Sprintf("%s target %s   %s target %d min",
			t.label.Render("PnL"), g.TargetPnL.StringFixed(2),
			t.label.Render("Time"), g.TargetMinutes),
		fmt.Sprintf("PnL   %s %3.0f%%  (remaining %s)", bar(p.PnLPct, barWidth), p.PnLPct, p.PnLRemaining.StringFixed(2)),
		fmt.Sprintf("Time  %s %3.0f%%  (remaining %.0f min)", bar(p.TimePct, barWidth), p.TimePct, p.TimeRemaining),
	}, "\n")
	return t.panel.Render(body)
}

// renderChart draws one bar per hour with trades, scaled to the busiest
// hour, followed by the running PnL.
func renderChart(t theme, buckets []metrics.HourBucket) string {
	if len(buckets) == 0 {
		return t.muted.Render("No data for today.")
	}
	maxOps := 0
	for _, b := range buckets {
		maxOps = max(maxOps, b.Ops)
	}

	lines := []string{t.title.Render("Ops per hour / cumulative PnL")}
	for _, b := range buckets {
		n := max(1, b.Ops*chartWidth/maxOps)
		lines = append(lines, fmt.Sprintf("%s:00 %-*s %3d  %s",
			b.Hour, chartWidth, strings.Repeat("▇", n), b.Ops, t.pnl(b.CumPnL)))
	}
	return t.panel.Render(strings.Join(lines, "\n"))
}

func renderStatus(t theme, s app.Status) string {
	state := t.muted.Render(s.State.String())
	if s.State == tracker.Running {
		state = t.good.Render(s.State.String())
	}
	return fmt.Sprintf("⏱ %s %s  |  today %s (%.0f%%)  |  time %.0f%%",
		tracker.FormatHMS(s.Elapsed), state, t.pnl(s.DailyPnL), s.Progress.PnLPct, s.Progress.TimePct)
}

func renderView(t theme, v app.View) string {
	return strings.Join([]string{
		renderStatus(t, app.Status{
			Elapsed:  v.Elapsed,
			State:    v.State,
			DailyPnL: v.Summary.Daily.NetPnL,
			Progress: v.Progress,
		}),
		renderStats(t, v.Summary),
		renderGoals(t, v.Goals, v.Progress),
		renderChart(t, v.Hourly),
	}, "\n")
}

func renderSessions(t theme, sessions []journal.SessionRecord) string {
	if len(sessions) == 0 {
		return t.muted.Render("No sessions recorded.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", t.label.Render(fmt.Sprintf("%-22s  %-19s  %-19s  %8s  %s",
		"session_id", "start", "end", "minutes", "notes")))
	total := 0.0
	for _, s := range sessions {
		fmt.Fprintf(&b, "%-22s  %-19s  %-19s  %8.2f  %s\n",
			s.SessionID,
			s.Start.Format(market.TimestampLayout),
			s.End.Format(market.TimestampLayout),
			s.DurationMin,
			s.Notes,
		)
		total += s.DurationMin
	}
	fmt.Fprintf(&b, "%s %.2f min in %d sessions", t.label.Render("Total"), total, len(sessions))
	return b.String()
}
