package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/tradelog/internal/app"
	"github.com/rustyeddy/tradelog/internal/logger"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Commands install the global logger, so these tests do not run in
// parallel.

type clock struct{ t time.Time }

func newClock() *clock {
	return &clock{t: time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)}
}

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	t     *testing.T
	dir   string
	clock *clock
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, dir: t.TempDir(), clock: newClock()}
}

func (h *harness) runIn(stdin string, args ...string) (string, error) {
	h.t.Helper()

	cmd := NewRootCmd(app.WithClock(h.clock.Now), app.WithLogger(logger.Discard()))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--dir", h.dir, "--no-color", "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	return h.runIn("", args...)
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func TestTradeAddListDelete(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("trade", "add", "--outcome", "win", "--amount", "10", "--notes", "breakout")
	assert.Contains(t, out, "Trade added: EUR/USD 1m ↓ win")
	assert.Contains(t, out, "+8.20")

	h.clock.Advance(time.Minute)
	h.mustRun("trade", "add", "--asset", "usdjpy", "--outcome", "loss", "--amount", "4", "--direction", "up")

	out = h.mustRun("trade", "list")
	assert.Contains(t, out, "breakout")
	assert.Contains(t, out, "USD/JPY")
	assert.Contains(t, out, "-4.00")

	out = h.mustRun("trade", "list", "--day", "2020-01-01")
	assert.Contains(t, out, "No trades recorded.")

	out = h.mustRun("trade", "delete", "1")
	assert.Contains(t, out, "Deleted 1 trade(s)")

	out = h.mustRun("trade", "list", "--today")
	assert.NotContains(t, out, "breakout")
	assert.Contains(t, out, "USD/JPY")
}

func TestTradeDeleteFollowsListFilter(t *testing.T) {
	for _, backend := range []string{"csv", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			h := newHarness(t)

			h.mustRun("--backend", backend, "trade", "add", "--outcome", "win", "--amount", "10", "--notes", "first-day")
			h.clock.Advance(24 * time.Hour)
			h.mustRun("--backend", backend, "trade", "add", "--outcome", "loss", "--amount", "5", "--notes", "second-day")

			out := h.mustRun("--backend", backend, "trade", "list", "--today")
			assert.Contains(t, out, "second-day")
			assert.NotContains(t, out, "first-day")

			h.mustRun("--backend", backend, "trade", "delete", "--today", "1")

			out = h.mustRun("--backend", backend, "trade", "list")
			assert.Contains(t, out, "first-day")
			assert.NotContains(t, out, "second-day")

			h.mustRun("--backend", backend, "trade", "delete", "--day", "2026-03-14", "1")
			out = h.mustRun("--backend", backend, "trade", "list")
			assert.Contains(t, out, "No trades recorded.")

			_, err := h.run("--backend", backend, "trade", "delete", "--today", "--day", "2026-03-14", "1")
			require.Error(t, err)
		})
	}
}

func TestTradeAddRejectsBadInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("trade", "add", "--amount", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")

	_, err = h.run("trade", "add", "--asset", "BTC/USD")
	require.Error(t, err)

	_, err = h.run("trade", "delete", "x")
	require.Error(t, err)

	out := h.mustRun("trade", "list")
	assert.Contains(t, out, "No trades recorded.")
}

func TestStatsChartGoals(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("chart")
	assert.Contains(t, out, "No data for today.")

	h.mustRun("trade", "add", "--outcome", "win", "--amount", "10", "--payout", "50")
	h.mustRun("trade", "add", "--outcome", "tie", "--amount", "10")

	out = h.mustRun("stats")
	assert.Contains(t, out, "Ops 2")
	assert.Contains(t, out, "Win rate 100.0%")
	assert.Contains(t, out, "+5.00")

	out = h.mustRun("chart")
	assert.Contains(t, out, "09:00")

	out = h.mustRun("goals", "--pnl", "10", "--minutes", "30")
	assert.Contains(t, out, "target 10.00")
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "remaining 5.00")
}

func TestSessionRun(t *testing.T) {
	h := newHarness(t)

	input := strings.Join([]string{
		"help",
		"start",
		"add loss 5 asset=GBP/USD emotion=ansioso chased entry",
		"bogus",
		"goal pnl=40 min=90",
		"list",
		"end wrap up",
		"quit",
	}, "\n") + "\n"

	out, err := h.runIn(input, "session", "run", "--tick", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "Session started")
	assert.Contains(t, out, "GBP/USD 1m ↓ loss")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "Goal: 40.00 PnL, 90 min")
	assert.Contains(t, out, "chased entry")
	assert.Contains(t, out, "recorded: 0.00 min")

	out = h.mustRun("session", "list")
	assert.Contains(t, out, "wrap up")
	assert.Contains(t, out, "in 1 sessions")
}

func TestSessionRunEndsOnEOF(t *testing.T) {
	h := newHarness(t)

	out, err := h.runIn("start\n", "session", "run", "--tick", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Session started")
}

func TestReportAndOrg(t *testing.T) {
	h := newHarness(t)
	h.mustRun("trade", "add", "--outcome", "win", "--amount", "10", "--notes", "clean setup")

	out := h.mustRun("report")
	path := filepath.Join(h.dir, "report.md")
	assert.Contains(t, out, path)
	md, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(md), "clean setup")

	htmlPath := filepath.Join(h.dir, "r.html")
	h.mustRun("report", "--html", "--out", htmlPath)
	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<table>")

	out = h.mustRun("report", "--show")
	assert.Contains(t, out, "Trading Report")

	out = h.mustRun("org", "--today")
	assert.Contains(t, out, "** Trade: EUR/USD")
}

func TestImport(t *testing.T) {
	h := newHarness(t)

	src := filepath.Join(t.TempDir(), "other.csv")
	content := strings.Join(journal.TradeHeader, ",") + "\n" +
		"2026-03-13 15:00:00,2026-03-13,EUR/GBP,5m,12.00,↑,win,85.00,10.20,Confiado,from elsewhere\n"
	require.NoError(t, os.WriteFile(src, []byte(content), 0644))

	out := h.mustRun("import", src)
	assert.Contains(t, out, "1 readable trade(s)")

	out = h.mustRun("trade", "list")
	assert.Contains(t, out, "from elsewhere")

	_, err := h.run("import", filepath.Join(h.dir, "missing.csv"))
	require.Error(t, err)
}

func TestSQLiteBackend(t *testing.T) {
	h := newHarness(t)

	h.mustRun("--backend", "sqlite", "trade", "add", "--outcome", "win", "--amount", "20")

	j, err := journal.NewSQLite(filepath.Join(h.dir, "tradelog.sqlite"))
	require.NoError(t, err)
	trades, err := j.ReadTrades()
	require.NoError(t, err)
	require.NoError(t, j.Close())
	require.Len(t, trades, 1)
	id := trades[0].ID
	require.NotEmpty(t, id)

	out := h.mustRun("--backend", "sqlite", "trade", "list", "--day", "2026-03-14")
	assert.Contains(t, out, id)

	out = h.mustRun("--backend", "sqlite", "trade", "show", id)
	assert.Contains(t, out, "** Trade: EUR/USD")

	_, err = h.run("trade", "show", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite backend")
}

func TestConfigInitValidate(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.dir, "tradelog.yaml")

	out := h.mustRun("config", "init", "--output", path)
	assert.Contains(t, out, "Created default configuration")

	out = h.mustRun("config", "validate", "--file", path)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Goals: 20.00 PnL, 60 min")

	bad := filepath.Join(h.dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("journal:\n  type: mongo\n"), 0644))
	_, err := h.run("config", "validate", "--file", bad)
	require.Error(t, err)

	_, err = h.run("--config", bad, "stats")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("version")
	assert.Equal(t, "tradelog version dev\n", out)
}
