package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rustyeddy/tradelog/internal/app"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/metrics"
	"github.com/rustyeddy/tradelog/tracker"
	"github.com/shopspring/decimal"
)

const shellHelp = `Commands:
  start                     start the session timer
  pause                     pause the timer and save today's time
  end [note]                stop the timer and record the session
  add <outcome> <amount> [asset=..] [tf=..] [dir=..] [payout=..] [emotion=..] [notes...]
  list                      today's trades
  delete <row#>...          delete today's trades by the row numbers of list
  stats | chart | goals     show a panel
  goal [pnl=<v>] [min=<v>]  change today's targets (not saved)
  status                    show the timer line
  report [path]             write the Markdown report
  help                      this text
  quit                      pause and leave`

// Shell executes the commands of an interactive session, one line at a
// time, against an App.
type Shell struct {
	app      *app.App
	out      io.Writer
	theme    theme
	defaults journal.TradeInput
}

func NewShell(a *app.App, out io.Writer, t theme, defaults journal.TradeInput) *Shell {
	return &Shell{app: a, out: out, theme: t, defaults: defaults}
}

// Exec runs one command line. stop reports that the user asked to leave.
// An error rejects only that command.
func (s *Shell) Exec(line string) (stop bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, s.app.PauseSession()

	case "help", "?":
		s.println(shellHelp)

	case "start":
		s.app.StartSession()
		s.println("▶ Session started")

	case "pause":
		if err := s.app.PauseSession(); err != nil {
			return false, err
		}
		s.printf("⏸ Paused, today %s\n", tracker.FormatHMS(s.app.Tracker().Elapsed()))

	case "end":
		rec, err := s.app.EndSession(strings.Join(args, " "))
		if err != nil {
			return false, err
		}
		if rec == nil {
			s.println("■ Timer stopped, no open run to record")
			break
		}
		s.printf("■ Session %s recorded: %.2f min\n", rec.SessionID, rec.DurationMin)

	case "add":
		in, err := parseAdd(s.defaults, args)
		if err != nil {
			return false, err
		}
		rec, err := s.app.AddTrade(in)
		if err != nil {
			return false, fmt.Errorf("trade rejected: %w", err)
		}
		s.printf("✓ %s %s %s %s  pnl %s\n", rec.Asset, rec.Timeframe, rec.Direction, rec.Outcome, s.theme.pnl(rec.PnL))

	case "list":
		trades, err := s.app.TodayTrades()
		if err != nil {
			return false, err
		}
		s.println(renderTrades(s.theme, trades))

	case "delete", "del":
		rows := make([]int, 0, len(args))
		for _, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return false, fmt.Errorf("bad row number %q", a)
			}
			rows = append(rows, n)
		}
		n, err := s.app.DeleteRows(s.app.Today(), rows)
		if err != nil {
			return false, err
		}
		s.printf("✓ Deleted %d trade(s)\n", n)

	case "stats", "chart", "goals":
		v, err := s.app.Snapshot()
		if err != nil {
			return false, err
		}
		switch cmd {
		case "stats":
			s.println(renderStats(s.theme, v.Summary))
		case "chart":
			s.println(renderChart(s.theme, v.Hourly))
		default:
			s.println(renderGoals(s.theme, v.Goals, v.Progress))
		}

	case "goal":
		g, err := parseGoal(s.app.Goals(), args)
		if err != nil {
			return false, err
		}
		if err := s.app.SetGoals(g); err != nil {
			return false, err
		}
		s.printf("✓ Goal: %s PnL, %d min\n", g.TargetPnL.StringFixed(2), g.TargetMinutes)

	case "status":
		s.println(renderStatus(s.theme, s.app.Tick()))

	case "report":
		path, err := s.app.ExportReport(strings.Join(args, " "), false)
		if err != nil {
			return false, err
		}
		s.printf("✓ Report written: %s\n", path)

	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return false, nil
}

func (s *Shell) println(a ...any)               { fmt.Fprintln(s.out, a...) }
func (s *Shell) printf(format string, a ...any) { fmt.Fprintf(s.out, format, a...) }

// parseAdd reads "<outcome> <amount>" followed by key=value overrides.
// Remaining words become the notes.
func parseAdd(defaults journal.TradeInput, args []string) (journal.TradeInput, error) {
	if len(args) < 2 {
		return journal.TradeInput{}, errors.New("usage: add <outcome> <amount> [key=value...] [notes...]")
	}
	in := defaults
	in.Outcome, in.Amount = args[0], args[1]

	var notes []string
	for _, tok := range args[2:] {
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			notes = append(notes, tok)
			continue
		}
		switch strings.ToLower(key) {
		case "asset":
			in.Asset = val
		case "tf", "timeframe":
			in.Timeframe = val
		case "dir", "direction":
			in.Direction = val
		case "payout":
			in.Payout = val
		case "emotion":
			in.Emotion = val
		case "notes":
			notes = append(notes, val)
		default:
			notes = append(notes, tok)
		}
	}
	in.Notes = strings.Join(notes, " ")
	return in, nil
}

// parseGoal applies "pnl=<v>" and "min=<v>" to the current goals.
func parseGoal(g metrics.Goals, args []string) (metrics.Goals, error) {
	if len(args) == 0 {
		return g, errors.New("usage: goal [pnl=<v>] [min=<v>]")
	}
	for _, tok := range args {
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			return g, fmt.Errorf("expected key=value, got %q", tok)
		}
		switch strings.ToLower(key) {
		case "pnl":
			d, err := decimal.NewFromString(strings.ReplaceAll(val, ",", "."))
			if err != nil {
				return g, fmt.Errorf("bad pnl target %q", val)
			}
			g.TargetPnL = d
		case "min", "minutes":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return g, fmt.Errorf("bad minutes target %q", val)
			}
			g.TargetMinutes = n
		default:
			return g, fmt.Errorf("unknown goal %q", key)
		}
	}
	return g, nil
}
