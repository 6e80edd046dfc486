package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rustyeddy/tradelog/internal/app"
	"github.com/rustyeddy/tradelog/schedule"
	"github.com/spf13/cobra"
)

func newSessionCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run and review timed trading sessions",
		Long: `Track effective session time.

Subcommands:
  run    - Interactive session: timer, trade entry, panels
  focus  - Run the timer for a fixed number of minutes
  list   - List recorded sessions

Examples:
  tradelog session run
  tradelog session focus --minutes 25 --note "london open"`,
	}

	cmd.AddCommand(
		newSessionRunCmd(rc),
		newSessionFocusCmd(rc),
		newSessionListCmd(rc),
	)
	return cmd
}

func newSessionRunCmd(rc *RootConfig) *cobra.Command {
	var tick time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive session (type help for commands)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rc.withApp(func(a *app.App) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return runSession(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout(), rc, tick)
			})
		},
	}

	cmd.Flags().DurationVar(&tick, "tick", time.Second, "status line refresh interval while the timer runs (0 disables)")
	return cmd
}

// runSession drives the shell from in. Input lines and status ticks are
// handled on one goroutine so they never interleave.
func runSession(ctx context.Context, a *app.App, in io.Reader, out io.Writer, rc *RootConfig, tick time.Duration) error {
	t := rc.theme(out)
	sh := NewShell(a, out, t, defaultInput(rc.Config.Defaults))

	v, err := a.Snapshot()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderView(t, v))
	fmt.Fprintln(out, t.muted.Render("Type help for commands."))

	// The reader goroutine can stay blocked in Scan after ctx ends. It is
	// released when in closes, at the latest when the process exits.
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	loop := schedule.Loop{
		Interval: tick,
		OnTick: func(time.Time) {
			if tick > 0 && a.Tracker().Running() {
				fmt.Fprintf(out, "\r%s", renderStatus(t, a.Tick()))
			}
		},
		OnInput: func(line string) bool {
			stop, err := sh.Exec(line)
			if err != nil {
				fmt.Fprintln(out, t.bad.Render("error: "+err.Error()))
			}
			return stop
		},
	}

	err = loop.Run(ctx, lines)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out)
		return nil
	}
	return err
}

func newSessionFocusCmd(rc *RootConfig) *cobra.Command {
	var (
		minutes int
		note    string
	)

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run the session timer for a fixed time, then record the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if minutes <= 0 {
				return fmt.Errorf("--minutes must be positive")
			}
			return rc.withApp(func(a *app.App) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				ctx, cancel := context.WithTimeout(ctx, time.Duration(minutes)*time.Minute)
				defer cancel()
				return runFocus(ctx, a, cmd.OutOrStdout(), rc, time.Second, note)
			})
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 25, "length of the run")
	cmd.Flags().StringVar(&note, "note", "", "note stored with the session")
	return cmd
}

// runFocus keeps the timer running until ctx ends, however it ends, and
// records the run.
func runFocus(ctx context.Context, a *app.App, out io.Writer, rc *RootConfig, tick time.Duration, note string) error {
	t := rc.theme(out)
	if _, err := a.Trades(); err != nil {
		return err
	}
	a.StartSession()

	_ = schedule.Every(ctx, tick, func(time.Time) {
		fmt.Fprintf(out, "\r%s", renderStatus(t, a.Tick()))
	})

	rec, err := a.EndSession(note)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	if rec != nil {
		fmt.Fprintf(out, "■ Session %s recorded: %.2f min\n", rec.SessionID, rec.DurationMin)
	}
	return nil
}

func newSessionListCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rc.withApp(func(a *app.App) error {
				sessions, err := a.Sessions()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderSessions(rc.theme(cmd.OutOrStdout()), sessions))
				return nil
			})
		},
	}
}
