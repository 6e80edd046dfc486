package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rustyeddy/tradelog/internal/app"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/spf13/cobra"
)

func newTradeCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Add, list and delete trades",
		Long: `Record and manage individual trades.

Subcommands:
  add     - Record a trade (flags or --interactive form)
  list    - List trades with their row numbers
  delete  - Delete trades by row number
  show    - Show one trade by ID (sqlite backend)

Examples:
  tradelog trade add --asset GBP/USD --outcome loss --amount 5
  tradelog trade list --today
  tradelog trade delete --today 3 4`,
	}

	cmd.AddCommand(
		newTradeAddCmd(rc),
		newTradeListCmd(rc),
		newTradeDeleteCmd(rc),
		newTradeShowCmd(rc),
	)
	return cmd
}

func newTradeAddCmd(rc *RootConfig) *cobra.Command {
	var (
		in          journal.TradeInput
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a trade stamped with the current time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := mergeInput(defaultInput(rc.Config.Defaults), in, cmd)
			if interactive {
				var err error
				if input, err = PromptTrade(input); err != nil {
					return err
				}
			}

			return rc.withApp(func(a *app.App) error {
				rec, err := a.AddTrade(input)
				if err != nil {
					return fmt.Errorf("trade rejected: %w", err)
				}
				t := rc.theme(cmd.OutOrStdout())
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Trade added: %s %s %s %s  pnl %s\n",
					rec.Asset, rec.Timeframe, rec.Direction, rec.Outcome, t.pnl(rec.PnL))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Asset, "asset", "", "asset, e.g. EUR/USD")
	f.StringVar(&in.Timeframe, "timeframe", "", "timeframe: 1m|5m")
	f.StringVar(&in.Amount, "amount", "", "stake")
	f.StringVar(&in.Direction, "direction", "", "direction: ↑|↓ (or up|down|call|put)")
	f.StringVar(&in.Outcome, "outcome", "", "outcome: win|loss|tie")
	f.StringVar(&in.Payout, "payout", "", "payout percent")
	f.StringVar(&in.Emotion, "emotion", "", "emotional state")
	f.StringVar(&in.Notes, "notes", "", "free text")
	f.BoolVarP(&interactive, "interactive", "i", false, "fill the trade in an interactive form")
	return cmd
}

// mergeInput overlays explicitly set flags on the defaults.
func mergeInput(base, flags journal.TradeInput, cmd *cobra.Command) journal.TradeInput {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("asset", &base.Asset, flags.Asset)
	set("timeframe", &base.Timeframe, flags.Timeframe)
	set("amount", &base.Amount, flags.Amount)
	set("direction", &base.Direction, flags.Direction)
	set("outcome", &base.Outcome, flags.Outcome)
	set("payout", &base.Payout, flags.Payout)
	set("emotion", &base.Emotion, flags.Emotion)
	set("notes", &base.Notes, flags.Notes)
	return base
}

// dayFilter is the --today/--day pair shared by list and delete so both
// number rows the same way.
type dayFilter struct {
	today bool
	day   string
}

func (f *dayFilter) register(cmd *cobra.Command, verb string) {
	cmd.Flags().BoolVar(&f.today, "today", false, verb+" only today's trades")
	cmd.Flags().StringVar(&f.day, "day", "", verb+" only trades on YYYY-MM-DD")
	cmd.MarkFlagsMutuallyExclusive("today", "day")
}

func (f *dayFilter) validate() error {
	if f.day == "" {
		return nil
	}
	if _, err := market.ParseTimestamp(f.day + " 00:00:00"); err != nil {
		return fmt.Errorf("bad --day %q, want YYYY-MM-DD", f.day)
	}
	return nil
}

// resolve returns the day to filter on, empty for the whole log.
func (f *dayFilter) resolve(a *app.App) string {
	if f.today {
		return a.Today()
	}
	return f.day
}

func newTradeListCmd(rc *RootConfig) *cobra.Command {
	var filter dayFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades in log order with row numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := filter.validate(); err != nil {
				return err
			}
			return rc.withApp(func(a *app.App) error {
				trades, err := a.ListTrades(filter.resolve(a))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTrades(rc.theme(cmd.OutOrStdout()), trades))
				return nil
			})
		},
	}

	filter.register(cmd, "list")
	return cmd
}

func newTradeDeleteCmd(rc *RootConfig) *cobra.Command {
	var filter dayFilter

	cmd := &cobra.Command{
		Use:   "delete <row#>...",
		Short: "Delete trades by the row numbers shown by `trade list`",
		Long: `Delete trades by row number. Pass the same --today or --day flag
that was given to trade list so the numbers refer to the same rows.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := filter.validate(); err != nil {
				return err
			}
			rows := make([]int, 0, len(args))
			for _, s := range args {
				n, err := strconv.Atoi(s)
				if err != nil {
					return fmt.Errorf("bad row number %q", s)
				}
				rows = append(rows, n)
			}
			return rc.withApp(func(a *app.App) error {
				n, err := a.DeleteRows(filter.resolve(a), rows)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %d trade(s)\n", n)
				return nil
			})
		},
	}

	filter.register(cmd, "number")
	return cmd
}

func newTradeShowCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show one trade by ID as Org-mode (sqlite backend)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rc.withApp(func(a *app.App) error {
				db, ok := a.Journal().(*journal.SQLiteJournal)
				if !ok {
					return errors.New("trade show needs the sqlite backend (--backend sqlite)")
				}
				rec, err := db.GetTrade(args[0])
				if err != nil {
					return fmt.Errorf("get trade: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
				return nil
			})
		},
	}
}
