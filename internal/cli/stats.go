package cli

import (
	"fmt"

	"github.com/rustyeddy/tradelog/internal/app"
	"github.com/rustyeddy/tradelog/metrics"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newStatsCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show daily and cumulative performance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rc.withApp(func(a *app.App) error {
				v, err := a.Snapshot()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStats(rc.theme(cmd.OutOrStdout()), v.Summary))
				return nil
			})
		},
	}
}

func newChartCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Show today's operations per hour with cumulative PnL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rc.withApp(func(a *app.App) error {
				v, err := a.Snapshot()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderChart(rc.theme(cmd.OutOrStdout()), v.Hourly))
				return nil
			})
		},
	}
}

func newGoalsCmd(rc *RootConfig) *cobra.Command {
	var (
		pnl     float64
		minutes int
	)

	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show progress toward today's PnL and time targets",
		Long: `Show progress toward today's goals. --pnl and --minutes override the
configured targets for this invocation only; targets are not saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rc.withApp(func(a *app.App) error {
				g := a.Goals()
				if cmd.Flags().Changed("pnl") {
					g.TargetPnL = decimal.NewFromFloat(pnl)
				}
				if cmd.Flags().Changed("minutes") {
					g.TargetMinutes = minutes
				}
				if err := a.SetGoals(g); err != nil {
					return err
				}
				v, err := a.Snapshot()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderGoals(rc.theme(cmd.OutOrStdout()), v.Goals, v.Progress))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&pnl, "pnl", metrics.DefaultTargetPnL, "PnL target for today")
	cmd.Flags().IntVar(&minutes, "minutes", metrics.DefaultTargetMinutes, "effective minutes target for today")
	return cmd
}
