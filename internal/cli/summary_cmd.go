package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/timetrack/internal/accounting"
	"github.com/alexanderramin/timetrack/internal/cli/formatter"
	"github.com/alexanderramin/timetrack/internal/domain"
)

func newSummaryCmd(app *App) *cobra.Command {
	var mode, anchor, from, to string
	var unit bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Worked, expected and overtime hours per day, week, month or year",
		Long: `Summarize a period. By default the period is the one of --mode that
contains --anchor (today unless given): the day, its ISO week, month or year.
--from and --to together select an explicit range instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := domain.SummaryMode(mode)
			if from == "" || to == "" {
				if from != "" || to != "" {
					return fmt.Errorf("--from and --to must be given together: %w", domain.ErrValidation)
				}
				a, err := dayOrToday(anchor, app)
				if err != nil {
					return err
				}
				if from, to, err = accounting.ResolveRange(m, a); err != nil {
					return err
				}
			}
			agg, err := app.Summary.Summary(cmd.Context(), app.Account, m, from, to)
			if err != nil {
				return err
			}
			d := app.durations()
			d.IncludeUnit = unit
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(agg, d))
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(domain.ModeWeek), "day, week, month or year")
	cmd.Flags().StringVar(&anchor, "anchor", "", "a day inside the period (default today)")
	cmd.Flags().StringVar(&from, "from", "", "explicit range start")
	cmd.Flags().StringVar(&to, "to", "", "explicit range end")
	cmd.Flags().BoolVar(&unit, "unit", false, "append the hour unit to durations")

	return cmd
}
