package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/timetrack/internal/cli/formatter"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/repository"
	"github.com/alexanderramin/timetrack/internal/service"
)

func newLeaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Record vacation, sick and other leave",
	}

	cmd.AddCommand(
		newLeaveAddCmd(app),
		newLeaveListCmd(app),
		newLeaveRemoveCmd(app),
		newLeaveBalanceCmd(app),
	)

	return cmd
}

func newLeaveAddCmd(app *App) *cobra.Command {
	var from, to, typ, comment string
	var days float64
	var unapproved bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record leave over an inclusive date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				to = from
			}
			e, err := app.Leave.Create(cmd.Context(), app.Account, service.LeaveInput{
				StartDate: from,
				EndDate:   to,
				Type:      domain.LeaveType(typ),
				Comment:   comment,
				Approved:  !unapproved,
				DayCount:  changed(cmd.Flags(), "days", &days),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s leave %s (%s to %s, %s days)\n",
				e.Type, e.ID, e.StartDate, e.EndDate, formatter.Days(e.DayCount))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&to, "to", "", "last day (default: same as --from)")
	cmd.Flags().StringVar(&typ, "type", string(domain.LeaveVacation), "vacation, sick or other")
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "comment")
	cmd.Flags().Float64Var(&days, "days", 0, "day count override, e.g. 0.5 (default: working days in range)")
	cmd.Flags().BoolVar(&unapproved, "unapproved", false, "record as not yet approved")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func newLeaveListCmd(app *App) *cobra.Command {
	var f repository.LeaveFilter
	var typ string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List leave within a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.Type = domain.LeaveType(typ)
			entries, err := app.Leave.List(cmd.Context(), app.Account, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLeaveList(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.From, "from", "", "earliest start day")
	cmd.Flags().StringVar(&f.To, "to", "", "latest end day")
	cmd.Flags().StringVar(&typ, "type", "", "only this leave type")

	return cmd
}

func newLeaveRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a leave entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Leave.Delete(cmd.Context(), app.Account, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted leave %s\n", args[0])
			return nil
		},
	}
}

func newLeaveBalanceCmd(app *App) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show used and remaining vacation days for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = app.now().Year()
			}
			b, err := app.Leave.Balance(cmd.Context(), app.Account, year)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBalance(year, b))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "calendar year (default current)")

	return cmd
}
