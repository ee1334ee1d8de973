package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/timetrack/internal/cli/formatter"
)

func newHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage public holidays",
	}

	cmd.AddCommand(
		newHolidayImportCmd(app),
		newHolidayListCmd(app),
		newHolidayRemoveCmd(app),
	)

	return cmd
}

func newHolidayImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.ics",
		Short: "Import holidays from an iCalendar file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening calendar: %w", err)
				}
				defer f.Close()
				r = f
			}
			n, err := app.Holidays.Import(cmd.Context(), app.Account, r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d holidays\n", n)
			return nil
		},
	}
}

func newHolidayListCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List holidays (default: current year)",
		RunE: func(cmd *cobra.Command, args []string) error {
			year := strconv.Itoa(app.now().Year())
			if from == "" {
				from = year + "-01-01"
			}
			if to == "" {
				to = year + "-12-31"
			}
			holidays, err := app.Holidays.List(cmd.Context(), app.Account, from, to)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHolidayList(holidays))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day")
	cmd.Flags().StringVar(&to, "to", "", "last day")

	return cmd
}

func newHolidayRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm DAY",
		Aliases: []string{"delete"},
		Short:   "Delete the holiday on a day",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Holidays.Delete(cmd.Context(), app.Account, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted holiday on %s\n", args[0])
			return nil
		},
	}
}
