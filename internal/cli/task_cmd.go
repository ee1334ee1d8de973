package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/timetrack/internal/cli/formatter"
	"github.com/alexanderramin/timetrack/internal/domain"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Record ad-hoc tasks and see them within sessions",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskStartCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
		newTaskTreeCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var day, start, end, project, note string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a task to a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dayOrToday(day, app)
			if err != nil {
				return err
			}
			t := &domain.Task{
				AccountID: app.Account,
				Day:       d,
				Title:     args[0],
				Project:   project,
				Tags:      tags,
				Note:      note,
			}
			now := app.now()
			if t.StartTime, err = parseOptionalInstant(start, now); err != nil {
				return err
			}
			if t.EndTime, err = parseOptionalInstant(end, now); err != nil {
				return err
			}
			if err := app.Tasks.Create(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s on %s\n", t.ID, t.Day)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&start, "start", "", "start time")
	cmd.Flags().StringVar(&end, "end", "", "end time")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project name")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag (repeatable)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the tasks of a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dayOrToday(day, app)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.List(cmd.Context(), app.Account, d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(d, tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "day (YYYY-MM-DD, default today)")

	return cmd
}

func newTaskStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start ID",
		Short: "Start a session for one of today's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, t, err := app.Tasks.StartTask(cmd.Context(), app.Account, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started session %s for %q at %s\n", s.ID, t.Title, formatter.ClockTime(&s.StartTime))
			return nil
		},
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Set a task's end time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Tasks.GetByID(ctx, app.Account, args[0])
			if err != nil {
				return err
			}
			end := app.now()
			if at != "" {
				if end, err = parseInstant(at, end); err != nil {
					return err
				}
			}
			t.EndTime = &end
			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Finished %q at %s\n", t.Title, formatter.ClockTime(t.EndTime))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "end time (default now)")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tasks.Delete(cmd.Context(), app.Account, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
}

func newTaskTreeCmd(app *App) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:     "tree",
		Aliases: []string{"day"},
		Short:   "Show a day's sessions with their tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dayOrToday(day, app)
			if err != nil {
				return err
			}
			tree, err := app.Tasks.DayTree(cmd.Context(), app.Account, d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDayTree(tree.Day, tree.Reconciliation, app.durations(), app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "day (YYYY-MM-DD, default today)")

	return cmd
}
