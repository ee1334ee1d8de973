package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/timetrack/internal/cli/formatter"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/service"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"s"},
		Short:   "Start, pause and stop work sessions",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionPauseCmd(app),
		newSessionStopCmd(app),
		newSessionStatusCmd(app),
		newSessionNoteCmd(app),
		newSessionListCmd(app),
		newSessionShowCmd(app),
		newSessionAddCmd(app),
		newSessionEditCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionStartCmd(app *App) *cobra.Command {
	var at, comment, project string
	var tags []string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a work session",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseOptionalInstant(at, app.now())
			if err != nil {
				return err
			}
			s, err := app.Sessions.Start(cmd.Context(), app.Account, service.StartInput{
				StartTime: start,
				Comment:   comment,
				Project:   project,
				Tags:      tags,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started session %s at %s\n", s.ID, formatter.ClockTime(&s.StartTime))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "start time (HH:MM, YYYY-MM-DD HH:MM or RFC3339; default now)")
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "what you are working on")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project name")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag (repeatable)")

	return cmd
}

func newSessionPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "pause",
		Aliases: []string{"resume", "toggle"},
		Short:   "Pause the active session, or resume a paused one",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, event, err := app.Sessions.PauseOrResume(cmd.Context(), app.Account)
			if err != nil {
				return err
			}
			verb := "Paused"
			if event == domain.EventResume {
				verb = "Resumed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s session %s\n", verb, s.ID)
			return nil
		},
	}
}

func newSessionStopCmd(app *App) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the open session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Sessions.Stop(cmd.Context(), app.Account, changed(cmd.Flags(), "comment", &comment))
			if err != nil {
				return err
			}
			d := app.durations()
			fmt.Fprintf(cmd.OutOrStdout(), "Stopped session %s: worked %s, paused %s\n",
				s.ID, d.Render(s.WorkedSeconds(app.now())), d.Render(s.PausedSeconds))
			return nil
		},
	}

	cmd.Flags().StringVarP(&comment, "comment", "c", "", "replace the session comment")

	return cmd
}

func newSessionStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"active"},
		Short:   "Show the open session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Sessions.Active(cmd.Context(), app.Account)
			if err != nil {
				return err
			}
			if s == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No open session."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSession(s, app.durations(), app.now()))
			return nil
		},
	}
}

func newSessionNoteCmd(app *App) *cobra.Command {
	var sessionID, at string

	cmd := &cobra.Command{
		Use:   "note TEXT",
		Short: "Append a note to a session (default: the open one)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := sessionID
			if id == "" {
				s, err := app.Sessions.Active(ctx, app.Account)
				if err != nil {
					return err
				}
				if s == nil {
					return fmt.Errorf("no open session, pass --session: %w", domain.ErrNotFound)
				}
				id = s.ID
			}
			created, err := parseOptionalInstant(at, app.now())
			if err != nil {
				return err
			}
			n, err := app.Sessions.AppendNote(ctx, app.Account, id, service.NoteInput{
				Content:   args[0],
				Type:      domain.NoteRuntime,
				CreatedAt: created,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added note to session %s at %s\n", id, formatter.ClockTime(&n.CreatedAt))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session ID")
	cmd.Flags().StringVar(&at, "at", "", "note time (default now)")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the sessions of a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dayOrToday(day, app)
			if err != nil {
				return err
			}
			sessions, err := app.Sessions.ListForDay(cmd.Context(), app.Account, d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSessionList(d, sessions, app.durations(), app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "day (YYYY-MM-DD, default today)")

	return cmd
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a session with its notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Sessions.GetByID(cmd.Context(), app.Account, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSession(s, app.durations(), app.now()))
			return nil
		},
	}
}

func newSessionAddCmd(app *App) *cobra.Command {
	var start, end, comment, project string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a finished session after the fact",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			from, err := parseInstant(start, now)
			if err != nil {
				return err
			}
			to, err := parseInstant(end, now)
			if err != nil {
				return err
			}
			s, err := app.Sessions.CreateManual(cmd.Context(), app.Account, service.ManualInput{
				Start:   from,
				End:     to,
				Comment: comment,
				Project: project,
				Tags:    tags,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added session %s (%s)\n", s.ID, app.durations().Render(s.WorkedSeconds(now)))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start time (required)")
	cmd.Flags().StringVar(&end, "end", "", "end time (required)")
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "comment")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project name")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag (repeatable)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newSessionEditCmd(app *App) *cobra.Command {
	var start, end, comment, project string
	var tags []string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a stopped session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			var ch service.SessionChanges
			var err error
			if ch.StartTime, err = parseOptionalInstant(start, now); err != nil {
				return err
			}
			if ch.StopTime, err = parseOptionalInstant(end, now); err != nil {
				return err
			}
			ch.Comment = changed(cmd.Flags(), "comment", &comment)
			ch.Project = changed(cmd.Flags(), "project", &project)
			ch.Tags = changed(cmd.Flags(), "tag", &tags)
			s, err := app.Sessions.Update(cmd.Context(), app.Account, args[0], ch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated session %s (%s)\n", s.ID, app.durations().Render(s.WorkedSeconds(now)))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "new start time")
	cmd.Flags().StringVar(&end, "end", "", "new end time")
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "new comment")
	cmd.Flags().StringVarP(&project, "project", "p", "", "new project")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "replace tags (repeatable)")

	return cmd
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a stopped session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Delete(cmd.Context(), app.Account, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
			return nil
		},
	}
}
