package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/timetrack/internal/cli/formatter"
	"github.com/alexanderramin/timetrack/internal/domain"
	"github.com/alexanderramin/timetrack/internal/service"
)

// App holds the service dependencies injected into CLI commands.
type App struct {
	Sessions service.SessionService
	Tasks    service.TaskService
	Summary  service.SummaryService
	Leave    service.LeaveService
	Holidays service.HolidayService
	Settings service.SettingsProvider

	// Account scopes every command.
	Account string
	// Now is the display clock; nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a *App) today() string {
	return domain.DayOf(a.now())
}

func (a *App) durations() formatter.Durations {
	return formatter.DurationsFor(a.Settings.Settings())
}

// NewRootCmd creates the top-level cobra command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "timetrack",
		Short: "Personal working-time accounting",
		Long: `timetrack records work sessions with pauses, ad-hoc tasks, leave and
holidays, and reports worked, expected and overtime hours per day, week,
month or year.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSessionCmd(app),
		newTaskCmd(app),
		newLeaveCmd(app),
		newHolidayCmd(app),
		newSummaryCmd(app),
	)

	return root
}
