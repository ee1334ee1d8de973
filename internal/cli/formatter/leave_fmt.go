package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timetrack/internal/accounting"
	"github.com/alexanderramin/timetrack/internal/domain"
)

// FormatLeaveList renders leave entries as a table.
func FormatLeaveList(entries []*domain.LeaveEntry) string {
	if len(entries) == 0 {
		return Dim("No leave found.")
	}
	headers := []string{"ID", "FROM", "TO", "TYPE", "DAYS", "APPROVED", "COMMENT"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		approved := StyleGreen.Render("yes")
		if !e.Approved {
			approved = StyleYellow.Render("no")
		}
		rows = append(rows, []string{
			e.ID,
			e.StartDate,
			e.EndDate,
			string(e.Type),
			Days(e.DayCount),
			approved,
			Truncate(e.Comment, 40),
		})
	}
	return RenderBox("Leave", RenderTable(headers, rows))
}

// FormatBalance renders the vacation and sick usage of a year.
func FormatBalance(year int, b *accounting.Balance) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Entitlement  %s\n", Days(b.TotalVacation))
	fmt.Fprintf(&sb, "Used         %s\n", Days(b.UsedVacation))
	remaining := Days(b.RemainingVacation)
	if b.RemainingVacation == 0 {
		remaining = StyleRed.Render(remaining)
	} else {
		remaining = StyleGreen.Render(remaining)
	}
	fmt.Fprintf(&sb, "Remaining    %s\n", remaining)
	fmt.Fprintf(&sb, "Sick days    %s", Days(b.UsedSick))
	return RenderBox(fmt.Sprintf("Vacation %d", year), sb.String())
}

// FormatHolidayList renders holidays as a table.
func FormatHolidayList(holidays []domain.Holiday) string {
	if len(holidays) == 0 {
		return Dim("No holidays found.")
	}
	rows := make([][]string, 0, len(holidays))
	for _, h := range holidays {
		rows = append(rows, []string{h.Day, h.Name})
	}
	return RenderBox("Holidays", RenderTable([]string{"DAY", "NAME"}, rows))
}
