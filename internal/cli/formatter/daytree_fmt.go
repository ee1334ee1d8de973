package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/timetrack/internal/accounting"
	"github.com/alexanderramin/timetrack/internal/domain"
)

// FormatDayTree renders sessions with their reconciled tasks nested beneath
// them, then the tasks no session encloses.
func FormatDayTree(day string, r accounting.Reconciliation, d Durations, now time.Time) string {
	if len(r.Sessions) == 0 && len(r.Unassigned) == 0 {
		return Dim("Nothing recorded on " + day + ".")
	}
	var items []TreeItem
	for _, s := range r.Sessions {
		start := s.StartTime
		title := ClockTime(&start) + "–" + ClockTime(s.StopTime)
		if s.Comment != "" {
			title += "  " + s.Comment
		}
		items = append(items, TreeItem{
			Title:  title,
			Status: string(s.Status),
			Detail: d.Render(s.WorkedSeconds(now)),
		})
		items = append(items, taskItems(r.TasksFor(s.ID), 1)...)
	}
	if len(r.Unassigned) > 0 {
		items = append(items, TreeItem{Title: Dim("Unassigned")})
		items = append(items, taskItems(r.Unassigned, 1)...)
	}
	return RenderBox("Day "+day, RenderTree(items))
}

func taskItems(tasks []domain.Task, level int) []TreeItem {
	items := make([]TreeItem, len(tasks))
	for i, t := range tasks {
		detail := ""
		if t.StartTime != nil {
			detail = ClockTime(t.StartTime)
			if t.EndTime != nil {
				detail += "–" + ClockTime(t.EndTime)
			}
		}
		title := t.Title
		if t.Project != "" {
			title = fmt.Sprintf("%s %s", title, Dim("("+t.Project+")"))
		}
		status := ""
		if t.EndTime != nil {
			status = "done"
		}
		items[i] = TreeItem{
			Title:  title,
			Level:  level,
			IsLast: i == len(tasks)-1,
			Status: status,
			Detail: detail,
		}
	}
	return items
}

// FormatTaskList renders the tasks of a day as a table.
func FormatTaskList(day string, tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks on " + day + ".")
	}
	headers := []string{"ID", "TITLE", "START", "END", "PROJECT", "TAGS"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			t.ID,
			Truncate(t.Title, 40),
			ClockTime(t.StartTime),
			ClockTime(t.EndTime),
			t.Project,
			Tags(t.Tags),
		})
	}
	return RenderBox("Tasks "+day, RenderTable(headers, rows))
}
