package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timetrack/internal/domain"
)

// FormatSessionList renders the sessions of a day as a table followed by the
// day's worked total. Open sessions are counted up to now.
func FormatSessionList(day string, sessions []*domain.WorkSession, d Durations, now time.Time) string {
	if len(sessions) == 0 {
		return Dim("No sessions on " + day + ".")
	}
	headers := []string{"ID", "START", "STOP", "WORKED", "PAUSED", "STATUS", "PROJECT", "COMMENT"}
	rows := make([][]string, 0, len(sessions))
	var total int64
	for _, s := range sessions {
		worked := s.WorkedSeconds(now)
		total += worked
		start := s.StartTime
		rows = append(rows, []string{
			s.ID,
			ClockTime(&start),
			ClockTime(s.StopTime),
			d.Render(worked),
			d.Render(s.PausedSeconds),
			StatusStyle(s.Status).Render(string(s.Status)),
			s.Project,
			Truncate(s.Comment, 40),
		})
	}
	body := RenderTable(headers, rows) + "\n" + Bold("Total "+d.Render(total))
	return RenderBox("Sessions "+day, body)
}

// FormatSession renders one session with its notes.
func FormatSession(s *domain.WorkSession, d Durations, now time.Time) string {
	var b strings.Builder
	start := s.StartTime
	fmt.Fprintf(&b, "%s  %s\n", StatusIndicator(s.Status), Dim(s.ID))
	fmt.Fprintf(&b, "Started   %s %s\n", domain.DayOf(start), ClockTime(&start))
	if s.StopTime != nil {
		fmt.Fprintf(&b, "Stopped   %s %s\n", domain.DayOf(*s.StopTime), ClockTime(s.StopTime))
	}
	if s.LastPauseStart != nil {
		fmt.Fprintf(&b, "Paused at %s\n", ClockTime(s.LastPauseStart))
	}
	fmt.Fprintf(&b, "Worked    %s\n", Bold(d.Render(s.WorkedSeconds(now))))
	fmt.Fprintf(&b, "Paused    %s\n", d.Render(s.PausedSeconds))
	if s.Comment != "" {
		fmt.Fprintf(&b, "Comment   %s\n", s.Comment)
	}
	if s.Project != "" {
		fmt.Fprintf(&b, "Project   %s\n", s.Project)
	}
	if len(s.Tags) > 0 {
		fmt.Fprintf(&b, "Tags      %s\n", Tags(s.Tags))
	}
	if len(s.Notes) > 0 {
		b.WriteString("\n" + Header("Notes") + "\n")
		for _, n := range s.Notes {
			at := n.CreatedAt
			fmt.Fprintf(&b, "%s %s %s\n", ClockTime(&at), Dim("["+string(n.Type)+"]"), n.Content)
		}
	}
	return RenderBox("Session", strings.TrimRight(b.String(), "\n"))
}
