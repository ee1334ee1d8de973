package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Status string
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree with box-drawing connectors.
// Details are right-aligned in a column after the widest title.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	widest := 0
	for i, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}
		title := item.Title
		switch item.Status {
		case "active":
			title = StyleGreen.Render("▶ ") + title
		case "paused":
			title = StyleYellow.Render("‖ ") + title
		case "done":
			title = StyleGreen.Render("✔ ") + title
		}
		contents[i] = StyleDim.Render(prefix) + title
		widest = max(widest, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			pad := widest - lipgloss.Width(contents[i]) + colGap
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(StyleDim.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
