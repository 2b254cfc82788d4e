// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todoapp/internal/service"
	"todoapp/internal/store"
)

const (
	// ListSeparator is the separator line around the filter header.
	ListSeparator = "------------"

	// EmptyList is printed when the current filter matches nothing.
	EmptyList = "no tasks found"
)

// filterTitles are the header labels for each filter.
var filterTitles = map[service.Filter]string{
	service.FilterAll:        "All",
	service.FilterIncomplete: "Active",
	service.FilterCompleted:  "Completed",
}

// FilterTitle returns the display label for f.
func FilterTitle(f service.Filter) string {
	if t, ok := filterTitles[f]; ok {
		return t
	}
	return string(f)
}

// FormatState writes the task list of a store snapshot under a filter header.
func FormatState(w io.Writer, st store.State) {
	FormatHeader(w, st.Filter, len(st.Tasks))
	if len(st.Tasks) == 0 {
		fmt.Fprintln(w, EmptyList)
		return
	}
	for _, task := range st.Tasks {
		FormatTask(w, task)
	}
}

// FormatHeader formats the filter section header.
func FormatHeader(w io.Writer, f service.Filter, count int) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "%s (%d)\n", FilterTitle(f), count)
	fmt.Fprintln(w, ListSeparator)
}

// FormatTask formats one task line, plus an indented description line when
// the task has one.
// Format: "{ID:>4}  [x] {TITLE}\n"
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4s  %s %s\n", task.ID, checkbox(task.Completed), normalizeTitle(task.Title))
	if desc := normalizeText(task.Description); desc != "" {
		fmt.Fprintf(w, "          %s\n", desc)
	}
}

// FormatTaskDetail formats a single task as labelled fields.
func FormatTaskDetail(w io.Writer, task service.Task) {
	status := "open"
	if task.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "description: %s\n", normalizeText(task.Description))
	fmt.Fprintf(w, "status:      %s\n", status)
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeTitle normalizes a task title for display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

// normalizeText replaces newlines with spaces and trims.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
