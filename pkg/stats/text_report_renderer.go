package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const noActivityLabel = "(no activity)"

type TextReportRenderer struct{}

func NewTextReportRenderer() *TextReportRenderer {
	return &TextReportRenderer{}
}

func (t *TextReportRenderer) ContentType() string {
	return "text/plain"
}

func (t *TextReportRenderer) FileName(report MonthlyReport) string {
	return reportBaseName(report) + ".txt"
}

func (t *TextReportRenderer) Render(report MonthlyReport, names StudyNameResolver) ([]byte, error) {
	return []byte(t.RenderReport(report, names)), nil
}

// RenderReport formats the report as plain text. Equal input always gives the same output.
func (t *TextReportRenderer) RenderReport(report MonthlyReport, names StudyNameResolver) string {
	stats := report.Statistics
	var sb strings.Builder

	fmt.Fprintf(&sb, "SERVICE REPORT - %s %d\n", stats.YearMonth.Month, stats.YearMonth.Year)
	sb.WriteString("====================================\n\n")

	sb.WriteString("SUMMARY:\n")
	fmt.Fprintf(&sb, "- Total hours: %s\n", formatHours(stats.TotalHours))
	fmt.Fprintf(&sb, "- Monthly goal: %s hours\n", formatHours(stats.GoalHours))
	fmt.Fprintf(&sb, "- Goal completed: %.1f%%\n", stats.GoalPercentage)
	fmt.Fprintf(&sb, "- Bible studies visited: %d\n", stats.DistinctStudyCount)
	fmt.Fprintf(&sb, "- Days worked: %d\n\n", stats.DaysWorked)

	sb.WriteString("ACTIVITIES:\n")
	for _, summary := range stats.PerActivitySummary {
		fmt.Fprintf(&sb, "- %s: %s hours in %s\n",
			activityLabel(summary.ActivityName), formatHours(summary.TotalHours), sessions(summary.SessionCount))
	}
	sb.WriteString("\n")

	sb.WriteString("DAILY LOG:\n")
	for _, day := range groupByDate(report.Entries) {
		sb.WriteString(day.date.Format("02/01/2006"))
		sb.WriteString("\n")
		for _, entry := range day.entries {
			sb.WriteString("  ")
			sb.WriteString(formatHours(entry.Hours))
			sb.WriteString(" hours")
			if entry.ActivityType != "" {
				fmt.Fprintf(&sb, " [%s]", entry.ActivityType)
			}
			if name := studyName(names, entry.StudyId); name != "" {
				fmt.Fprintf(&sb, " - Study: %s", name)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

type dayGroup struct {
	date    time.Time
	entries []CalendarEntry
}

// groupByDate groups entries by calendar date, dates ascending, keeping entry order within a date.
func groupByDate(entries []CalendarEntry) []dayGroup {
	index := make(map[time.Time]int)
	groups := make([]dayGroup, 0)
	for _, entry := range entries {
		y, m, d := entry.Date.Date()
		date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, dayGroup{date: date})
		}
		groups[i].entries = append(groups[i].entries, entry)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].date.Before(groups[j].date) })
	return groups
}

// formatHours prints hours with one decimal. Non-finite values print as 0.0.
func formatHours(hours float64) string {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		hours = 0
	}
	return decimal.NewFromFloat(hours).StringFixed(1)
}

func activityLabel(activity string) string {
	if activity == "" {
		return noActivityLabel
	}
	return activity
}

func sessions(count int) string {
	if count == 1 {
		return "1 session"
	}
	return fmt.Sprintf("%d sessions", count)
}
