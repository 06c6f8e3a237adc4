package stats

import (
	"time"

	"github.com/grafytimes/grafytimes/pkg/worklog"
)

type ActivitySummary struct {
	ActivityName string
	TotalHours   float64
	SessionCount int
}

// MonthlyStatistics is derived from the records of one month and is never stored.
type MonthlyStatistics struct {
	YearMonth          worklog.YearMonth
	TotalHours         float64
	GoalHours          float64
	GoalPercentage     float64
	DistinctStudyCount int
	// PerActivitySummary is ordered by the first appearance of each activity.
	PerActivitySummary []ActivitySummary
	DaysWorked         int
}

// CalendarEntry is one line of a day in the month calendar. Blank ActivityType and StudyId
// mark the hours logged without activity or study on that day.
type CalendarEntry struct {
	Date         time.Time
	Hours        float64
	ActivityType string
	StudyId      string
}

// MonthData is the snapshot of one month that aggregation runs on.
type MonthData struct {
	Records   []worklog.WorkRecord
	GoalHours float64
}

type MonthlyReport struct {
	Statistics MonthlyStatistics
	Entries    []CalendarEntry
}

type StudyNameResolver interface {
	StudyName(id string) (string, bool)
}

// StudyNames resolves study names from a snapshot of id to name.
type StudyNames map[string]string

func (n StudyNames) StudyName(id string) (string, bool) {
	name, ok := n[id]
	return name, ok
}
