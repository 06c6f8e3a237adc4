package stats

import (
	"math"
	"sort"
	"time"

	"github.com/grafytimes/grafytimes/internal/utils"
	"github.com/grafytimes/grafytimes/pkg/worklog"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// AggregateMonth folds the records of month into MonthlyStatistics. Records that are malformed
// or dated outside month are left out and logged.
func AggregateMonth(month worklog.YearMonth, records []worklog.WorkRecord, goalHours float64) MonthlyStatistics {
	valid := usableRecords(month, records)
	goal := sanitizeGoal(goalHours)

	total := decimal.Zero
	summaries := make([]ActivitySummary, 0)
	activityHours := make(map[string]decimal.Decimal)
	activityIndex := make(map[string]int)
	studies := make(map[string]struct{})
	days := make(map[time.Time]struct{})

	for _, r := range valid {
		hours := decimal.NewFromFloat(r.Hours)
		total = total.Add(hours)

		idx, seen := activityIndex[r.ActivityType]
		if !seen {
			idx = len(summaries)
			activityIndex[r.ActivityType] = idx
			summaries = append(summaries, ActivitySummary{ActivityName: r.ActivityType})
		}
		activityHours[r.ActivityType] = activityHours[r.ActivityType].Add(hours)
		summaries[idx].SessionCount++

		if r.StudyId != "" {
			studies[r.StudyId] = struct{}{}
		}
		if r.Hours > 0 {
			days[utils.DateOf(r.Date)] = struct{}{}
		}
	}
	for i := range summaries {
		summaries[i].TotalHours = activityHours[summaries[i].ActivityName].InexactFloat64()
	}

	return MonthlyStatistics{
		YearMonth:          month,
		TotalHours:         total.InexactFloat64(),
		GoalHours:          goal.InexactFloat64(),
		GoalPercentage:     percentage(total, goal),
		DistinctStudyCount: len(studies),
		PerActivitySummary: summaries,
		DaysWorked:         len(days),
	}
}

// CalendarEntries lists the entries of every day of month that has records, days ascending.
// Records with an activity or a study keep one entry each, in storage order. Hours logged
// without either are summed into a single blank entry placed where the first of them appeared;
// it is left out when they add up to zero.
func CalendarEntries(month worklog.YearMonth, records []worklog.WorkRecord) []CalendarEntry {
	valid := usableRecords(month, records)

	byDay := make(map[time.Time][]worklog.WorkRecord)
	days := make([]time.Time, 0)
	for _, r := range valid {
		day := utils.DateOf(r.Date)
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], r)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	entries := make([]CalendarEntry, 0, len(valid))
	for _, day := range days {
		entries = append(entries, dayEntries(day, byDay[day])...)
	}
	return entries
}

func dayEntries(day time.Time, records []worklog.WorkRecord) []CalendarEntry {
	entries := make([]CalendarEntry, 0, len(records))
	genericIdx := -1
	genericHours := decimal.Zero
	for _, r := range records {
		if r.IsGeneric() {
			if genericIdx < 0 {
				genericIdx = len(entries)
				entries = append(entries, CalendarEntry{Date: day})
			}
			genericHours = genericHours.Add(decimal.NewFromFloat(r.Hours))
			continue
		}
		entries = append(entries, CalendarEntry{
			Date:         day,
			Hours:        r.Hours,
			ActivityType: r.ActivityType,
			StudyId:      r.StudyId,
		})
	}
	if genericIdx >= 0 {
		if genericHours.IsPositive() {
			entries[genericIdx].Hours = genericHours.InexactFloat64()
		} else {
			entries = append(entries[:genericIdx], entries[genericIdx+1:]...)
		}
	}
	return entries
}

// AggregateHistorical returns statistics for monthCount consecutive months ending at endingAt,
// newest first. A month missing from data yields zero statistics.
func AggregateHistorical(monthCount int, endingAt worklog.YearMonth, data map[worklog.YearMonth]MonthData) []MonthlyStatistics {
	if monthCount <= 0 {
		return []MonthlyStatistics{}
	}
	result := make([]MonthlyStatistics, 0, monthCount)
	for i := 0; i < monthCount; i++ {
		month := endingAt.AddMonths(-i)
		monthData := data[month]
		result = append(result, AggregateMonth(month, monthData.Records, monthData.GoalHours))
	}
	return result
}

// BuildReport aggregates month into the statistics and calendar entries a report is rendered from.
func BuildReport(month worklog.YearMonth, data MonthData) MonthlyReport {
	return MonthlyReport{
		Statistics: AggregateMonth(month, data.Records, data.GoalHours),
		Entries:    CalendarEntries(month, data.Records),
	}
}

func usableRecords(month worklog.YearMonth, records []worklog.WorkRecord) []worklog.WorkRecord {
	valid := make([]worklog.WorkRecord, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			log.Warnf("skipping work record %q in %s: %v", r.Id, month, err)
			continue
		}
		if !month.Contains(r.Date) {
			log.Warnf("skipping work record %q dated %s outside of %s", r.Id, r.Date.Format("2006-01-02"), month)
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

func sanitizeGoal(goalHours float64) decimal.Decimal {
	if math.IsNaN(goalHours) || math.IsInf(goalHours, 0) || goalHours < 0 {
		log.Warnf("ignoring unusable goal %v", goalHours)
		return decimal.Zero
	}
	return decimal.NewFromFloat(goalHours)
}

func percentage(total, goal decimal.Decimal) float64 {
	if !goal.IsPositive() {
		return 0
	}
	return total.Div(goal).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
