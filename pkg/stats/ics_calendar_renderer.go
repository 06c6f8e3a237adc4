package stats

import (
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"
)

// IcsCalendarRenderer exports calendar entries as all-day events.
type IcsCalendarRenderer struct {
	productId string
}

func NewIcsCalendarRenderer() *IcsCalendarRenderer {
	return &IcsCalendarRenderer{productId: "-//grafytimes//service report//EN"}
}

func (c *IcsCalendarRenderer) ContentType() string {
	return "text/calendar"
}

func (c *IcsCalendarRenderer) FileName(report MonthlyReport) string {
	return reportBaseName(report) + ".ics"
}

func (c *IcsCalendarRenderer) Render(report MonthlyReport, names StudyNameResolver) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(c.productId)
	cal.SetName(fmt.Sprintf("Service %s", report.Statistics.YearMonth))

	for _, day := range groupByDate(report.Entries) {
		for i, entry := range day.entries {
			event := cal.AddEvent(fmt.Sprintf("%s-%d@grafytimes", day.date.Format("20060102"), i+1))
			event.SetDtStampTime(day.date)
			event.SetAllDayStartAt(day.date)
			event.SetAllDayEndAt(day.date.AddDate(0, 0, 1))
			event.SetSummary(entrySummary(entry, names))
		}
	}
	return []byte(cal.Serialize()), nil
}

func entrySummary(entry CalendarEntry, names StudyNameResolver) string {
	parts := []string{formatHours(entry.Hours) + " h"}
	if entry.ActivityType != "" {
		parts = append(parts, entry.ActivityType)
	} else {
		parts = append(parts, "service")
	}
	if name := studyName(names, entry.StudyId); name != "" {
		parts = append(parts, "- Study: "+name)
	}
	return strings.Join(parts, " ")
}
