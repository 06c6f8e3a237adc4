package stats

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"
	"github.com/grafytimes/grafytimes/pkg/worklog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var names = StudyNames{"s1": "Maria"}

func sampleReport() MonthlyReport {
	return BuildReport(may2024, MonthData{
		Records: []worklog.WorkRecord{
			{Date: mayDay(5), Hours: 1.5, ActivityType: "B"},
			{Date: mayDay(2), Hours: 2, ActivityType: "A", StudyId: "s1"},
			{Date: mayDay(2), Hours: 3, ActivityType: "A"},
			{Date: mayDay(5), Hours: 0.5, StudyId: "unknown"},
		},
		GoalHours: 50,
	})
}

func TestTextReportRenderer_RenderReport(t *testing.T) {
	// given
	renderer := NewTextReportRenderer()

	// when
	report := renderer.RenderReport(sampleReport(), names)

	// then
	expected := `SERVICE REPORT - May 2024
====================================

SUMMARY:
- Total hours: 7.0
- Monthly goal: 50.0 hours
- Goal completed: 14.0%
- Bible studies visited: 2
- Days worked: 2

ACTIVITIES:
- B: 1.5 hours in 1 session
- A: 5.0 hours in 2 sessions
- (no activity): 0.5 hours in 1 session

DAILY LOG:
02/05/2024
  2.0 hours [A] - Study: Maria
  3.0 hours [A]

05/05/2024
  1.5 hours [B]
  0.5 hours

`
	assert.Equal(t, expected, report)
}

func TestTextReportRenderer_Deterministic(t *testing.T) {
	renderer := NewTextReportRenderer()
	report := sampleReport()

	first := renderer.RenderReport(report, names)
	second := renderer.RenderReport(report, names)

	assert.Equal(t, first, second)
	for _, line := range strings.Split(first, "\n") {
		assert.Equal(t, strings.TrimRight(line, " "), line)
	}
}

func TestTextReportRenderer_SortsDatesOfUnorderedEntries(t *testing.T) {
	// given
	report := MonthlyReport{
		Statistics: MonthlyStatistics{YearMonth: may2024},
		Entries: []CalendarEntry{
			{Date: mayDay(9), Hours: 1, ActivityType: "late"},
			{Date: mayDay(1), Hours: 1, ActivityType: "early"},
			{Date: mayDay(9), Hours: 2, ActivityType: "later"},
		},
	}

	// when
	text := NewTextReportRenderer().RenderReport(report, nil)

	// then
	early := strings.Index(text, "[early]")
	late := strings.Index(text, "[late]")
	later := strings.Index(text, "[later]")
	assert.True(t, early < late && late < later, text)
}

func TestCsvReportRenderer_Render(t *testing.T) {
	// when
	body, err := NewCsvReportRenderer().Render(sampleReport(), names)

	// then
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Hours", "Activity", "Study"},
		{"02/05/2024", "2.0", "A", "Maria"},
		{"02/05/2024", "3.0", "A", ""},
		{"05/05/2024", "1.5", "B", ""},
		{"05/05/2024", "0.5", "", ""},
		{"Total", "7.0", "", ""},
	}, rows)
}

func TestXlsxReportRenderer_Render(t *testing.T) {
	// given
	renderer := NewXlsxReportRenderer()

	// when
	body, err := renderer.Render(sampleReport(), names)

	// then
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, dailyLogSheet}, f.GetSheetList())

	month, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2024-05", month)
	total, err := f.GetCellValue(summarySheet, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "7", total)
	firstActivity, err := f.GetCellValue(summarySheet, "A9")
	require.NoError(t, err)
	assert.Equal(t, "B", firstActivity)

	rows, err := f.GetRows(dailyLogSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Date", "Hours", "Activity", "Study"}, rows[0])
	assert.Equal(t, "2024-05-02", rows[1][0])
	assert.Equal(t, "Maria", rows[1][3])
	assert.Equal(t, "service-report-2024-05.xlsx", renderer.FileName(sampleReport()))
}

func TestIcsCalendarRenderer_Render(t *testing.T) {
	// when
	body, err := NewIcsCalendarRenderer().Render(sampleReport(), names)

	// then
	require.NoError(t, err)
	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 4)

	assert.Equal(t, "20240502-1@grafytimes", events[0].Id())
	assert.Equal(t, "2.0 h A - Study: Maria", events[0].GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "20240502", events[0].GetProperty(ics.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20240503", events[0].GetProperty(ics.ComponentPropertyDtEnd).Value)
	assert.Equal(t, "0.5 h service", events[3].GetProperty(ics.ComponentPropertySummary).Value)

	again, err := NewIcsCalendarRenderer().Render(sampleReport(), names)
	require.NoError(t, err)
	assert.Equal(t, body, again)
}

func TestRenderers_ForAccept(t *testing.T) {
	text := NewTextReportRenderer()
	xlsx := NewXlsxReportRenderer()
	ical := NewIcsCalendarRenderer()
	renderers := Renderers{text, xlsx, ical, NewCsvReportRenderer()}

	assert.Same(t, text, renderers.ForAccept(""))
	assert.Same(t, text, renderers.ForAccept("*/*"))
	assert.Same(t, ical, renderers.ForAccept("text/calendar"))
	assert.Same(t, xlsx, renderers.ForAccept("application/json, application/vnd.openxmlformats-officedocument.spreadsheetml.sheet;q=0.9"))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2.5", formatHours(2.5))
	assert.Equal(t, "0.1", formatHours(0.1))
	assert.Equal(t, "0.0", formatHours(math.Inf(1)))
	assert.Equal(t, "0.0", formatHours(math.Inf(-1)))
	assert.Equal(t, "0.0", formatHours(math.NaN()))
}
