package stats

import (
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	dailyLogSheet = "Daily log"
)

type XlsxReportRenderer struct{}

func NewXlsxReportRenderer() *XlsxReportRenderer {
	return &XlsxReportRenderer{}
}

func (x *XlsxReportRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (x *XlsxReportRenderer) FileName(report MonthlyReport) string {
	return reportBaseName(report) + ".xlsx"
}

// Render builds a workbook with a summary sheet and a sheet listing every calendar entry.
func (x *XlsxReportRenderer) Render(report MonthlyReport, names StudyNameResolver) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(dailyLogSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, report.Statistics, headerStyle); err != nil {
		return nil, err
	}
	if err := writeDailyLogSheet(f, report.Entries, names, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Errorf("failed to write workbook: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, stats MonthlyStatistics, headerStyle int) error {
	rows := [][]any{
		{"Month", stats.YearMonth.String()},
		{"Total hours", stats.TotalHours},
		{"Monthly goal", stats.GoalHours},
		{"Goal completed (%)", stats.GoalPercentage},
		{"Bible studies visited", stats.DistinctStudyCount},
		{"Days worked", stats.DaysWorked},
		{},
		{"Activity", "Hours", "Sessions"},
	}
	for _, summary := range stats.PerActivitySummary {
		rows = append(rows, []any{activityLabel(summary.ActivityName), summary.TotalHours, summary.SessionCount})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A8", "C8", headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "A", 24)
}

func writeDailyLogSheet(f *excelize.File, entries []CalendarEntry, names StudyNameResolver, headerStyle int) error {
	header := []any{"Date", "Hours", "Activity", "Study"}
	if err := f.SetSheetRow(dailyLogSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(dailyLogSheet, "A1", "D1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, day := range groupByDate(entries) {
		for _, entry := range day.entries {
			values := []any{
				day.date.Format("2006-01-02"),
				entry.Hours,
				entry.ActivityType,
				studyName(names, entry.StudyId),
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(dailyLogSheet, cell, &values); err != nil {
				return err
			}
			row++
		}
	}
	return f.SetColWidth(dailyLogSheet, "A", "D", 16)
}
