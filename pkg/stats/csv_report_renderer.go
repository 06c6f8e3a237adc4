package stats

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
)

type CsvReportRenderer struct{}

func NewCsvReportRenderer() *CsvReportRenderer {
	return &CsvReportRenderer{}
}

func (c *CsvReportRenderer) ContentType() string {
	return "text/csv"
}

func (c *CsvReportRenderer) FileName(report MonthlyReport) string {
	return reportBaseName(report) + ".csv"
}

// Render writes one row per calendar entry followed by a total row.
func (c *CsvReportRenderer) Render(report MonthlyReport, names StudyNameResolver) ([]byte, error) {
	data := make([][]string, 0, len(report.Entries)+2)
	data = append(data, []string{"Date", "Hours", "Activity", "Study"})
	for _, day := range groupByDate(report.Entries) {
		for _, entry := range day.entries {
			data = append(data, []string{
				day.date.Format("02/01/2006"),
				formatHours(entry.Hours),
				entry.ActivityType,
				studyName(names, entry.StudyId),
			})
		}
	}
	data = append(data, []string{"Total", formatHours(report.Statistics.TotalHours), "", ""})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return nil, err
	}
	return b.Bytes(), nil
}
