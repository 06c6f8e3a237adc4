package stats

import (
	"fmt"
	"strings"
)

// ReportRenderer turns a monthly report into a downloadable document.
type ReportRenderer interface {
	ContentType() string
	FileName(report MonthlyReport) string
	Render(report MonthlyReport, names StudyNameResolver) ([]byte, error)
}

// Renderers selects a renderer by the media types a client accepts. The first renderer is the default.
type Renderers []ReportRenderer

func (r Renderers) ForAccept(accept string) ReportRenderer {
	for _, mediaRange := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(strings.SplitN(mediaRange, ";", 2)[0])
		for _, renderer := range r {
			if strings.EqualFold(renderer.ContentType(), mediaType) {
				return renderer
			}
		}
	}
	return r[0]
}

func reportBaseName(report MonthlyReport) string {
	return fmt.Sprintf("service-report-%s", report.Statistics.YearMonth)
}

func studyName(names StudyNameResolver, id string) string {
	if id == "" || names == nil {
		return ""
	}
	name, ok := names.StudyName(id)
	if !ok {
		return ""
	}
	return name
}
