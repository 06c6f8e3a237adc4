package stats

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/grafytimes/grafytimes/internal/rest"
	"github.com/grafytimes/grafytimes/pkg/worklog"
	log "github.com/sirupsen/logrus"
)

type ActivitySummaryDTO struct {
	ActivityName string  `json:"activityName"`
	TotalHours   float64 `json:"totalHours"`
	SessionCount int     `json:"sessionCount"`
}

type MonthlyStatisticsDTO struct {
	YearMonth          string               `json:"yearMonth"`
	TotalHours         float64              `json:"totalHours"`
	GoalHours          float64              `json:"goalHours"`
	GoalPercentage     float64              `json:"goalPercentage"`
	DistinctStudyCount int                  `json:"distinctStudyCount"`
	PerActivitySummary []ActivitySummaryDTO `json:"perActivitySummary"`
	DaysWorked         int                  `json:"daysWorked"`
}

type CalendarEntryDTO struct {
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
	ActivityType string  `json:"activityType"`
	StudyId      string  `json:"studyId"`
}

type StatsHandler struct {
	statsService Service
	renderers    Renderers
}

// NewStatsHandler serves reports with the given renderers; the first one answers when the
// Accept header matches none of them.
func NewStatsHandler(statsService Service, renderers ...ReportRenderer) *StatsHandler {
	return &StatsHandler{statsService: statsService, renderers: renderers}
}

// GetMonthly godoc
// @Summary Statistics of one month
// @Tags Stats
// @Produce json
// @Param month query string false "Month (YYYY-MM), current month by default"
// @Success 200 {object} MonthlyStatisticsDTO
// @Router /api/stats/monthly [get]
// @Security XUserId
func (h *StatsHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	month, ok := h.monthParam(w, r, "month")
	if !ok {
		return
	}
	stats, err := h.statsService.GetMonthly(r.Context(), month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, statisticsToDTO(stats))
}

// GetHistorical godoc
// @Summary Statistics of consecutive months, newest first
// @Tags Stats
// @Produce json
// @Param months query int false "Number of months"
// @Param endingAt query string false "Newest month (YYYY-MM), current month by default"
// @Success 200 {array} MonthlyStatisticsDTO
// @Router /api/stats/historical [get]
// @Security XUserId
func (h *StatsHandler) GetHistorical(w http.ResponseWriter, r *http.Request) {
	monthCount := 0
	if monthsParam := r.URL.Query().Get("months"); monthsParam != "" {
		parsed, err := strconv.Atoi(monthsParam)
		if err != nil || parsed <= 0 {
			rest.WriteError(w, http.StatusBadRequest, "Invalid months", "months must be a positive integer")
			return
		}
		monthCount = parsed
	}
	var endingAt worklog.YearMonth
	if endingParam := r.URL.Query().Get("endingAt"); endingParam != "" {
		parsed, err := worklog.ParseYearMonth(endingParam)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid endingAt", err.Error())
			return
		}
		endingAt = parsed
	}

	history, err := h.statsService.GetHistorical(r.Context(), monthCount, endingAt)
	if errors.Is(err, ErrHistoryTooLong) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid months", err.Error())
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]MonthlyStatisticsDTO, 0, len(history))
	for _, stats := range history {
		dtos = append(dtos, statisticsToDTO(stats))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetCalendar godoc
// @Summary Calendar entries of one month
// @Tags Stats
// @Produce json
// @Param month query string false "Month (YYYY-MM), current month by default"
// @Success 200 {array} CalendarEntryDTO
// @Router /api/stats/calendar [get]
// @Security XUserId
func (h *StatsHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	month, ok := h.monthParam(w, r, "month")
	if !ok {
		return
	}
	entries, err := h.statsService.GetCalendar(r.Context(), month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]CalendarEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, CalendarEntryDTO{
			Date:         entry.Date.Format("2006-01-02"),
			Hours:        entry.Hours,
			ActivityType: entry.ActivityType,
			StudyId:      entry.StudyId,
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetReport godoc
// @Summary Monthly service report
// @Description Plain text by default; spreadsheet, CSV or iCalendar depending on Accept
// @Tags Stats
// @Produce plain
// @Param month query string false "Month (YYYY-MM), current month by default"
// @Success 200 {string} string "Report"
// @Router /api/stats/report [get]
// @Security XUserId
func (h *StatsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	month, ok := h.monthParam(w, r, "month")
	if !ok {
		return
	}
	report, names, err := h.statsService.GetReport(r.Context(), month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	renderer := h.renderers.ForAccept(r.Header.Get("Accept"))
	log.Debugf("Rendering report for %s as %s", month, renderer.ContentType())
	body, err := renderer.Render(report, names)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType()+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", renderer.FileName(report)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Errorf("failed to write report: %v", err)
	}
}

func (h *StatsHandler) monthParam(w http.ResponseWriter, r *http.Request, name string) (worklog.YearMonth, bool) {
	param := r.URL.Query().Get(name)
	if param == "" {
		month, err := h.statsService.CurrentMonth(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return worklog.YearMonth{}, false
		}
		return month, true
	}
	month, err := worklog.ParseYearMonth(param)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid "+name, err.Error())
		return worklog.YearMonth{}, false
	}
	return month, true
}

func statisticsToDTO(stats MonthlyStatistics) MonthlyStatisticsDTO {
	summaries := make([]ActivitySummaryDTO, 0, len(stats.PerActivitySummary))
	for _, s := range stats.PerActivitySummary {
		summaries = append(summaries, ActivitySummaryDTO{
			ActivityName: s.ActivityName,
			TotalHours:   s.TotalHours,
			SessionCount: s.SessionCount,
		})
	}
	return MonthlyStatisticsDTO{
		YearMonth:          stats.YearMonth.String(),
		TotalHours:         stats.TotalHours,
		GoalHours:          stats.GoalHours,
		GoalPercentage:     stats.GoalPercentage,
		DistinctStudyCount: stats.DistinctStudyCount,
		PerActivitySummary: summaries,
		DaysWorked:         stats.DaysWorked,
	}
}

