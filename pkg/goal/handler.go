package goal

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/grafytimes/grafytimes/internal/rest"
	"github.com/grafytimes/grafytimes/pkg/worklog"
	log "github.com/sirupsen/logrus"
)

type GoalDTO struct {
	YearMonth string   `json:"yearMonth"`
	Value     string   `json:"value"`
	Hours     *float64 `json:"hours"`
}

type ProgressDTO struct {
	Date          string   `json:"date"`
	YearMonth     string   `json:"yearMonth"`
	Status        string   `json:"status"`
	GoalHours     *float64 `json:"goalHours"`
	WorkedHours   float64  `json:"workedHours"`
	PendingHours  float64  `json:"pendingHours"`
	ExpectedHours float64  `json:"expectedHours"`
	DailyRequired float64  `json:"dailyRequired"`
	RemainingDays int      `json:"remainingDays"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetGoal godoc
// @Summary Get the goal in effect for a month
// @Tags Goal
// @Produce json
// @Param yearMonth path string true "Month (YYYY-MM)"
// @Success 200 {object} GoalDTO
// @Router /api/goal/{yearMonth} [get]
// @Security XUserId
func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	month, err := worklog.ParseYearMonth(mux.Vars(r)["yearMonth"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		return
	}
	log.Tracef("Getting goal for %s", month)

	monthlyGoal, err := h.service.GetGoal(r.Context(), month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, goalToDTO(monthlyGoal))
}

// SaveGoal godoc
// @Summary Set the goal for a month
// @Description A blank value clears the goal
// @Tags Goal
// @Accept json
// @Produce json
// @Param yearMonth path string true "Month (YYYY-MM)"
// @Param goal body GoalDTO true "Goal"
// @Success 200 {object} GoalDTO
// @Router /api/goal/{yearMonth} [put]
// @Security XUserId
func (h *Handler) SaveGoal(w http.ResponseWriter, r *http.Request) {
	month, err := worklog.ParseYearMonth(mux.Vars(r)["yearMonth"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		return
	}
	var dto GoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	log.Debugf("Saving goal %q for %s", dto.Value, month)

	saved, err := h.service.SaveGoal(r.Context(), month, dto.Value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, goalToDTO(saved))
}

// GetProgress godoc
// @Summary Progress towards the monthly goal
// @Tags Goal
// @Produce json
// @Param date query string false "Day to evaluate (YYYY-MM-DD), today by default"
// @Success 200 {object} ProgressDTO
// @Router /api/goal/progress [get]
// @Security XUserId
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
			return
		}
		date = parsed
	}

	progress, err := h.service.GetProgress(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ProgressDTO{
		Date:          progress.Date.Format("2006-01-02"),
		YearMonth:     progress.Goal.YearMonth.String(),
		Status:        string(progress.Status),
		GoalHours:     goalHours(progress.Goal.Goal),
		WorkedHours:   progress.WorkedHours,
		PendingHours:  progress.PendingHours,
		ExpectedHours: progress.ExpectedHours,
		DailyRequired: progress.DailyRequired,
		RemainingDays: progress.RemainingDays,
	})
}

func goalToDTO(m MonthlyGoal) GoalDTO {
	return GoalDTO{
		YearMonth: m.YearMonth.String(),
		Value:     m.Raw,
		Hours:     goalHours(m.Goal),
	}
}

func goalHours(g Goal) *float64 {
	if !g.usable() {
		return nil
	}
	hours := g.Hours
	return &hours
}
