package worklog

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/grafytimes/grafytimes/internal/rest"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"
const clockLayout = "15:04"

type WorkRecordDTO struct {
	Id           string   `json:"id"`
	Date         string   `json:"date"`
	Hours        *float64 `json:"hours,omitempty"`
	StartTime    string   `json:"startTime,omitempty"`
	EndTime      string   `json:"endTime,omitempty"`
	ActivityType string   `json:"activityType"`
	StudyId      string   `json:"studyId"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListRecords godoc
// @Summary List work records
// @Description Records of the given month, or all records when no month is given
// @Tags Worklog
// @Produce json
// @Param month query string false "Month (YYYY-MM)"
// @Success 200 {array} WorkRecordDTO
// @Router /api/worklog [get]
// @Security XUserId
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	log.Trace("Listing work records")

	var records []WorkRecord
	var err error
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		month, parseErr := ParseYearMonth(monthParam)
		if parseErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid month", parseErr.Error())
			return
		}
		records, err = h.service.GetMonth(r.Context(), month)
	} else {
		records, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]WorkRecordDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, recordToDTO(record))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// SaveRecord godoc
// @Summary Create or update a work record
// @Description Hours are given directly or as a startTime/endTime span (HH:MM)
// @Tags Worklog
// @Accept json
// @Produce json
// @Param record body WorkRecordDTO true "Work record"
// @Success 200 {object} WorkRecordDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid record"
// @Router /api/worklog [put]
// @Security XUserId
func (h *Handler) SaveRecord(w http.ResponseWriter, r *http.Request) {
	log.Debug("Saving work record")

	var dto WorkRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	record, err := dtoToRecord(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid work record", err.Error())
		return
	}

	saved, err := h.service.SaveRecord(r.Context(), record)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRecord):
			rest.WriteError(w, http.StatusBadRequest, "Invalid work record", err.Error())
		case errors.Is(err, ErrRecordNotFound):
			rest.WriteError(w, http.StatusNotFound, "Work record not found", "")
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, recordToDTO(saved))
}

// DeleteRecord godoc
// @Summary Delete a work record
// @Tags Worklog
// @Param id path string true "Record ID"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse "Not found"
// @Router /api/worklog/{id} [delete]
// @Security XUserId
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log.Debugf("Deleting work record %s", id)

	if err := h.service.DeleteRecord(r.Context(), id); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Work record not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func dtoToRecord(dto WorkRecordDTO) (WorkRecord, error) {
	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return WorkRecord{}, err
	}
	record := WorkRecord{
		Id:           dto.Id,
		Date:         date,
		ActivityType: dto.ActivityType,
		StudyId:      dto.StudyId,
	}
	switch {
	case dto.Hours != nil:
		record.Hours = *dto.Hours
	case dto.StartTime != "" && dto.EndTime != "":
		start, err := time.Parse(clockLayout, dto.StartTime)
		if err != nil {
			return WorkRecord{}, err
		}
		end, err := time.Parse(clockLayout, dto.EndTime)
		if err != nil {
			return WorkRecord{}, err
		}
		if record.Hours, err = HoursBetween(start, end); err != nil {
			return WorkRecord{}, err
		}
	default:
		return WorkRecord{}, errors.New("either hours or startTime and endTime are required")
	}
	return record, nil
}

func recordToDTO(record WorkRecord) WorkRecordDTO {
	hours := record.Hours
	return WorkRecordDTO{
		Id:           record.Id,
		Date:         record.Date.Format(dateLayout),
		Hours:        &hours,
		ActivityType: record.ActivityType,
		StudyId:      record.StudyId,
	}
}
