package study

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/grafytimes/grafytimes/internal/rest"
	log "github.com/sirupsen/logrus"
)

type BibleStudyDTO struct {
	Id            string    `json:"id"`
	Name          string    `json:"name"`
	ContactInfo   string    `json:"contactInfo"`
	CreatedAt     time.Time `json:"createdAt"`
	LastVisitDate *string   `json:"lastVisitDate"`
	IsActive      *bool     `json:"isActive"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListStudies godoc
// @Summary List bible studies
// @Tags Study
// @Produce json
// @Success 200 {array} BibleStudyDTO
// @Router /api/study [get]
// @Security XUserId
func (h *Handler) ListStudies(w http.ResponseWriter, r *http.Request) {
	log.Trace("Listing bible studies")
	studies, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]BibleStudyDTO, 0, len(studies))
	for _, study := range studies {
		dtos = append(dtos, studyToDTO(study))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// SaveStudy godoc
// @Summary Create or update a bible study
// @Tags Study
// @Accept json
// @Produce json
// @Param study body BibleStudyDTO true "Bible study"
// @Success 200 {object} BibleStudyDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid study"
// @Router /api/study [put]
// @Security XUserId
func (h *Handler) SaveStudy(w http.ResponseWriter, r *http.Request) {
	log.Debug("Saving bible study")
	var dto BibleStudyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	study, err := dtoToStudy(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid bible study", err.Error())
		return
	}

	saved, err := h.service.Save(r.Context(), study)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStudy):
			rest.WriteError(w, http.StatusBadRequest, "Invalid bible study", err.Error())
		case errors.Is(err, ErrStudyNotFound):
			rest.WriteError(w, http.StatusNotFound, "Bible study not found", "")
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, studyToDTO(saved))
}

// DeleteStudy godoc
// @Summary Delete a bible study and its work records
// @Tags Study
// @Param id path string true "Study ID"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse "Not found"
// @Router /api/study/{id} [delete]
// @Security XUserId
func (h *Handler) DeleteStudy(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log.Debugf("Deleting bible study %s", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrStudyNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Bible study not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func dtoToStudy(dto BibleStudyDTO) (BibleStudy, error) {
	study := BibleStudy{
		Id:          dto.Id,
		Name:        dto.Name,
		ContactInfo: dto.ContactInfo,
		CreatedAt:   dto.CreatedAt,
		IsActive:    true,
	}
	if dto.IsActive != nil {
		study.IsActive = *dto.IsActive
	}
	if dto.LastVisitDate != nil && *dto.LastVisitDate != "" {
		date, err := time.Parse("2006-01-02", *dto.LastVisitDate)
		if err != nil {
			return BibleStudy{}, err
		}
		study.LastVisitDate = &date
	}
	return study, nil
}

func studyToDTO(study BibleStudy) BibleStudyDTO {
	active := study.IsActive
	dto := BibleStudyDTO{
		Id:          study.Id,
		Name:        study.Name,
		ContactInfo: study.ContactInfo,
		CreatedAt:   study.CreatedAt,
		IsActive:    &active,
	}
	if study.LastVisitDate != nil {
		date := study.LastVisitDate.Format("2006-01-02")
		dto.LastVisitDate = &date
	}
	return dto
}
