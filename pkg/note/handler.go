package note

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/grafytimes/grafytimes/internal/rest"
	log "github.com/sirupsen/logrus"
)

type NoteDTO struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ActivityType string    `json:"activityType"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListNotes godoc
// @Summary List notes
// @Tags Note
// @Produce json
// @Param activity query string false "Activity type filter"
// @Success 200 {array} NoteDTO
// @Router /api/note [get]
// @Security XUserId
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	activity := r.URL.Query().Get("activity")
	log.Tracef("Listing notes, activity filter: %q", activity)
	notes, err := h.service.List(r.Context(), activity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]NoteDTO, 0, len(notes))
	for _, n := range notes {
		dtos = append(dtos, NoteDTO(n))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// SaveNote godoc
// @Summary Create or update a note
// @Tags Note
// @Accept json
// @Produce json
// @Param note body NoteDTO true "Note"
// @Success 200 {object} NoteDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid note"
// @Router /api/note [put]
// @Security XUserId
func (h *Handler) SaveNote(w http.ResponseWriter, r *http.Request) {
	var dto NoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	saved, err := h.service.Save(r.Context(), Note(dto))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidNote):
			rest.WriteError(w, http.StatusBadRequest, "Invalid note", err.Error())
		case errors.Is(err, ErrNoteNotFound):
			rest.WriteError(w, http.StatusNotFound, "Note not found", "")
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, NoteDTO(saved))
}

// DeleteNote godoc
// @Summary Delete a note
// @Tags Note
// @Param id path string true "Note ID"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse "Not found"
// @Router /api/note/{id} [delete]
// @Security XUserId
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Note not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
