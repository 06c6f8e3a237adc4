package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Work records
	r.HandleFunc("/api/worklog", deps.WorklogHandler.ListRecords).Methods("GET")
	r.HandleFunc("/api/worklog", deps.WorklogHandler.SaveRecord).Methods("PUT")
	r.HandleFunc("/api/worklog/{id}", deps.WorklogHandler.DeleteRecord).Methods("DELETE")

	// Goals
	r.HandleFunc("/api/goal/progress", deps.GoalHandler.GetProgress).Methods("GET")
	r.HandleFunc("/api/goal/{yearMonth:[0-9]{4}-[0-9]{2}}", deps.GoalHandler.GetGoal).Methods("GET")
	r.HandleFunc("/api/goal/{yearMonth:[0-9]{4}-[0-9]{2}}", deps.GoalHandler.SaveGoal).Methods("PUT")

	// Bible studies
	r.HandleFunc("/api/study", deps.StudyHandler.ListStudies).Methods("GET")
	r.HandleFunc("/api/study", deps.StudyHandler.SaveStudy).Methods("PUT")
	r.HandleFunc("/api/study/{id}", deps.StudyHandler.DeleteStudy).Methods("DELETE")

	// Notes
	r.HandleFunc("/api/note", deps.NoteHandler.ListNotes).Methods("GET")
	r.HandleFunc("/api/note", deps.NoteHandler.SaveNote).Methods("PUT")
	r.HandleFunc("/api/note/{id}", deps.NoteHandler.DeleteNote).Methods("DELETE")

	// Stats
	r.HandleFunc("/api/stats/monthly", deps.StatsHandler.GetMonthly).Methods("GET")
	r.HandleFunc("/api/stats/historical", deps.StatsHandler.GetHistorical).Methods("GET")
	r.HandleFunc("/api/stats/calendar", deps.StatsHandler.GetCalendar).Methods("GET")
	r.HandleFunc("/api/stats/report", deps.StatsHandler.GetReport).Methods("GET")

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
}
