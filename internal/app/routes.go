package app

import (
	"github.com/gorilla/mux"
	"github.com/meetcal/meetcal/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Schedule
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.GetSchedule).Methods("GET")
	r.HandleFunc("/api/schedule/day", deps.DayHandler.GetDay).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/schedule/month", deps.ScheduleHandler.GetMonthSummary).Queries("month", "{month}").Methods("GET")
	r.HandleFunc("/api/schedule/event", deps.ScheduleHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/schedule/event/{eventId}", deps.ScheduleHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/schedule/event/{eventId}", deps.ScheduleHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/schedule/import/{source}", deps.ImportHandler.Import).Methods("POST")
	r.HandleFunc("/api/schedule/export.ics", deps.ExportHandler.ExportSchedule).Methods("GET")

	// Cohorts
	r.HandleFunc("/api/cohorts", deps.BaselineHandler.ListCohorts).Methods("GET")

	// Assignments
	r.HandleFunc("/api/assignments", deps.AssignmentHandler.GetAssignments).Methods("GET")
	r.HandleFunc("/api/assignments/{assignmentId}/status", deps.AssignmentHandler.SetStatus).Methods("PUT")
	r.HandleFunc("/api/assignments/{assignmentId}/status/next", deps.AssignmentHandler.NextStatus).Methods("POST")

	// Reminders
	r.HandleFunc("/api/reminders", deps.ReminderHandler.ListReminders).Methods("GET")
	r.HandleFunc("/api/reminders", deps.ReminderHandler.CreateReminder).Methods("POST")
	r.HandleFunc("/api/reminders/{reminderId}/toggle", deps.ReminderHandler.ToggleReminder).Methods("PATCH")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
}
