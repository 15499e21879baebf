package reminder

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/meetcal/meetcal/internal/rest"
	"github.com/meetcal/meetcal/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type ReminderDTO struct {
	Id        string `json:"id"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Completed bool   `json:"completed"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListReminders godoc
// @Summary List reminders, optionally of one day
// @Tags Reminder
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {array} ReminderDTO
// @Router /api/reminders [get]
// @Security XUserId
func (h *Handler) ListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.service.List(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		schedule.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTOs(reminders))
}

// CreateReminder godoc
// @Summary Add a reminder
// @Tags Reminder
// @Accept json
// @Produce json
// @Param reminder body ReminderDTO true "Reminder"
// @Success 201 {object} ReminderDTO
// @Router /api/reminders [post]
// @Security XUserId
func (h *Handler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var dto ReminderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	log.Tracef("Creating reminder: %+v", dto)
	created, err := h.service.Add(r.Context(), Reminder{Text: dto.Text, Date: dto.Date, Time: dto.Time})
	if err != nil {
		schedule.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// ToggleReminder godoc
// @Summary Flip the completed flag of a reminder
// @Tags Reminder
// @Produce json
// @Param reminderId path string true "Reminder id"
// @Success 200 {object} ReminderDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/reminders/{reminderId}/toggle [patch]
// @Security XUserId
func (h *Handler) ToggleReminder(w http.ResponseWriter, r *http.Request) {
	toggled, err := h.service.Toggle(r.Context(), mux.Vars(r)["reminderId"])
	if err != nil {
		schedule.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(toggled))
}

func toDTO(r Reminder) ReminderDTO {
	return ReminderDTO{Id: r.Id, Text: r.Text, Date: r.Date, Time: r.Time, Completed: r.Completed}
}

func ToDTOs(reminders []Reminder) []ReminderDTO {
	dtos := make([]ReminderDTO, 0, len(reminders))
	for _, r := range reminders {
		dtos = append(dtos, toDTO(r))
	}
	return dtos
}
