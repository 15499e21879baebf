package layout

import (
	"context"
	"net/http"

	"github.com/meetcal/meetcal/internal/rest"
	"github.com/meetcal/meetcal/pkg/reminder"
	"github.com/meetcal/meetcal/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type DayReader interface {
	GetDay(ctx context.Context, date string) ([]schedule.Event, error)
}

type ReminderReader interface {
	List(ctx context.Context, date string) ([]reminder.Reminder, error)
}

type DayDTO struct {
	Date      string                 `json:"date"`
	Events    []PositionedEvent      `json:"events"`
	Conflicts []Conflict             `json:"conflicts"`
	Reminders []reminder.ReminderDTO `json:"reminders"`
}

type Handler struct {
	days      DayReader
	reminders ReminderReader
}

func NewHandler(days DayReader, reminders ReminderReader) *Handler {
	return &Handler{days: days, reminders: reminders}
}

// GetDay godoc
// @Summary Get the laid out events of one day
// @Tags Schedule
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} DayDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date"
// @Router /api/schedule/day [get]
// @Security XUserId
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	log.Tracef("Getting day view of %s", date)

	events, err := h.days.GetDay(r.Context(), date)
	if err != nil {
		schedule.WriteError(w, err)
		return
	}
	positioned, err := LayoutDay(events)
	if err != nil {
		schedule.WriteError(w, err)
		return
	}
	conflicts, err := Conflicts(events)
	if err != nil {
		schedule.WriteError(w, err)
		return
	}
	reminders, err := h.reminders.List(r.Context(), date)
	if err != nil {
		schedule.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, DayDTO{
		Date:      date,
		Events:    positioned,
		Conflicts: conflicts,
		Reminders: reminder.ToDTOs(reminders),
	})
}
