package schedule

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/meetcal/meetcal/internal/rest"
	"github.com/meetcal/meetcal/pkg/timeutil"
	"github.com/meetcal/meetcal/pkg/user"
	log "github.com/sirupsen/logrus"
)

// UserEventIdPrefix marks ids generated for events created by the user.
const UserEventIdPrefix = "USER-"

type ScheduleDTO struct {
	GroupMentor        string       `json:"groupMentor,omitempty"`
	Events             []Event      `json:"events"`
	GeneralAssignments []Assignment `json:"generalAssignments"`
}

type DayCountDTO struct {
	Date   string `json:"date"`
	Events int    `json:"events"`
}

type Handler struct {
	store   Store
	service Service
}

func NewHandler(store Store, service Service) *Handler {
	return &Handler{store: store, service: service}
}

// GetSchedule godoc
// @Summary Get merged schedule
// @Tags Schedule
// @Produce json
// @Success 200 {object} ScheduleDTO
// @Router /api/schedule [get]
// @Security XUserId
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting schedule")
	schedule, err := h.service.GetSchedule(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ScheduleDTO{
		GroupMentor:        schedule.GroupMentor,
		Events:             nonNil(schedule.Events),
		GeneralAssignments: nonNilAssignments(schedule.GeneralAssignments),
	})
}

// GetMonthSummary godoc
// @Summary Count events per day of a month
// @Tags Schedule
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {array} DayCountDTO
// @Router /api/schedule/month [get]
// @Security XUserId
func (h *Handler) GetMonthSummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	log.Tracef("Getting month summary for %s", month)
	summary, err := h.service.GetMonthSummary(r.Context(), month)
	if err != nil {
		WriteError(w, err)
		return
	}
	dtos := make([]DayCountDTO, 0, len(summary))
	for _, c := range summary {
		dtos = append(dtos, DayCountDTO{Date: c.Date, Events: c.Events})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// CreateEvent godoc
// @Summary Add a custom event
// @Tags Schedule
// @Accept json
// @Produce json
// @Param event body Event true "Event"
// @Success 201 {object} Event
// @Failure 400 {object} rest.ErrorResponse "Invalid event"
// @Router /api/schedule/event [post]
// @Security XUserId
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	if event.Id == "" {
		event.Id = UserEventIdPrefix + uuid.NewString()
	}
	log.Debugf("Creating custom event %s", event.Id)

	created, err := h.store.Add(r.Context(), event)
	if err != nil {
		WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, created)
}

// UpdateEvent godoc
// @Summary Create or replace a custom event
// @Tags Schedule
// @Accept json
// @Produce json
// @Param eventId path string true "Event id"
// @Param event body Event true "Event"
// @Success 200 {object} Event
// @Failure 400 {object} rest.ErrorResponse "Invalid event"
// @Router /api/schedule/event/{eventId} [put]
// @Security XUserId
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	event.Id = mux.Vars(r)["eventId"]
	log.Debugf("Updating custom event %s", event.Id)

	updated, err := h.store.Update(r.Context(), event)
	if err != nil {
		WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, updated)
}

// DeleteEvent godoc
// @Summary Delete a custom event
// @Tags Schedule
// @Param eventId path string true "Event id"
// @Success 204 "No Content"
// @Router /api/schedule/event/{eventId} [delete]
// @Security XUserId
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	log.Debugf("Deleting custom event %s", eventId)
	if err := h.store.Delete(r.Context(), eventId); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// WriteError maps schedule errors to HTTP responses.
func WriteError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, "user not found", http.StatusForbidden)
	case errors.As(err, &validationErr):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event "+validationErr.Field, err.Error())
	case errors.Is(err, timeutil.ErrInvalidFormat):
		rest.WriteError(w, http.StatusBadRequest, "Invalid format", err.Error())
	case errors.Is(err, ErrNotFound):
		rest.WriteError(w, http.StatusNotFound, "Not found", err.Error())
	default:
		log.Errorf("request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

func nonNil(events []Event) []Event {
	if events == nil {
		return []Event{}
	}
	return events
}

func nonNilAssignments(assignments []Assignment) []Assignment {
	if assignments == nil {
		return []Assignment{}
	}
	return assignments
}
