package ics

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/meetcal/meetcal/internal/utils"
	"github.com/meetcal/meetcal/pkg/schedule"
	"github.com/meetcal/meetcal/pkg/user"
	log "github.com/sirupsen/logrus"
)

type ScheduleReader interface {
	GetSchedule(ctx context.Context) (schedule.Schedule, error)
}

type Handler struct {
	schedules ScheduleReader
	clock     utils.Clock
}

func NewHandler(schedules ScheduleReader, clock utils.Clock) *Handler {
	return &Handler{schedules: schedules, clock: clock}
}

// ExportSchedule godoc
// @Summary Export the merged schedule as iCalendar
// @Tags Schedule
// @Produce text/calendar
// @Success 200 {string} string "VCALENDAR"
// @Router /api/schedule/export.ics [get]
// @Security XUserId
func (h *Handler) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		schedule.WriteError(w, err)
		return
	}
	merged, err := h.schedules.GetSchedule(r.Context())
	if err != nil {
		schedule.WriteError(w, err)
		return
	}
	log.Debugf("Exporting %d events of user %d", len(merged.Events), currentUser.Id)

	var body bytes.Buffer
	name := currentUser.DisplayName + " schedule"
	if err := Export(&body, name, merged.Events, currentUser.Settings.Location(), h.clock.Now().In(time.UTC)); err != nil {
		schedule.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := body.WriteTo(w); err != nil {
		log.Errorf("failed to write schedule export of user %d: %v", currentUser.Id, err)
	}
}
