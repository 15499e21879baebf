package google

import (
	"errors"
	"net/http"

	"github.com/meetcal/meetcal/internal/rest"
	"github.com/meetcal/meetcal/pkg/importer"
	"github.com/meetcal/meetcal/pkg/schedule"
)

type CalendarItemDto struct {
	Id      string `json:"id"`
	Summary string `json:"summary"`
	Primary bool   `json:"primary,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s}
}

// ListCalendars godoc
// @Summary List the user's Google calendars
// @Tags Integrations
// @Produce json
// @Success 200 {array} CalendarItemDto
// @Failure 403 {object} rest.ErrorResponse "Google Calendar not connected"
// @Router /api/integrations/google/calendars [get]
// @Security XUserId
func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	calendars, err := h.service.ListCalendars(r.Context())
	if err != nil {
		var fetchErr *importer.FetchError
		switch {
		case errors.Is(err, ErrUnauthenticated):
			rest.WriteError(w, http.StatusForbidden, "Google Calendar is not connected", "")
		case errors.As(err, &fetchErr):
			rest.WriteError(w, http.StatusBadGateway, "Google Calendar unavailable", err.Error())
		default:
			schedule.WriteError(w, err)
		}
		return
	}

	calendarItems := make([]CalendarItemDto, 0, len(calendars))
	for _, c := range calendars {
		calendarItems = append(calendarItems, toCalendarItemDto(c))
	}
	rest.WriteJSON(w, http.StatusOK, calendarItems)
}

func toCalendarItemDto(ci CalendarItem) CalendarItemDto {
	return CalendarItemDto{
		Id:      ci.ID,
		Summary: ci.Summary,
		Primary: ci.Primary,
	}
}
