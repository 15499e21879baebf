package importer

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/meetcal/meetcal/internal/rest"
	"github.com/meetcal/meetcal/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type ImportResultDTO struct {
	Source   string `json:"source"`
	Fetched  int    `json:"fetched"`
	Inserted int    `json:"inserted"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Import godoc
// @Summary Import events from an external calendar
// @Tags Schedule
// @Produce json
// @Param source path string true "Source (google or ics)"
// @Success 200 {object} ImportResultDTO
// @Failure 404 {object} rest.ErrorResponse "Unknown source"
// @Failure 502 {object} rest.ErrorResponse "Source unavailable"
// @Router /api/schedule/import/{source} [post]
// @Security XUserId
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	sourceName := mux.Vars(r)["source"]
	log.Debugf("Importing events from %s", sourceName)

	result, err := h.service.Import(r.Context(), sourceName)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ImportResultDTO{
		Source:   result.Source,
		Fetched:  result.Fetched,
		Inserted: result.Inserted,
	})
}

func writeError(w http.ResponseWriter, err error) {
	var fetchErr *FetchError
	switch {
	case errors.Is(err, ErrUnknownSource):
		rest.WriteError(w, http.StatusNotFound, "Unknown import source", err.Error())
	case errors.Is(err, ErrNotConnected):
		rest.WriteError(w, http.StatusForbidden, "Source is not connected", err.Error())
	case errors.As(err, &fetchErr):
		rest.WriteError(w, http.StatusBadGateway, "Source unavailable", err.Error())
	default:
		schedule.WriteError(w, err)
	}
}
