package assignment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/meetcal/meetcal/internal/rest"
	"github.com/meetcal/meetcal/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type EntryDTO struct {
	Id             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	DueDate        string `json:"dueDate"`
	SubmissionLink string `json:"submissionLink,omitempty"`
	Source         string `json:"source"`
	Status         string `json:"status"`
}

type SummaryDTO struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

type WorklistDTO struct {
	Assignments []EntryDTO `json:"assignments"`
	Progress    SummaryDTO `json:"progress"`
}

type StatusDTO struct {
	Id     string `json:"id,omitempty"`
	Status string `json:"status"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetAssignments godoc
// @Summary List assignments of the current schedule with progress
// @Tags Assignments
// @Produce json
// @Param order query string false "Ordering: empty for status order, doneLast for done entries last"
// @Success 200 {object} WorklistDTO
// @Router /api/assignments [get]
// @Security XUserId
func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	order := Order(r.URL.Query().Get("order"))
	if order != ByStatus && order != DoneLastOrder {
		rest.WriteError(w, http.StatusBadRequest, "Invalid order", string(order))
		return
	}
	log.Trace("Getting assignments")
	worklist, err := h.service.GetWorklist(r.Context(), order)
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]EntryDTO, 0, len(worklist.Entries))
	for _, e := range worklist.Entries {
		dtos = append(dtos, EntryDTO{
			Id:             e.Id,
			Title:          e.Title,
			Description:    e.Description,
			DueDate:        e.DueDate,
			SubmissionLink: e.SubmissionLink,
			Source:         e.Source,
			Status:         string(worklist.Statuses.Of(e.Id)),
		})
	}
	rest.WriteJSON(w, http.StatusOK, WorklistDTO{
		Assignments: dtos,
		Progress: SummaryDTO{
			Completed: worklist.Summary.Completed,
			Total:     worklist.Summary.Total,
			Percent:   worklist.Summary.Percent,
		},
	})
}

// SetStatus godoc
// @Summary Set the status of an assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param assignmentId path string true "Assignment ID"
// @Param status body StatusDTO true "New status"
// @Success 200 {object} StatusDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid status"
// @Failure 404 {object} rest.ErrorResponse "Assignment not in schedule"
// @Router /api/assignments/{assignmentId}/status [put]
// @Security XUserId
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	assignmentId := mux.Vars(r)["assignmentId"]
	var body StatusDTO
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	status, err := ParseStatus(body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.service.SetStatus(r.Context(), assignmentId, status)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, StatusDTO{Id: assignmentId, Status: string(updated)})
}

// NextStatus godoc
// @Summary Move an assignment to its next status
// @Tags Assignments
// @Produce json
// @Param assignmentId path string true "Assignment ID"
// @Success 200 {object} StatusDTO
// @Failure 404 {object} rest.ErrorResponse "Assignment not in schedule"
// @Router /api/assignments/{assignmentId}/status/next [post]
// @Security XUserId
func (h *Handler) NextStatus(w http.ResponseWriter, r *http.Request) {
	assignmentId := mux.Vars(r)["assignmentId"]
	updated, err := h.service.CycleStatus(r.Context(), assignmentId)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, StatusDTO{Id: assignmentId, Status: string(updated)})
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidStatus) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid status", err.Error())
		return
	}
	schedule.WriteError(w, err)
}
