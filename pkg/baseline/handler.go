package baseline

import (
	"net/http"
	"sort"

	"github.com/meetcal/meetcal/internal/rest"
)

type CohortDTO struct {
	Cohort string   `json:"cohort"`
	Groups []string `json:"groups"`
}

type Handler struct {
	provider *Provider
}

func NewHandler(provider *Provider) *Handler {
	return &Handler{provider: provider}
}

// ListCohorts godoc
// @Summary List cohorts and their groups
// @Tags Baseline
// @Produce json
// @Success 200 {array} CohortDTO
// @Router /api/cohorts [get]
func (h *Handler) ListCohorts(w http.ResponseWriter, r *http.Request) {
	cohorts := h.provider.Cohorts()
	dtos := make([]CohortDTO, 0, len(cohorts))
	for cohort, groups := range cohorts {
		dtos = append(dtos, CohortDTO{Cohort: cohort, Groups: groups})
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].Cohort < dtos[j].Cohort })
	rest.WriteJSON(w, http.StatusOK, dtos)
}
