package handlers

import (
	"net/http"

	"selecao-backend/internal/service"
)

// DashboardHandler handles dashboard aggregation requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Cards returns the headline counters
// @Summary Dashboard cards
// @Description Get candidate, team and evaluation counts plus the process status
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardCards
// @Failure 500 {object} map[string]string "Internal error"
// @Router /dashboard/cards [get]
func (h *DashboardHandler) Cards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.dashboardService.Cards()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	respondWithJSON(w, http.StatusOK, cards)
}

// StageAverages returns per-criterion score averages
// @Summary Stage averages
// @Description Get the average immersion, development and presentation scores over active evaluations
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.StageAverages
// @Failure 500 {object} map[string]string "Internal error"
// @Router /dashboard/stage-averages [get]
func (h *DashboardHandler) StageAverages(w http.ResponseWriter, r *http.Request) {
	averages, err := h.dashboardService.StageAverages()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load stage averages")
		return
	}

	respondWithJSON(w, http.StatusOK, averages)
}

// TeamAverages returns the average hidden score per team
// @Summary Team averages
// @Description Get the average hidden score per team over active evaluations, best first
// @Tags Dashboard
// @Produce json
// @Success 200 {array} repository.TeamAverage
// @Failure 500 {object} map[string]string "Internal error"
// @Router /dashboard/team-averages [get]
func (h *DashboardHandler) TeamAverages(w http.ResponseWriter, r *http.Request) {
	averages, err := h.dashboardService.TeamAverages()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load team averages")
		return
	}

	respondWithJSON(w, http.StatusOK, averages)
}
