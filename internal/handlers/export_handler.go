package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"selecao-backend/internal/service"
)

// ExportHandler handles CSV export requests
type ExportHandler struct {
	exportService *service.ExportService
	approvedCount int
	waitlistCount int
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService, approvedCount, waitlistCount int) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		approvedCount: approvedCount,
		waitlistCount: waitlistCount,
	}
}

// Ranking downloads the public ranking report as CSV
// @Summary Export ranking CSV
// @Description Download the public ranking report as a CSV file
// @Tags Exports
// @Produce text/csv
// @Security BearerAuth
// @Param approved query int false "Number of approved members"
// @Param waitlist query int false "Number of waitlisted members"
// @Success 200 {string} string "CSV file"
// @Failure 500 {object} map[string]string "Internal error"
// @Router /exports/ranking [get]
func (h *ExportHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	approved, waitlist := h.counts(r)

	filename := fmt.Sprintf("ranking_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.exportService.WriteRankingCSV(w, approved, waitlist); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export ranking")
		return
	}
}

// FinalResult downloads the internal result report as CSV
// @Summary Export final result CSV
// @Description Download the internal final result report with raw projected scores
// @Tags Exports
// @Produce text/csv
// @Security BearerAuth
// @Param approved query int false "Number of approved members"
// @Param waitlist query int false "Number of waitlisted members"
// @Success 200 {string} string "CSV file"
// @Failure 500 {object} map[string]string "Internal error"
// @Router /exports/final-result [get]
func (h *ExportHandler) FinalResult(w http.ResponseWriter, r *http.Request) {
	approved, waitlist := h.counts(r)

	filename := fmt.Sprintf("resultado_final_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.exportService.WriteFinalResultCSV(w, approved, waitlist); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export final result")
		return
	}
}

func (h *ExportHandler) counts(r *http.Request) (int, int) {
	approved := h.approvedCount
	waitlist := h.waitlistCount

	if raw := r.URL.Query().Get("approved"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			approved = n
		}
	}
	if raw := r.URL.Query().Get("waitlist"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			waitlist = n
		}
	}

	return approved, waitlist
}
