package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
	"selecao-backend/internal/service"
)

// AttendanceHandler handles attendance tracking requests
type AttendanceHandler struct {
	attendanceRepo *repository.AttendanceRepository
	auditService   *service.AuditService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceRepo *repository.AttendanceRepository, auditService *service.AuditService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceRepo: attendanceRepo,
		auditService:   auditService,
	}
}

type attendanceRequest struct {
	TrainingSessionID uint    `json:"training_session_id" validate:"required"`
	TeamID            uint    `json:"team_id" validate:"required"`
	Present           bool    `json:"present"`
	Notes             *string `json:"notes"`
}

// List lists all attendance records
// @Summary List attendance
// @Description Get all attendance records
// @Tags Attendance
// @Produce json
// @Success 200 {array} models.Attendance
// @Failure 500 {object} map[string]string "Internal error"
// @Router /attendance [get]
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceRepo.GetAll()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list attendance")
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

// Create records attendance for a team at a session
// @Summary Record attendance
// @Description Record whether a team was present at a training session
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body attendanceRequest true "Attendance data"
// @Success 201 {object} models.Attendance
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /attendance [post]
func (h *AttendanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	record := &models.Attendance{
		TrainingSessionID: req.TrainingSessionID,
		TeamID:            req.TeamID,
		Present:           req.Present,
		Notes:             req.Notes,
	}

	if err := h.attendanceRepo.Create(record); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to record attendance")
		return
	}

	h.auditService.Log("attendance.create", "attendance",
		fmt.Sprintf("team_id=%d, session_id=%d, present=%t", record.TeamID, record.TrainingSessionID, record.Present))

	respondWithJSON(w, http.StatusCreated, record)
}

// Update edits an attendance record
// @Summary Update attendance
// @Description Update an attendance record
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Param request body attendanceRequest true "Attendance data"
// @Success 200 {object} models.Attendance
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	record := &models.Attendance{
		ID:                id,
		TrainingSessionID: req.TrainingSessionID,
		TeamID:            req.TeamID,
		Present:           req.Present,
		Notes:             req.Notes,
	}

	if err := h.attendanceRepo.Update(record); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update attendance")
		return
	}

	h.auditService.Log("attendance.update", "attendance",
		fmt.Sprintf("attendance_id=%d, present=%t", id, record.Present))

	respondWithJSON(w, http.StatusOK, record)
}

// Delete removes an attendance record
// @Summary Delete attendance
// @Description Delete an attendance record
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 400 {object} map[string]string "Invalid id"
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	if err := h.attendanceRepo.Delete(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete attendance")
		return
	}

	h.auditService.Log("attendance.delete", "attendance",
		fmt.Sprintf("attendance_id=%d", id))

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Attendance deleted"})
}
