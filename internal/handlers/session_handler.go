package handlers

import (
	"encoding/json"
	"net/http"

	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
	"selecao-backend/internal/service"
)

// SessionHandler handles training session requests
type SessionHandler struct {
	sessionRepo  *repository.SessionRepository
	auditService *service.AuditService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionRepo *repository.SessionRepository, auditService *service.AuditService) *SessionHandler {
	return &SessionHandler{
		sessionRepo:  sessionRepo,
		auditService: auditService,
	}
}

type sessionRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

// List lists all training sessions
// @Summary List training sessions
// @Description Get all training sessions ordered by date
// @Tags Sessions
// @Produce json
// @Success 200 {array} models.TrainingSession
// @Failure 500 {object} map[string]string "Internal error"
// @Router /sessions [get]
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionRepo.GetAll()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	respondWithJSON(w, http.StatusOK, sessions)
}

// Create schedules a new training session
// @Summary Create training session
// @Description Schedule a training session (date YYYY-MM-DD, times HH:MM)
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body sessionRequest true "Session data"
// @Success 201 {object} models.TrainingSession
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /sessions [post]
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	session := &models.TrainingSession{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := h.sessionRepo.Create(session); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.auditService.Log("session.create", "training_sessions",
		"session scheduled: "+session.Date+" "+session.StartTime)

	respondWithJSON(w, http.StatusCreated, session)
}

// Update edits a training session
// @Summary Update training session
// @Description Update a training session's date or times
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Param request body sessionRequest true "Session data"
// @Success 200 {object} models.TrainingSession
// @Failure 404 {object} map[string]string "Not found"
// @Router /sessions/{id} [put]
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	existing, err := h.sessionRepo.GetByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if existing == nil {
		respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
		return
	}

	existing.Date = req.Date
	existing.StartTime = req.StartTime
	existing.EndTime = req.EndTime

	if err := h.sessionRepo.Update(existing); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update session")
		return
	}

	h.auditService.Log("session.update", "training_sessions",
		"session updated: "+existing.Date)

	respondWithJSON(w, http.StatusOK, existing)
}

// Delete removes a training session
// @Summary Delete training session
// @Description Delete a training session and its attendance records
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	existing, err := h.sessionRepo.GetByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if existing == nil {
		respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
		return
	}

	if err := h.sessionRepo.Delete(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	h.auditService.Log("session.delete", "training_sessions",
		"session deleted: "+existing.Date)

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Session deleted"})
}
