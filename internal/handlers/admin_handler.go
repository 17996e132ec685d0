package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"selecao-backend/internal/repository"
	"selecao-backend/internal/service"
)

// AdminHandler handles admin authentication and configuration requests
type AdminHandler struct {
	adminService *service.AdminService
	auditRepo    *repository.AuditRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService, auditRepo *repository.AuditRepository) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		auditRepo:    auditRepo,
	}
}

type loginRequest struct {
	PIN string `json:"pin" validate:"required,min=4,max=20"`
}

type changePINRequest struct {
	CurrentPIN string `json:"current_pin" validate:"required"`
	NewPIN     string `json:"new_pin" validate:"required,min=4,max=20"`
}

type processStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ABERTO ENCERRADO"`
}

type weightRequest struct {
	Name   string  `json:"name" validate:"required,oneof=immersion development presentation"`
	Weight float64 `json:"weight" validate:"required,min=0,max=10"`
}

// Login authenticates the admin PIN and issues a JWT
// @Summary Admin login
// @Description Verify the admin PIN and issue a bearer token
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body loginRequest true "Admin PIN"
// @Success 200 {object} map[string]interface{} "Token and expiry"
// @Failure 401 {object} map[string]string "Invalid PIN"
// @Router /admin/login [post]
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	token, expiresAt, err := h.adminService.Login(req.PIN, getIP(r))
	if err != nil {
		if errors.Is(err, service.ErrInvalidPIN) {
			respondWithError(w, http.StatusUnauthorized, "Invalid PIN")
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternal)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// ChangePIN replaces the admin PIN
// @Summary Change admin PIN
// @Description Replace the admin PIN; the current PIN must verify
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body changePINRequest true "Current and new PIN"
// @Success 200 {object} map[string]string "Changed"
// @Failure 401 {object} map[string]string "Invalid PIN"
// @Router /admin/pin [put]
func (h *AdminHandler) ChangePIN(w http.ResponseWriter, r *http.Request) {
	var req changePINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	if err := h.adminService.ChangePIN(req.CurrentPIN, req.NewPIN); err != nil {
		if errors.Is(err, service.ErrInvalidPIN) {
			respondWithError(w, http.StatusUnauthorized, "Invalid PIN")
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternal)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "PIN changed"})
}

// GetProcessStatus returns the current process status
// @Summary Get process status
// @Description Get the selection process status (ABERTO or ENCERRADO)
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]string "Current status"
// @Failure 500 {object} map[string]string "Internal error"
// @Router /admin/process-status [get]
func (h *AdminHandler) GetProcessStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.adminService.ProcessStatus()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternal)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": status})
}

// SetProcessStatus opens or closes the selection process
// @Summary Set process status
// @Description Open (ABERTO) or close (ENCERRADO) the selection process; while closed all mutating routes return 423
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body processStatusRequest true "New status"
// @Success 200 {object} map[string]string "Updated"
// @Failure 400 {object} map[string]string "Invalid status"
// @Router /admin/process-status [put]
func (h *AdminHandler) SetProcessStatus(w http.ResponseWriter, r *http.Request) {
	var req processStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	if err := h.adminService.SetProcessStatus(req.Status); err != nil {
		if errors.Is(err, service.ErrInvalidProcessStatus) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternal)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// ListWeights lists the internal scoring weights
// @Summary List internal weights
// @Description Get the internal weights used by the hidden-score formula
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.InternalWeight
// @Failure 500 {object} map[string]string "Internal error"
// @Router /admin/weights [get]
func (h *AdminHandler) ListWeights(w http.ResponseWriter, r *http.Request) {
	weights, err := h.adminService.Weights()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternal)
		return
	}

	respondWithJSON(w, http.StatusOK, weights)
}

// SetWeight updates one internal scoring weight
// @Summary Set internal weight
// @Description Update one internal weight; hidden scores change on the next recompute
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body weightRequest true "Weight name and value"
// @Success 200 {object} map[string]string "Updated"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /admin/weights [put]
func (h *AdminHandler) SetWeight(w http.ResponseWriter, r *http.Request) {
	var req weightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	if err := h.adminService.SetWeight(req.Name, req.Weight); err != nil {
		if errors.Is(err, service.ErrUnknownWeight) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternal)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Weight updated"})
}

// ListAuditLogs lists audit logs with pagination
// @Summary List audit logs
// @Description Get a paginated list of audit log entries, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} map[string]interface{} "Paginated audit logs"
// @Failure 500 {object} map[string]string "Internal error"
// @Router /admin/audit-logs [get]
func (h *AdminHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	page := 1
	limit := 50

	if raw := r.URL.Query().Get("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			page = p
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	offset := (page - 1) * limit

	total, err := h.auditRepo.Count()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to count audit logs")
		return
	}

	logs, err := h.auditRepo.GetAll(limit, offset)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list audit logs")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}
