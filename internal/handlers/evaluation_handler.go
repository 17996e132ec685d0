package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"selecao-backend/internal/models"
	"selecao-backend/internal/service"
)

// EvaluationHandler handles evaluation lifecycle and contribution requests
type EvaluationHandler struct {
	evalService *service.EvaluationService
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evalService *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{
		evalService: evalService,
	}
}

type evaluationRequest struct {
	TeamID            uint    `json:"team_id" validate:"required"`
	TrainingSessionID uint    `json:"training_session_id" validate:"required"`
	Judge             string  `json:"judge" validate:"max=80"`
	Immersion         *int    `json:"immersion" validate:"omitempty,min=1,max=4"`
	Development       *int    `json:"development" validate:"omitempty,min=1,max=4"`
	Presentation      *int    `json:"presentation" validate:"omitempty,min=1,max=4"`
	Comment           *string `json:"comment"`
}

type evaluationEditRequest struct {
	Immersion    *int    `json:"immersion" validate:"omitempty,min=1,max=4"`
	Development  *int    `json:"development" validate:"omitempty,min=1,max=4"`
	Presentation *int    `json:"presentation" validate:"omitempty,min=1,max=4"`
	Comment      *string `json:"comment"`
	Reason       string  `json:"reason" validate:"required,min=3"`
}

type reasonRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type contributionsRequest struct {
	Contributions []struct {
		MemberID uint    `json:"member_id" validate:"required"`
		Weight   float64 `json:"weight" validate:"required,min=0.1,max=1.2"`
		Note     string  `json:"note"`
	} `json:"contributions" validate:"required,min=1,dive"`
}

// List lists evaluations
// @Summary List evaluations
// @Description Get all evaluations; pass active=true to list only active ones
// @Tags Evaluations
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active evaluations"
// @Success 200 {array} models.Evaluation
// @Failure 500 {object} map[string]string "Internal error"
// @Router /evaluations [get]
func (h *EvaluationHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	evaluations, err := h.evalService.List(activeOnly)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list evaluations")
		return
	}

	respondWithJSON(w, http.StatusOK, evaluations)
}

// Get gets one evaluation by id
// @Summary Get evaluation
// @Description Get a single evaluation, active or not
// @Tags Evaluations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Success 200 {object} models.Evaluation
// @Failure 404 {object} map[string]string "Not found"
// @Router /evaluations/{id} [get]
func (h *EvaluationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	eval, err := h.evalService.Get(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load evaluation")
		return
	}
	if eval == nil {
		respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
		return
	}

	respondWithJSON(w, http.StatusOK, eval)
}

// Create registers a new evaluation
// @Summary Create evaluation
// @Description Register a judged evaluation; only one active evaluation per team and session
// @Tags Evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body evaluationRequest true "Evaluation data"
// @Success 201 {object} models.Evaluation
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Team or session not found"
// @Failure 409 {object} map[string]string "Duplicate active evaluation"
// @Router /evaluations [post]
func (h *EvaluationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	eval := &models.Evaluation{
		TeamID:            req.TeamID,
		TrainingSessionID: req.TrainingSessionID,
		Judge:             req.Judge,
		Immersion:         req.Immersion,
		Development:       req.Development,
		Presentation:      req.Presentation,
		Comment:           req.Comment,
	}

	if err := h.evalService.Create(eval); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
		case errors.Is(err, service.ErrDuplicateEvaluation):
			respondWithError(w, http.StatusConflict, "An active evaluation already exists for this team and session")
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to create evaluation")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, eval)
}

// Update edits the scores of an evaluation
// @Summary Update evaluation
// @Description Edit an evaluation's scores; a change reason is required
// @Tags Evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Param request body evaluationEditRequest true "New scores and reason"
// @Success 200 {object} models.Evaluation
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Not found"
// @Router /evaluations/{id} [put]
func (h *EvaluationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	var req evaluationEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	eval := &models.Evaluation{
		ID:           id,
		Immersion:    req.Immersion,
		Development:  req.Development,
		Presentation: req.Presentation,
		Comment:      req.Comment,
	}

	if err := h.evalService.UpdateScores(eval, req.Reason); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to update evaluation")
		return
	}

	respondWithJSON(w, http.StatusOK, eval)
}

// Deactivate deactivates an evaluation (reversible)
// @Summary Deactivate evaluation
// @Description Mark an evaluation inactive; it can be reactivated later
// @Tags Evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Param request body reasonRequest true "Deactivation reason"
// @Success 200 {object} map[string]string "Deactivated"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Not found"
// @Router /evaluations/{id}/deactivate [post]
func (h *EvaluationHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	if err := h.evalService.Deactivate(id, req.Reason); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Evaluation deactivated"})
}

// Reactivate restores a deactivated evaluation
// @Summary Reactivate evaluation
// @Description Restore a deactivated evaluation; permanently deleted ones stay deleted
// @Tags Evaluations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Success 200 {object} map[string]string "Reactivated"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 409 {object} map[string]string "Cannot reactivate"
// @Router /evaluations/{id}/reactivate [post]
func (h *EvaluationHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	if err := h.evalService.Reactivate(id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
		case errors.Is(err, service.ErrPermanentlyDeleted),
			errors.Is(err, service.ErrDuplicateEvaluation),
			errors.Is(err, service.ErrAlreadyActive):
			respondWithError(w, http.StatusConflict, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to reactivate evaluation")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Evaluation reactivated"})
}

// Delete permanently deletes an evaluation
// @Summary Delete evaluation
// @Description Permanently delete an evaluation; the row is kept for history but can never be reactivated
// @Tags Evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Param request body reasonRequest true "Deletion reason"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Not found"
// @Router /evaluations/{id} [delete]
func (h *EvaluationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	if err := h.evalService.Delete(id, req.Reason); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete evaluation")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Evaluation deleted"})
}

// Contributions lists the contributions of an evaluation
// @Summary List contributions
// @Description Get the member contributions recorded for an evaluation
// @Tags Evaluations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Success 200 {array} models.MemberContribution
// @Failure 400 {object} map[string]string "Invalid id"
// @Router /evaluations/{id}/contributions [get]
func (h *EvaluationHandler) Contributions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	contributions, err := h.evalService.Contributions(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list contributions")
		return
	}

	respondWithJSON(w, http.StatusOK, contributions)
}

// SaveContributions upserts the contributions of an evaluation
// @Summary Save contributions
// @Description Upsert member contribution weights for an evaluation; weights must be in [0.1, 1.2]
// @Tags Evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Param request body contributionsRequest true "Contribution entries"
// @Success 200 {object} map[string]string "Saved"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Not found"
// @Router /evaluations/{id}/contributions [put]
func (h *EvaluationHandler) SaveContributions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	var req contributionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	entries := make([]service.ContributionEntry, 0, len(req.Contributions))
	for _, c := range req.Contributions {
		entries = append(entries, service.ContributionEntry{
			MemberID: c.MemberID,
			Weight:   c.Weight,
			Note:     c.Note,
		})
	}

	if err := h.evalService.SaveContributions(id, entries); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
		case errors.Is(err, service.ErrWeightOutOfRange):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to save contributions")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Contributions saved"})
}
