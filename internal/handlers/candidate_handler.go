package handlers

import (
	"encoding/json"
	"net/http"

	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
	"selecao-backend/internal/service"
)

// CandidateHandler handles candidate management requests
type CandidateHandler struct {
	candidateRepo *repository.CandidateRepository
	auditService  *service.AuditService
}

// NewCandidateHandler creates a new candidate handler
func NewCandidateHandler(candidateRepo *repository.CandidateRepository, auditService *service.AuditService) *CandidateHandler {
	return &CandidateHandler{
		candidateRepo: candidateRepo,
		auditService:  auditService,
	}
}

type candidateRequest struct {
	Name  string  `json:"name" validate:"required,min=2,max=120"`
	Email *string `json:"email" validate:"omitempty,email"`
	CPF   *string `json:"cpf" validate:"omitempty,len=11"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
	Grade *string `json:"grade" validate:"omitempty,max=40"`
	Notes *string `json:"notes"`
}

// List lists all candidates
// @Summary List candidates
// @Description Get all registered candidates
// @Tags Candidates
// @Produce json
// @Success 200 {array} models.Candidate
// @Failure 500 {object} map[string]string "Internal error"
// @Router /candidates [get]
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidateRepo.GetAll()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list candidates")
		return
	}

	respondWithJSON(w, http.StatusOK, candidates)
}

// Get gets one candidate by id
// @Summary Get candidate
// @Description Get a single candidate by id
// @Tags Candidates
// @Produce json
// @Param id path int true "Candidate ID"
// @Success 200 {object} models.Candidate
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Not found"
// @Router /candidates/{id} [get]
func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	candidate, err := h.candidateRepo.GetByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load candidate")
		return
	}
	if candidate == nil {
		respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
		return
	}

	respondWithJSON(w, http.StatusOK, candidate)
}

// Create registers a new candidate
// @Summary Create candidate
// @Description Register a new candidate
// @Tags Candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body candidateRequest true "Candidate data"
// @Success 201 {object} models.Candidate
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /candidates [post]
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req candidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	candidate := &models.Candidate{
		Name:  req.Name,
		Email: req.Email,
		CPF:   req.CPF,
		Phone: req.Phone,
		Grade: req.Grade,
		Notes: req.Notes,
	}

	if err := h.candidateRepo.Create(candidate); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	h.auditService.Log("candidate.create", "candidates",
		"candidate created: "+candidate.Name)

	respondWithJSON(w, http.StatusCreated, candidate)
}

// Update edits a candidate
// @Summary Update candidate
// @Description Update an existing candidate
// @Tags Candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate ID"
// @Param request body candidateRequest true "Candidate data"
// @Success 200 {object} models.Candidate
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Not found"
// @Router /candidates/{id} [put]
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	var req candidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	existing, err := h.candidateRepo.GetByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load candidate")
		return
	}
	if existing == nil {
		respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
		return
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.CPF = req.CPF
	existing.Phone = req.Phone
	existing.Grade = req.Grade
	existing.Notes = req.Notes

	if err := h.candidateRepo.Update(existing); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to update candidate")
		return
	}

	h.auditService.Log("candidate.update", "candidates",
		"candidate updated: "+existing.Name)

	respondWithJSON(w, http.StatusOK, existing)
}

// Delete removes a candidate and their team memberships
// @Summary Delete candidate
// @Description Delete a candidate; their team memberships are removed too
// @Tags Candidates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Not found"
// @Router /candidates/{id} [delete]
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	existing, err := h.candidateRepo.GetByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load candidate")
		return
	}
	if existing == nil {
		respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
		return
	}

	if err := h.candidateRepo.Delete(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to delete candidate")
		return
	}

	h.auditService.Log("candidate.delete", "candidates",
		"candidate deleted: "+existing.Name)

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Candidate deleted"})
}
