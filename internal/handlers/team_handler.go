package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
	"selecao-backend/internal/service"
)

// TeamHandler handles team management requests
type TeamHandler struct {
	teamRepo    *repository.TeamRepository
	teamService *service.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamRepo *repository.TeamRepository, teamService *service.TeamService) *TeamHandler {
	return &TeamHandler{
		teamRepo:    teamRepo,
		teamService: teamService,
	}
}

type teamRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Competition string `json:"competition" validate:"required,oneof=OBR TBR CCBB"`
	IsVeteran   bool   `json:"is_veteran"`
}

// List lists all teams
// @Summary List teams
// @Description Get all teams
// @Tags Teams
// @Produce json
// @Success 200 {array} models.Team
// @Failure 500 {object} map[string]string "Internal error"
// @Router /teams [get]
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamRepo.GetAll()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list teams")
		return
	}

	respondWithJSON(w, http.StatusOK, teams)
}

// Get gets one team by id
// @Summary Get team
// @Description Get a single team by id
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} models.Team
// @Failure 404 {object} map[string]string "Not found"
// @Router /teams/{id} [get]
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	team, err := h.teamRepo.GetByID(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load team")
		return
	}
	if team == nil {
		respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
		return
	}

	respondWithJSON(w, http.StatusOK, team)
}

// Create registers a new team
// @Summary Create team
// @Description Create a new competition team
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body teamRequest true "Team data"
// @Success 201 {object} models.Team
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /teams [post]
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	team := &models.Team{
		Name:        req.Name,
		Competition: req.Competition,
		IsVeteran:   req.IsVeteran,
	}

	if err := h.teamService.Create(team); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create team")
		return
	}

	respondWithJSON(w, http.StatusCreated, team)
}

// Update edits a team
// @Summary Update team
// @Description Update an existing team
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param request body teamRequest true "Team data"
// @Success 200 {object} models.Team
// @Failure 404 {object} map[string]string "Not found"
// @Router /teams/{id} [put]
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	team := &models.Team{
		ID:          id,
		Name:        req.Name,
		Competition: req.Competition,
		IsVeteran:   req.IsVeteran,
	}

	if err := h.teamService.Update(team); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to update team")
		return
	}

	respondWithJSON(w, http.StatusOK, team)
}

// Delete removes a team and unlinks its members
// @Summary Delete team
// @Description Delete a team; its memberships are unlinked, candidates are kept
// @Tags Teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} map[string]string "Not found"
// @Router /teams/{id} [delete]
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	if err := h.teamService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete team")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Team deleted"})
}

// Members lists the members of a team
// @Summary List team members
// @Description Get the candidates linked to a team
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {array} models.Candidate
// @Failure 400 {object} map[string]string "Invalid id"
// @Router /teams/{id}/members [get]
func (h *TeamHandler) Members(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	members, err := h.teamRepo.GetMembers(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list members")
		return
	}

	respondWithJSON(w, http.StatusOK, members)
}

// AddMember links a candidate to a team
// @Summary Add team member
// @Description Link a candidate to a team
// @Tags Teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param candidateId path int true "Candidate ID"
// @Success 200 {object} map[string]string "Added"
// @Failure 404 {object} map[string]string "Not found"
// @Router /teams/{id}/members/{candidateId} [post]
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}
	candidateID, ok := pathID(r, "candidateId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	if err := h.teamService.AddMember(teamID, candidateID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to add member")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Member added"})
}

// RemoveMember unlinks a candidate from a team
// @Summary Remove team member
// @Description Unlink a candidate from a team
// @Tags Teams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Team ID"
// @Param candidateId path int true "Candidate ID"
// @Success 200 {object} map[string]string "Removed"
// @Failure 400 {object} map[string]string "Invalid id"
// @Router /teams/{id}/members/{candidateId} [delete]
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}
	candidateID, ok := pathID(r, "candidateId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	if err := h.teamService.RemoveMember(teamID, candidateID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to remove member")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Member removed"})
}

// AutoAssign distributes unassigned candidates into new teams
// @Summary Auto-assign candidates
// @Description Distribute every unassigned candidate into new teams of the given size
// @Tags Teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object true "Assignment options (size)"
// @Success 200 {object} map[string]int "Teams created"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /teams/auto-assign [post]
func (h *TeamHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Size int `json:"size" validate:"required,min=1,max=10"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	created, err := h.teamService.AutoAssignBySize(req.Size)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to auto-assign candidates")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"teams_created": created})
}
