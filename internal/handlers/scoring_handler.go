package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"selecao-backend/internal/service"
)

// ScoringHandler handles scoring, projection and ranking requests
type ScoringHandler struct {
	scoringService *service.ScoringService
	approvedCount  int
	waitlistCount  int
}

// NewScoringHandler creates a new scoring handler. The counts are the
// configured ranking cutoffs, overridable per request.
func NewScoringHandler(scoringService *service.ScoringService, approvedCount, waitlistCount int) *ScoringHandler {
	return &ScoringHandler{
		scoringService: scoringService,
		approvedCount:  approvedCount,
		waitlistCount:  waitlistCount,
	}
}

type overrideRequest struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason" validate:"required,min=3"`
}

// Recompute recomputes every active hidden score
// @Summary Recompute hidden scores
// @Description Recompute the hidden score of every active evaluation from the current weights
// @Tags Scoring
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int "Evaluations updated"
// @Failure 500 {object} map[string]string "Internal error"
// @Router /scoring/recompute [post]
func (h *ScoringHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	updated, err := h.scoringService.RecomputeHiddenScores()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to recompute scores")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

// Override sets the hidden score of one evaluation by hand
// @Summary Override hidden score
// @Description Manually override an evaluation's hidden score; a justification is required and the next recompute overwrites it
// @Tags Scoring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID"
// @Param request body overrideRequest true "Score and justification"
// @Success 200 {object} map[string]string "Overridden"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Not found"
// @Router /scoring/evaluations/{id}/override [post]
func (h *ScoringHandler) Override(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidID)
		return
	}

	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgInvalidRequestBody)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrMsgValidation)
		return
	}

	if err := h.scoringService.OverrideHiddenScore(id, req.Score, req.Reason); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, ErrMsgNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to override score")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Score overridden"})
}

// TeamSummary summarizes teams with the attendance penalty
// @Summary Team summaries
// @Description Get per-team average hidden score, presence ratio and penalized final score; pass penalty=false to disable the attendance penalty
// @Tags Scoring
// @Produce json
// @Security BearerAuth
// @Param penalty query bool false "Apply attendance penalty" default(true)
// @Success 200 {array} models.TeamSummary
// @Failure 500 {object} map[string]string "Internal error"
// @Router /scoring/teams [get]
func (h *ScoringHandler) TeamSummary(w http.ResponseWriter, r *http.Request) {
	penalty := r.URL.Query().Get("penalty") != "false"

	summaries, err := h.scoringService.SummarizeTeams(penalty)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to summarize teams")
		return
	}

	respondWithJSON(w, http.StatusOK, summaries)
}

// MemberScores projects team scores onto members
// @Summary Member score projection
// @Description Project active evaluation scores onto members through their contribution weights
// @Tags Scoring
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.MemberScore
// @Failure 500 {object} map[string]string "Internal error"
// @Router /scoring/members [get]
func (h *ScoringHandler) MemberScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.scoringService.ProjectMemberScores()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to project member scores")
		return
	}

	respondWithJSON(w, http.StatusOK, scores)
}

// Ranking assigns ranks and final statuses
// @Summary Final ranking
// @Description Rank members by projected score and assign final statuses; counts default to the configured cutoffs
// @Tags Scoring
// @Produce json
// @Security BearerAuth
// @Param approved query int false "Number of approved members"
// @Param waitlist query int false "Number of waitlisted members"
// @Success 200 {array} models.RankedMember
// @Failure 500 {object} map[string]string "Internal error"
// @Router /scoring/ranking [get]
func (h *ScoringHandler) Ranking(w http.ResponseWriter, r *http.Request) {
	approved, waitlist := h.rankingCounts(r)

	ranked, err := h.scoringService.Ranking(approved, waitlist)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build ranking")
		return
	}

	respondWithJSON(w, http.StatusOK, ranked)
}

func (h *ScoringHandler) rankingCounts(r *http.Request) (int, int) {
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
