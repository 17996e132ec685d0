package service

import (
	"fmt"
	"log/slog"
	"sort"

	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
)

// Penalty applied to a team's final score when attendance is enabled and
// its presence ratio falls below the threshold.
const (
	presencePenaltyFactor    = 0.9
	presencePenaltyThreshold = 0.75
)

// Weights holds the internal weights of the hidden-score formula
type Weights struct {
	Immersion    float64
	Development  float64
	Presentation float64
}

// ComputeHiddenScore computes the weighted hidden score from the raw
// judge scores. Missing raw scores count as 0.
func ComputeHiddenScore(immersion, development, presentation *int, w Weights) float64 {
	return float64(intOrZero(immersion))*w.Immersion +
		float64(intOrZero(development))*w.Development +
		float64(intOrZero(presentation))*w.Presentation
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// ScoringService runs the scoring and ranking pipeline: hidden-score
// recomputation, member projection, team summaries and rank assignment
type ScoringService struct {
	evalRepo       *repository.EvaluationRepository
	weightRepo     *repository.WeightRepository
	contribRepo    *repository.ContributionRepository
	candidateRepo  *repository.CandidateRepository
	teamRepo       *repository.TeamRepository
	attendanceRepo *repository.AttendanceRepository
	auditService   *AuditService
}

// NewScoringService creates a new scoring service
func NewScoringService(
	evalRepo *repository.EvaluationRepository,
	weightRepo *repository.WeightRepository,
	contribRepo *repository.ContributionRepository,
	candidateRepo *repository.CandidateRepository,
	teamRepo *repository.TeamRepository,
	attendanceRepo *repository.AttendanceRepository,
	auditService *AuditService,
) *ScoringService {
	return &ScoringService{
		evalRepo:       evalRepo,
		weightRepo:     weightRepo,
		contribRepo:    contribRepo,
		candidateRepo:  candidateRepo,
		teamRepo:       teamRepo,
		attendanceRepo: attendanceRepo,
		auditService:   auditService,
	}
}

// CurrentWeights loads the internal weights. A missing name defaults to
// 1.0 so a recompute never fails on an incomplete weight table.
func (s *ScoringService) CurrentWeights() (Weights, error) {
	return loadWeights(s.weightRepo)
}

func loadWeights(weightRepo *repository.WeightRepository) (Weights, error) {
	stored, err := weightRepo.GetAll()
	if err != nil {
		return Weights{}, fmt.Errorf("failed to load internal weights: %w", err)
	}
	return Weights{
		Immersion:    weightOrDefault(stored, models.WeightImmersion),
		Development:  weightOrDefault(stored, models.WeightDevelopment),
		Presentation: weightOrDefault(stored, models.WeightPresentation),
	}, nil
}

func weightOrDefault(stored map[string]float64, name string) float64 {
	if w, ok := stored[name]; ok {
		return w
	}
	return 1.0
}

// RecomputeHiddenScores recomputes the hidden score of every active
// evaluation from the current weights, in one transaction. The
// recomputation is total and idempotent; it overwrites any manual
// override. Returns the number of evaluations updated.
func (s *ScoringService) RecomputeHiddenScores() (int, error) {
	weights, err := s.CurrentWeights()
	if err != nil {
		return 0, err
	}

	updated, err := s.evalRepo.RecomputeActiveScores(func(immersion, development, presentation *int) float64 {
		return ComputeHiddenScore(immersion, development, presentation, weights)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to recompute hidden scores: %w", err)
	}

	slog.Info("Hidden scores recomputed", "evaluations", updated)
	s.auditService.Log("scores.recompute", "evaluations",
		fmt.Sprintf("recomputed %d active evaluations using internal weights", updated))

	return updated, nil
}

// OverrideHiddenScore sets an evaluation's hidden score directly,
// bypassing the formula. The justification is mandatory and recorded to
// the audit trail. The override survives until the next full recompute.
func (s *ScoringService) OverrideHiddenScore(evaluationID uint, score float64, reason string) error {
	if reason == "" {
		return fmt.Errorf("a justification is required for a manual score override")
	}
	if score < 0 {
		return fmt.Errorf("hidden score must not be negative")
	}

	eval, err := s.evalRepo.GetByID(evaluationID)
	if err != nil {
		return fmt.Errorf("failed to load evaluation: %w", err)
	}
	if eval == nil {
		return fmt.Errorf("evaluation %d: %w", evaluationID, ErrNotFound)
	}

	if err := s.evalRepo.SetHiddenScore(evaluationID, score); err != nil {
		return fmt.Errorf("failed to override hidden score: %w", err)
	}

	s.auditService.Log("scores.manual_override", "evaluations",
		fmt.Sprintf("evaluation_id=%d, new_score=%.3f, reason=%q", evaluationID, score, reason))

	return nil
}

// SummarizeTeams produces the team-level summary: average hidden score
// over active evaluations (left-join semantics, so teams without
// evaluations appear with zeros), presence percentage, and the
// attendance-adjusted final score. Rows are ordered by the pre-penalty
// average, descending.
func (s *ScoringService) SummarizeTeams(penaltyEnabled bool) ([]models.TeamSummary, error) {
	averages, err := s.teamRepo.GetActiveEvalAverages()
	if err != nil {
		return nil, fmt.Errorf("failed to load team averages: %w", err)
	}

	presence, err := s.attendanceRepo.GetPresenceRatios()
	if err != nil {
		return nil, fmt.Errorf("failed to load presence ratios: %w", err)
	}

	return BuildTeamSummaries(averages, presence, penaltyEnabled), nil
}

// BuildTeamSummaries applies the presence penalty to the per-team
// averages. Teams without attendance rows report 0% presence.
func BuildTeamSummaries(averages []repository.TeamAverage, presence map[uint]float64, penaltyEnabled bool) []models.TeamSummary {
	summaries := make([]models.TeamSummary, 0, len(averages))
	for _, avg := range averages {
		ratio := presence[avg.TeamID]
		final := avg.AvgHidden
		if penaltyEnabled && ratio < presencePenaltyThreshold {
			final *= presencePenaltyFactor
		}
		summaries = append(summaries, models.TeamSummary{
			TeamID:      avg.TeamID,
			Name:        avg.Name,
			AvgHidden:   avg.AvgHidden,
			PresencePct: ratio * 100.0,
			FinalScore:  final,
		})
	}
	return summaries
}

// ProjectMemberScores aggregates each member's score across every
// evaluation they contributed to: hidden_score × contribution weight,
// summed. A contribution against an inactive or missing evaluation adds
// 0.0; a nil weight counts as 1.0. Members with no contributions are
// excluded. Results are enriched with the candidate name and a current
// team label.
func (s *ScoringService) ProjectMemberScores() ([]models.MemberScore, error) {
	evalScores, err := s.evalRepo.GetActiveScores()
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluation scores: %w", err)
	}

	contributions, err := s.contribRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load contributions: %w", err)
	}

	names, err := s.candidateRepo.GetNames()
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate names: %w", err)
	}

	teams, err := s.candidateRepo.GetMemberTeams()
	if err != nil {
		return nil, fmt.Errorf("failed to load member teams: %w", err)
	}

	return ProjectScores(evalScores, contributions, names, teams), nil
}

// ProjectScores folds the contribution set into one aggregate score per
// member. The fold is commutative; iteration order does not affect the
// result beyond floating-point association.
func ProjectScores(
	evalScores map[uint]float64,
	contributions []models.MemberContribution,
	names map[uint]string,
	teams map[uint]string,
) []models.MemberScore {
	type aggregate struct {
		total float64
		count int
	}
	totals := make(map[uint]*aggregate)

	for _, contribution := range contributions {
		agg, ok := totals[contribution.MemberID]
		if !ok {
			agg = &aggregate{}
			totals[contribution.MemberID] = agg
		}

		weight := 1.0
		if contribution.Weight != nil {
			weight = *contribution.Weight
		}

		// Deleted evaluations contribute 0.0 rather than failing the fold
		agg.total += evalScores[contribution.EvaluationID] * weight
		agg.count++
	}

	scores := make([]models.MemberScore, 0, len(totals))
	for memberID, agg := range totals {
		if agg.count == 0 {
			continue
		}

		name, ok := names[memberID]
		if !ok {
			name = fmt.Sprintf("Candidato ID %d", memberID)
		}
		team, ok := teams[memberID]
		if !ok {
			team = "Sem equipe"
		}

		scores = append(scores, models.MemberScore{
			MemberID:   memberID,
			Name:       name,
			Team:       team,
			TotalScore: agg.total,
			EvalCount:  agg.count,
		})
	}

	// Stable output order for map iteration
	sort.Slice(scores, func(i, j int) bool {
		return scores[i].MemberID < scores[j].MemberID
	})

	return scores
}

// AssignRanks sorts member scores descending and assigns a 1-based rank
// and a final status by the configured thresholds. Ties are broken by
// ascending member id so repeated runs produce the same order.
func AssignRanks(scores []models.MemberScore, approvedCount, waitlistCount int) []models.RankedMember {
	sorted := make([]models.MemberScore, len(scores))
	copy(sorted, scores)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TotalScore != sorted[j].TotalScore {
			return sorted[i].TotalScore > sorted[j].TotalScore
		}
		return sorted[i].MemberID < sorted[j].MemberID
	})

	ranked := make([]models.RankedMember, 0, len(sorted))
	for i, score := range sorted {
		rank := i + 1

		var status string
		switch {
		case rank <= approvedCount:
			status = models.StatusApproved
		case rank <= approvedCount+waitlistCount:
			status = models.StatusWaitlisted
		default:
			status = models.StatusRejected
		}

		ranked = append(ranked, models.RankedMember{
			MemberScore: score,
			Rank:        rank,
			Status:      status,
		})
	}

	return ranked
}

// Ranking projects member scores and assigns ranks in one call
func (s *ScoringService) Ranking(approvedCount, waitlistCount int) ([]models.RankedMember, error) {
	scores, err := s.ProjectMemberScores()
	if err != nil {
		return nil, err
	}
	return AssignRanks(scores, approvedCount, waitlistCount), nil
}
