package service

import (
	"errors"
	"fmt"

	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
)

// Sentinel errors mapped to HTTP codes by the handlers
var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateEvaluation = errors.New("an active evaluation already exists for this team and session")
	ErrReasonRequired      = errors.New("a reason is required")
	ErrPermanentlyDeleted  = errors.New("evaluation was permanently deleted and cannot be reactivated")
	ErrAlreadyActive       = errors.New("evaluation is already active")
	ErrWeightOutOfRange    = errors.New("contribution weight must be between 0.1 and 1.2")
)

// ContributionEntry is one member's share of an evaluation, as submitted
type ContributionEntry struct {
	MemberID uint
	Weight   float64
	Note     string
}

// EvaluationService handles the evaluation lifecycle and the
// contribution ledger
type EvaluationService struct {
	evalRepo     *repository.EvaluationRepository
	contribRepo  *repository.ContributionRepository
	teamRepo     *repository.TeamRepository
	sessionRepo  *repository.SessionRepository
	weightRepo   *repository.WeightRepository
	auditService *AuditService
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(
	evalRepo *repository.EvaluationRepository,
	contribRepo *repository.ContributionRepository,
	teamRepo *repository.TeamRepository,
	sessionRepo *repository.SessionRepository,
	weightRepo *repository.WeightRepository,
	auditService *AuditService,
) *EvaluationService {
	return &EvaluationService{
		evalRepo:     evalRepo,
		contribRepo:  contribRepo,
		teamRepo:     teamRepo,
		sessionRepo:  sessionRepo,
		weightRepo:   weightRepo,
		auditService: auditService,
	}
}

// Create registers a new evaluation. At most one active evaluation may
// exist per (team, session) pair; the check runs before the insert and
// the partial unique index backs it at the store level.
func (s *EvaluationService) Create(eval *models.Evaluation) error {
	team, err := s.teamRepo.GetByID(eval.TeamID)
	if err != nil {
		return fmt.Errorf("failed to load team: %w", err)
	}
	if team == nil {
		return fmt.Errorf("team %d: %w", eval.TeamID, ErrNotFound)
	}

	session, err := s.sessionRepo.GetByID(eval.TrainingSessionID)
	if err != nil {
		return fmt.Errorf("failed to load training session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("training session %d: %w", eval.TrainingSessionID, ErrNotFound)
	}

	exists, err := s.evalRepo.ActiveExists(eval.TeamID, eval.TrainingSessionID)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate evaluation: %w", err)
	}
	if exists {
		return ErrDuplicateEvaluation
	}

	if eval.Judge == "" {
		eval.Judge = "Anon"
	}

	weights, err := loadWeights(s.weightRepo)
	if err != nil {
		return err
	}
	eval.HiddenScore = ComputeHiddenScore(eval.Immersion, eval.Development, eval.Presentation, weights)

	if err := s.evalRepo.Create(eval); err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}

	s.auditService.Log("evaluation.create", "evaluations",
		fmt.Sprintf("evaluation_id=%d, team_id=%d, session_id=%d, judge=%q",
			eval.ID, eval.TeamID, eval.TrainingSessionID, eval.Judge))

	return nil
}

// UpdateScores edits the raw judge scores of an evaluation. The change
// reason is mandatory and recorded to the audit trail.
func (s *EvaluationService) UpdateScores(eval *models.Evaluation, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}

	existing, err := s.evalRepo.GetByID(eval.ID)
	if err != nil {
		return fmt.Errorf("failed to load evaluation: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("evaluation %d: %w", eval.ID, ErrNotFound)
	}

	weights, err := loadWeights(s.weightRepo)
	if err != nil {
		return err
	}
	eval.HiddenScore = ComputeHiddenScore(eval.Immersion, eval.Development, eval.Presentation, weights)

	if err := s.evalRepo.UpdateScores(eval); err != nil {
		return fmt.Errorf("failed to update evaluation: %w", err)
	}

	s.auditService.Log("evaluation.edit", "evaluations",
		fmt.Sprintf("evaluation_id=%d, reason=%q", eval.ID, reason))

	return nil
}

// Deactivate marks an evaluation inactive. The deactivation is
// reversible and requires a reason.
func (s *EvaluationService) Deactivate(id uint, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}

	eval, err := s.evalRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to load evaluation: %w", err)
	}
	if eval == nil {
		return fmt.Errorf("evaluation %d: %w", id, ErrNotFound)
	}
	if !eval.IsActive {
		return fmt.Errorf("evaluation %d is not active", id)
	}

	if err := s.evalRepo.Deactivate(id, models.DeleteKindDeactivated, reason); err != nil {
		return fmt.Errorf("failed to deactivate evaluation: %w", err)
	}

	s.auditService.Log("evaluation.deactivate", "evaluations",
		fmt.Sprintf("evaluation_id=%d, reason=%q", id, reason))

	return nil
}

// Reactivate restores a deactivated evaluation. Permanently deleted
// evaluations stay deleted.
func (s *EvaluationService) Reactivate(id uint) error {
	eval, err := s.evalRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to load evaluation: %w", err)
	}
	if eval == nil {
		return fmt.Errorf("evaluation %d: %w", id, ErrNotFound)
	}
	if eval.IsActive {
		return ErrAlreadyActive
	}
	if eval.DeleteKind != nil && *eval.DeleteKind == models.DeleteKindDeleted {
		return ErrPermanentlyDeleted
	}

	// Reactivating must not break the one-active-per-pair invariant
	exists, err := s.evalRepo.ActiveExists(eval.TeamID, eval.TrainingSessionID)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate evaluation: %w", err)
	}
	if exists {
		return ErrDuplicateEvaluation
	}

	if err := s.evalRepo.Reactivate(id); err != nil {
		return fmt.Errorf("failed to reactivate evaluation: %w", err)
	}

	s.auditService.Log("evaluation.reactivate", "evaluations",
		fmt.Sprintf("evaluation_id=%d", id))

	return nil
}

// Delete marks an evaluation as permanently deleted. The row is kept for
// history but can never be reactivated.
func (s *EvaluationService) Delete(id uint, reason string) error {
	if reason == "" {
		return ErrReasonRequired
	}

	eval, err := s.evalRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to load evaluation: %w", err)
	}
	if eval == nil {
		return fmt.Errorf("evaluation %d: %w", id, ErrNotFound)
	}

	if err := s.evalRepo.Deactivate(id, models.DeleteKindDeleted, reason); err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}

	s.auditService.Log("evaluation.delete", "evaluations",
		fmt.Sprintf("evaluation_id=%d, reason=%q", id, reason))

	return nil
}

// SaveContributions upserts the member contributions of one evaluation.
// Weights outside [0.1, 1.2] are rejected before any write.
func (s *EvaluationService) SaveContributions(evaluationID uint, entries []ContributionEntry) error {
	eval, err := s.evalRepo.GetByID(evaluationID)
	if err != nil {
		return fmt.Errorf("failed to load evaluation: %w", err)
	}
	if eval == nil {
		return fmt.Errorf("evaluation %d: %w", evaluationID, ErrNotFound)
	}

	for _, entry := range entries {
		if entry.Weight < 0.1 || entry.Weight > 1.2 {
			return fmt.Errorf("member %d: %w", entry.MemberID, ErrWeightOutOfRange)
		}
	}

	for _, entry := range entries {
		weight := entry.Weight
		contribution := &models.MemberContribution{
			EvaluationID: evaluationID,
			MemberID:     entry.MemberID,
			Weight:       &weight,
		}
		if entry.Note != "" {
			note := entry.Note
			contribution.Note = &note
		}
		if err := s.contribRepo.Upsert(contribution); err != nil {
			return fmt.Errorf("failed to save contribution for member %d: %w", entry.MemberID, err)
		}
	}

	s.auditService.Log("contribution.save", "member_contribution",
		fmt.Sprintf("evaluation_id=%d, count=%d", evaluationID, len(entries)))

	return nil
}

// Get loads one evaluation, active or not
func (s *EvaluationService) Get(id uint) (*models.Evaluation, error) {
	return s.evalRepo.GetByID(id)
}

// List returns all evaluations, optionally only the active ones
func (s *EvaluationService) List(activeOnly bool) ([]models.Evaluation, error) {
	return s.evalRepo.GetAll(activeOnly)
}

// Contributions lists the contributions recorded for one evaluation
func (s *EvaluationService) Contributions(evaluationID uint) ([]models.MemberContribution, error) {
	return s.contribRepo.GetByEvaluation(evaluationID)
}
