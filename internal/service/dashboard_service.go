package service

import (
	"fmt"

	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
)

// DashboardService aggregates the headline numbers of the process
type DashboardService struct {
	candidateRepo *repository.CandidateRepository
	teamRepo      *repository.TeamRepository
	evalRepo      *repository.EvaluationRepository
	settingsRepo  *repository.SettingsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	candidateRepo *repository.CandidateRepository,
	teamRepo *repository.TeamRepository,
	evalRepo *repository.EvaluationRepository,
	settingsRepo *repository.SettingsRepository,
) *DashboardService {
	return &DashboardService{
		candidateRepo: candidateRepo,
		teamRepo:      teamRepo,
		evalRepo:      evalRepo,
		settingsRepo:  settingsRepo,
	}
}

// Cards returns the counters shown on the dashboard
func (s *DashboardService) Cards() (*models.DashboardCards, error) {
	candidates, err := s.candidateRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}

	teams, err := s.teamRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count teams: %w", err)
	}

	evaluations, err := s.evalRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count evaluations: %w", err)
	}

	status, err := s.settingsRepo.Get(models.SettingProcessStatus, models.ProcessOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to load process status: %w", err)
	}

	return &models.DashboardCards{
		Candidates:    candidates,
		Teams:         teams,
		Evaluations:   evaluations,
		ProcessStatus: status,
	}, nil
}

// StageAverages returns the per-criterion averages over active
// evaluations. A criterion with no scores yet comes back nil.
func (s *DashboardService) StageAverages() (*models.StageAverages, error) {
	return s.evalRepo.GetStageAverages()
}

// TeamAverages returns the average hidden score per team, best first
func (s *DashboardService) TeamAverages() ([]repository.TeamAverage, error) {
	return s.teamRepo.GetActiveEvalAverages()
}
