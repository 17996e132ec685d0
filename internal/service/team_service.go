package service

import (
	"fmt"

	"selecao-backend/internal/models"
	"selecao-backend/internal/repository"
)

// TeamService handles team management and membership
type TeamService struct {
	teamRepo      *repository.TeamRepository
	candidateRepo *repository.CandidateRepository
	auditService  *AuditService
}

// NewTeamService creates a new team service
func NewTeamService(
	teamRepo *repository.TeamRepository,
	candidateRepo *repository.CandidateRepository,
	auditService *AuditService,
) *TeamService {
	return &TeamService{
		teamRepo:      teamRepo,
		candidateRepo: candidateRepo,
		auditService:  auditService,
	}
}

// Create registers a new team
func (s *TeamService) Create(team *models.Team) error {
	if err := s.teamRepo.Create(team); err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	s.auditService.Log("team.create", "teams",
		fmt.Sprintf("team_id=%d, name=%q, competition=%s", team.ID, team.Name, team.Competition))

	return nil
}

// Update edits a team
func (s *TeamService) Update(team *models.Team) error {
	existing, err := s.teamRepo.GetByID(team.ID)
	if err != nil {
		return fmt.Errorf("failed to load team: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("team %d: %w", team.ID, ErrNotFound)
	}

	if err := s.teamRepo.Update(team); err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}

	s.auditService.Log("team.update", "teams", fmt.Sprintf("team_id=%d", team.ID))

	return nil
}

// Delete removes a team. Its memberships are unlinked in the same
// transaction; the candidates themselves are kept.
func (s *TeamService) Delete(id uint) error {
	existing, err := s.teamRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to load team: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("team %d: %w", id, ErrNotFound)
	}

	if err := s.teamRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	s.auditService.Log("team.delete", "teams",
		fmt.Sprintf("team_id=%d, name=%q", id, existing.Name))

	return nil
}

// AddMember links a candidate to a team
func (s *TeamService) AddMember(teamID, candidateID uint) error {
	team, err := s.teamRepo.GetByID(teamID)
	if err != nil {
		return fmt.Errorf("failed to load team: %w", err)
	}
	if team == nil {
		return fmt.Errorf("team %d: %w", teamID, ErrNotFound)
	}

	candidate, err := s.candidateRepo.GetByID(candidateID)
	if err != nil {
		return fmt.Errorf("failed to load candidate: %w", err)
	}
	if candidate == nil {
		return fmt.Errorf("candidate %d: %w", candidateID, ErrNotFound)
	}

	if err := s.teamRepo.AddMember(teamID, candidateID); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.auditService.Log("team.add_member", "team_members",
		fmt.Sprintf("team_id=%d, candidate_id=%d", teamID, candidateID))

	return nil
}

// RemoveMember unlinks a candidate from a team
func (s *TeamService) RemoveMember(teamID, candidateID uint) error {
	if err := s.teamRepo.RemoveMember(teamID, candidateID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.auditService.Log("team.remove_member", "team_members",
		fmt.Sprintf("team_id=%d, candidate_id=%d", teamID, candidateID))

	return nil
}

// AutoAssignBySize distributes every unassigned candidate into new teams
// of the given size. Teams are named sequentially after the existing
// count and registered for OBR. Returns the number of teams created.
func (s *TeamService) AutoAssignBySize(size int) (int, error) {
	if size < 1 {
		return 0, fmt.Errorf("team size must be at least 1")
	}

	unassigned, err := s.candidateRepo.GetUnassignedIDs()
	if err != nil {
		return 0, fmt.Errorf("failed to list unassigned candidates: %w", err)
	}
	if len(unassigned) == 0 {
		return 0, nil
	}

	existing, err := s.teamRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}

	created := 0
	for start := 0; start < len(unassigned); start += size {
		end := start + size
		if end > len(unassigned) {
			end = len(unassigned)
		}

		team := &models.Team{
			Name:        fmt.Sprintf("Equipe %d", existing+created+1),
			Competition: models.CompetitionOBR,
		}
		if err := s.teamRepo.Create(team); err != nil {
			return created, fmt.Errorf("failed to create team: %w", err)
		}

		for _, candidateID := range unassigned[start:end] {
			if err := s.teamRepo.AddMember(team.ID, candidateID); err != nil {
				return created, fmt.Errorf("failed to assign candidate %d: %w", candidateID, err)
			}
		}
		created++
	}

	s.auditService.Log("team.auto_assign", "teams",
		fmt.Sprintf("size=%d, teams_created=%d, candidates=%d", size, created, len(unassigned)))

	return created, nil
}
