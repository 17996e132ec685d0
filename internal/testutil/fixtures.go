package testutil

import (
	"database/sql"
	"testing"

	"selecao-backend/internal/models"
)

// Fixtures holds test data
type Fixtures struct {
	DB        *sql.DB
	Team      *models.Team
	Session   *models.TrainingSession
	Candidate *models.Candidate
}

// SetupFixtures creates a team with one member and one training session
func SetupFixtures(t *testing.T, db *sql.DB) *Fixtures {
	t.Helper()

	fixtures := &Fixtures{DB: db}

	fixtures.Team = createTeam(t, db, "Equipe Teste", models.CompetitionOBR)
	fixtures.Candidate = createCandidate(t, db, "Candidato Teste")
	fixtures.Session = createSession(t, db, "2026-03-10", "14:00", "16:00")

	addMember(t, db, fixtures.Team.ID, fixtures.Candidate.ID)

	return fixtures
}

func createTeam(t *testing.T, db *sql.DB, name, competition string) *models.Team {
	t.Helper()

	team := &models.Team{Name: name, Competition: competition}
	err := db.QueryRow(
		`INSERT INTO teams (name, competition) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		name, competition,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create team fixture: %v", err)
	}

	return team
}

func createCandidate(t *testing.T, db *sql.DB, name string) *models.Candidate {
	t.Helper()

	candidate := &models.Candidate{Name: name}
	err := db.QueryRow(
		`INSERT INTO candidates (name) VALUES ($1) RETURNING id, created_at, updated_at`,
		name,
	).Scan(&candidate.ID, &candidate.CreatedAt, &candidate.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create candidate fixture: %v", err)
	}

	return candidate
}

func createSession(t *testing.T, db *sql.DB, date, startTime, endTime string) *models.TrainingSession {
	t.Helper()

	session := &models.TrainingSession{Date: date, StartTime: startTime, EndTime: endTime}
	err := db.QueryRow(
		`INSERT INTO training_sessions (date, start_time, end_time) VALUES ($1, $2, $3) RETURNING id, created_at`,
		date, startTime, endTime,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create session fixture: %v", err)
	}

	return session
}

func addMember(t *testing.T, db *sql.DB, teamID, candidateID uint) {
	t.Helper()

	if _, err := db.Exec(
		`INSERT INTO team_members (team_id, candidate_id) VALUES ($1, $2)`,
		teamID, candidateID,
	); err != nil {
		t.Fatalf("Failed to add member fixture: %v", err)
	}
}
