package repository

import (
	"database/sql"
	"fmt"

	"selecao-backend/internal/models"
)

// TeamRepository handles database operations for teams and memberships
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create inserts a new team
func (r *TeamRepository) Create(team *models.Team) error {
	query := `
		INSERT INTO teams (name, competition, is_veteran)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRow(
		query,
		team.Name,
		team.Competition,
		team.IsVeteran,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(id uint) (*models.Team, error) {
	query := `
		SELECT id, name, competition, is_veteran, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	team := &models.Team{}
	err := r.db.QueryRow(query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Competition,
		&team.IsVeteran,
		&team.CreatedAt,
		&team.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return team, err
}

// GetAll retrieves all teams ordered by name
func (r *TeamRepository) GetAll() ([]models.Team, error) {
	query := `
		SELECT id, name, competition, is_veteran, created_at, updated_at
		FROM teams
		ORDER BY name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var team models.Team
		err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Competition,
			&team.IsVeteran,
			&team.CreatedAt,
			&team.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// Update updates a team's fields
func (r *TeamRepository) Update(team *models.Team) error {
	query := `
		UPDATE teams
		SET name = $1, competition = $2, is_veteran = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		team.Name,
		team.Competition,
		team.IsVeteran,
		team.ID,
	).Scan(&team.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("team %d not found", team.ID)
	}

	return err
}

// Delete removes a team. Memberships are deleted first so members are
// unlinked, never deleted.
func (r *TeamRepository) Delete(id uint) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM team_members WHERE team_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("team %d not found", id)
	}

	return tx.Commit()
}

// AddMember links a candidate to a team. A duplicate membership surfaces
// as a unique-violation error from the driver.
func (r *TeamRepository) AddMember(teamID, candidateID uint) error {
	_, err := r.db.Exec(
		`INSERT INTO team_members (team_id, candidate_id) VALUES ($1, $2)`,
		teamID, candidateID,
	)
	return err
}

// RemoveMember unlinks a candidate from a team
func (r *TeamRepository) RemoveMember(teamID, candidateID uint) error {
	result, err := r.db.Exec(
		`DELETE FROM team_members WHERE team_id = $1 AND candidate_id = $2`,
		teamID, candidateID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("membership (%d, %d) not found", teamID, candidateID)
	}

	return nil
}

// GetMembers retrieves the candidates belonging to a team
func (r *TeamRepository) GetMembers(teamID uint) ([]models.Candidate, error) {
	query := `
		SELECT c.id, c.name, c.email, c.cpf, c.phone, c.grade, c.notes,
		       c.created_at, c.updated_at
		FROM candidates c
		JOIN team_members tm ON tm.candidate_id = c.id
		WHERE tm.team_id = $1
		ORDER BY c.name
	`

	rows, err := r.db.Query(query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.Candidate{}
	for rows.Next() {
		var candidate models.Candidate
		err := rows.Scan(
			&candidate.ID,
			&candidate.Name,
			&candidate.Email,
			&candidate.CPF,
			&candidate.Phone,
			&candidate.Grade,
			&candidate.Notes,
			&candidate.CreatedAt,
			&candidate.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, candidate)
	}

	return members, rows.Err()
}

// Count returns the number of teams
func (r *TeamRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM teams`).Scan(&count)
	return count, err
}

// TeamAverage is one team's mean hidden score over its active evaluations
type TeamAverage struct {
	TeamID    uint    `json:"team_id"`
	Name      string  `json:"name"`
	AvgHidden float64 `json:"avg_hidden"`
}

// GetActiveEvalAverages returns every team with its average hidden score
// over active evaluations, 0.0 when the team has none (left join), ordered
// by average descending.
func (r *TeamRepository) GetActiveEvalAverages() ([]TeamAverage, error) {
	query := `
		SELECT t.id, t.name, COALESCE(AVG(e.hidden_score), 0.0) AS avg_hidden
		FROM teams t
		LEFT JOIN evaluations e ON e.team_id = t.id AND e.is_active
		GROUP BY t.id, t.name
		ORDER BY avg_hidden DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	averages := []TeamAverage{}
	for rows.Next() {
		var avg TeamAverage
		if err := rows.Scan(&avg.TeamID, &avg.Name, &avg.AvgHidden); err != nil {
			return nil, err
		}
		averages = append(averages, avg)
	}

	return averages, rows.Err()
}
