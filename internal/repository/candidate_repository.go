package repository

import (
	"database/sql"
	"fmt"

	"selecao-backend/internal/models"
)

// CandidateRepository handles database operations for candidates
type CandidateRepository struct {
	db *sql.DB
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// Create inserts a new candidate
func (r *CandidateRepository) Create(candidate *models.Candidate) error {
	query := `
		INSERT INTO candidates (name, email, cpf, phone, grade, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRow(
		query,
		candidate.Name,
		candidate.Email,
		candidate.CPF,
		candidate.Phone,
		candidate.Grade,
		candidate.Notes,
	).Scan(&candidate.ID, &candidate.CreatedAt, &candidate.UpdatedAt)
}

// GetByID retrieves a candidate by ID
func (r *CandidateRepository) GetByID(id uint) (*models.Candidate, error) {
	query := `
		SELECT id, name, email, cpf, phone, grade, notes, created_at, updated_at
		FROM candidates
		WHERE id = $1
	`

	candidate := &models.Candidate{}
	err := r.db.QueryRow(query, id).Scan(
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

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return candidate, err
}

// GetAll retrieves all candidates ordered by id
func (r *CandidateRepository) GetAll() ([]models.Candidate, error) {
	query := `
		SELECT id, name, email, cpf, phone, grade, notes, created_at, updated_at
		FROM candidates
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
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
		candidates = append(candidates, candidate)
	}

	return candidates, rows.Err()
}

// Update updates a candidate's fields
func (r *CandidateRepository) Update(candidate *models.Candidate) error {
	query := `
		UPDATE candidates
		SET name = $1, email = $2, cpf = $3, phone = $4, grade = $5, notes = $6,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING updated_at
	`

	err := r.db.QueryRow(
		query,
		candidate.Name,
		candidate.Email,
		candidate.CPF,
		candidate.Phone,
		candidate.Grade,
		candidate.Notes,
		candidate.ID,
	).Scan(&candidate.UpdatedAt)

	if err == sql.ErrNoRows {
		return fmt.Errorf("candidate %d not found", candidate.ID)
	}

	return err
}

// Delete removes a candidate and its team memberships (hard delete)
func (r *CandidateRepository) Delete(id uint) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM team_members WHERE candidate_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("candidate %d not found", id)
	}

	return tx.Commit()
}

// GetNames returns a map of candidate id to display name
func (r *CandidateRepository) GetNames() (map[uint]string, error) {
	rows, err := r.db.Query(`SELECT id, name FROM candidates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[uint]string)
	for rows.Next() {
		var id uint
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}

	return names, rows.Err()
}

// GetMemberTeams returns a map of candidate id to a team label. A member
// of several teams gets the team with the highest id; the rule is the
// same everywhere a "current team" label is shown.
func (r *CandidateRepository) GetMemberTeams() (map[uint]string, error) {
	query := `
		SELECT DISTINCT ON (tm.candidate_id) tm.candidate_id, t.name
		FROM team_members tm
		JOIN teams t ON tm.team_id = t.id
		ORDER BY tm.candidate_id, tm.team_id DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make(map[uint]string)
	for rows.Next() {
		var id uint
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		teams[id] = name
	}

	return teams, rows.Err()
}

// GetUnassignedIDs returns ids of candidates without any team membership
func (r *CandidateRepository) GetUnassignedIDs() ([]uint, error) {
	query := `
		SELECT id FROM candidates
		WHERE id NOT IN (SELECT candidate_id FROM team_members)
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Count returns the number of registered candidates
func (r *CandidateRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM candidates`).Scan(&count)
	return count, err
}
