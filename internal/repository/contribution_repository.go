package repository

import (
	"database/sql"

	"selecao-backend/internal/models"
)

// ContributionRepository handles database operations for member contributions
type ContributionRepository struct {
	db *sql.DB
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(db *sql.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// Upsert saves a contribution. Re-saving against an existing
// (evaluation, member) pair overwrites weight and note in place.
func (r *ContributionRepository) Upsert(contribution *models.MemberContribution) error {
	query := `
		INSERT INTO member_contribution (evaluation_id, member_id, weight, note)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (evaluation_id, member_id)
		DO UPDATE SET weight = EXCLUDED.weight, note = EXCLUDED.note, updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRow(
		query,
		contribution.EvaluationID,
		contribution.MemberID,
		contribution.Weight,
		contribution.Note,
	).Scan(&contribution.ID, &contribution.CreatedAt, &contribution.UpdatedAt)
}

// GetByEvaluation retrieves the contributions recorded for one evaluation
func (r *ContributionRepository) GetByEvaluation(evaluationID uint) ([]models.MemberContribution, error) {
	query := `
		SELECT id, evaluation_id, member_id, weight, note, created_at, updated_at
		FROM member_contribution
		WHERE evaluation_id = $1
		ORDER BY member_id
	`

	rows, err := r.db.Query(query, evaluationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContributions(rows)
}

// GetAll retrieves every contribution row
func (r *ContributionRepository) GetAll() ([]models.MemberContribution, error) {
	query := `
		SELECT id, evaluation_id, member_id, weight, note, created_at, updated_at
		FROM member_contribution
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContributions(rows)
}

func scanContributions(rows *sql.Rows) ([]models.MemberContribution, error) {
	contributions := []models.MemberContribution{}
	for rows.Next() {
		var contribution models.MemberContribution
		err := rows.Scan(
			&contribution.ID,
			&contribution.EvaluationID,
			&contribution.MemberID,
			&contribution.Weight,
			&contribution.Note,
			&contribution.CreatedAt,
			&contribution.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, contribution)
	}

	return contributions, rows.Err()
}
