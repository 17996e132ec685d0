package repository

import (
	"database/sql"
	"fmt"

	"selecao-backend/internal/models"
)

// EvaluationRepository handles database operations for evaluations
type EvaluationRepository struct {
	db *sql.DB
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *sql.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// Create inserts a new evaluation. The partial unique index on
// (team_id, training_session_id) WHERE is_active backs the
// duplicate-active guard at the store level.
func (r *EvaluationRepository) Create(eval *models.Evaluation) error {
	query := `
		INSERT INTO evaluations (team_id, training_session_id, judge, immersion, development, presentation, hidden_score, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, updated_at
	`

	return r.db.QueryRow(
		query,
		eval.TeamID,
		eval.TrainingSessionID,
		eval.Judge,
		eval.Immersion,
		eval.Development,
		eval.Presentation,
		eval.HiddenScore,
		eval.Comment,
	).Scan(&eval.ID, &eval.IsActive, &eval.CreatedAt, &eval.UpdatedAt)
}

// GetByID retrieves an evaluation by ID, active or not
func (r *EvaluationRepository) GetByID(id uint) (*models.Evaluation, error) {
	query := `
		SELECT id, team_id, training_session_id, judge, immersion, development, presentation,
		       hidden_score, comment, is_active, delete_kind, delete_reason, deleted_at,
		       created_at, updated_at
		FROM evaluations
		WHERE id = $1
	`

	eval := &models.Evaluation{}
	err := r.db.QueryRow(query, id).Scan(
		&eval.ID,
		&eval.TeamID,
		&eval.TrainingSessionID,
		&eval.Judge,
		&eval.Immersion,
		&eval.Development,
		&eval.Presentation,
		&eval.HiddenScore,
		&eval.Comment,
		&eval.IsActive,
		&eval.DeleteKind,
		&eval.DeleteReason,
		&eval.DeletedAt,
		&eval.CreatedAt,
		&eval.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return eval, err
}

// GetAll retrieves evaluations, newest first. When activeOnly is set,
// deactivated and deleted rows are skipped.
func (r *EvaluationRepository) GetAll(activeOnly bool) ([]models.Evaluation, error) {
	query := `
		SELECT id, team_id, training_session_id, judge, immersion, development, presentation,
		       hidden_score, comment, is_active, delete_kind, delete_reason, deleted_at,
		       created_at, updated_at
		FROM evaluations
	`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	evals := []models.Evaluation{}
	for rows.Next() {
		var eval models.Evaluation
		err := rows.Scan(
			&eval.ID,
			&eval.TeamID,
			&eval.TrainingSessionID,
			&eval.Judge,
			&eval.Immersion,
			&eval.Development,
			&eval.Presentation,
			&eval.HiddenScore,
			&eval.Comment,
			&eval.IsActive,
			&eval.DeleteKind,
			&eval.DeleteReason,
			&eval.DeletedAt,
			&eval.CreatedAt,
			&eval.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		evals = append(evals, eval)
	}

	return evals, rows.Err()
}

// ActiveExists reports whether an active evaluation already exists for
// the (team, session) pair
func (r *EvaluationRepository) ActiveExists(teamID, sessionID uint) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM evaluations WHERE team_id = $1 AND training_session_id = $2 AND is_active)`,
		teamID, sessionID,
	).Scan(&exists)
	return exists, err
}

// UpdateScores updates the raw judge scores and hidden score of an evaluation
func (r *EvaluationRepository) UpdateScores(eval *models.Evaluation) error {
	result, err := r.db.Exec(
		`UPDATE evaluations
		 SET immersion = $1, development = $2, presentation = $3, hidden_score = $4, comment = $5,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		eval.Immersion,
		eval.Development,
		eval.Presentation,
		eval.HiddenScore,
		eval.Comment,
		eval.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("evaluation %d not found", eval.ID)
	}

	return nil
}

// SetHiddenScore sets the hidden score of one evaluation
func (r *EvaluationRepository) SetHiddenScore(id uint, score float64) error {
	result, err := r.db.Exec(
		`UPDATE evaluations SET hidden_score = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		score, id,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("evaluation %d not found", id)
	}

	return nil
}

// Deactivate marks an evaluation inactive with a reason and kind.
// Kind "deactivated" is reversible, "deleted" is permanent.
func (r *EvaluationRepository) Deactivate(id uint, kind, reason string) error {
	result, err := r.db.Exec(
		`UPDATE evaluations
		 SET is_active = FALSE, delete_kind = $1, delete_reason = $2,
		     deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3`,
		kind, reason, id,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("evaluation %d not found", id)
	}

	return nil
}

// Reactivate clears the inactive state of an evaluation
func (r *EvaluationRepository) Reactivate(id uint) error {
	result, err := r.db.Exec(
		`UPDATE evaluations
		 SET is_active = TRUE, delete_kind = NULL, delete_reason = NULL,
		     deleted_at = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("evaluation %d not found", id)
	}

	return nil
}

// GetActiveScores returns a map of evaluation id to hidden score over
// active evaluations only
func (r *EvaluationRepository) GetActiveScores() (map[uint]float64, error) {
	rows, err := r.db.Query(`SELECT id, hidden_score FROM evaluations WHERE is_active`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[uint]float64)
	for rows.Next() {
		var id uint
		var score float64
		if err := rows.Scan(&id, &score); err != nil {
			return nil, err
		}
		scores[id] = score
	}

	return scores, rows.Err()
}

// RecomputeActiveScores recomputes the hidden score of every active
// evaluation from the given weights, in one transaction. Returns the
// number of evaluations updated.
func (r *EvaluationRepository) RecomputeActiveScores(compute func(immersion, development, presentation *int) float64) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT id, immersion, development, presentation FROM evaluations WHERE is_active`)
	if err != nil {
		return 0, err
	}

	type scored struct {
		id    uint
		score float64
	}
	var updates []scored

	for rows.Next() {
		var id uint
		var immersion, development, presentation *int
		if err := rows.Scan(&id, &immersion, &development, &presentation); err != nil {
			rows.Close()
			return 0, err
		}
		updates = append(updates, scored{id: id, score: compute(immersion, development, presentation)})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	for _, update := range updates {
		if _, err := tx.Exec(
			`UPDATE evaluations SET hidden_score = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
			update.score, update.id,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(updates), nil
}

// Count returns the total number of evaluations, active or not
func (r *EvaluationRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM evaluations`).Scan(&count)
	return count, err
}

// GetStageAverages returns the mean of each raw criterion over active
// evaluations; nil when there are no active evaluations
func (r *EvaluationRepository) GetStageAverages() (*models.StageAverages, error) {
	averages := &models.StageAverages{}
	err := r.db.QueryRow(
		`SELECT AVG(immersion), AVG(development), AVG(presentation) FROM evaluations WHERE is_active`,
	).Scan(&averages.Immersion, &averages.Development, &averages.Presentation)
	return averages, err
}
