package repository

import (
	"database/sql"
	"fmt"

	"selecao-backend/internal/models"
)

// SessionRepository handles database operations for training sessions
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new training session repository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new training session
func (r *SessionRepository) Create(session *models.TrainingSession) error {
	query := `
		INSERT INTO training_sessions (date, start_time, end_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	return r.db.QueryRow(
		query,
		session.Date,
		session.StartTime,
		session.EndTime,
	).Scan(&session.ID, &session.CreatedAt)
}

// GetByID retrieves a training session by ID
func (r *SessionRepository) GetByID(id uint) (*models.TrainingSession, error) {
	query := `
		SELECT id, date, start_time, end_time, created_at
		FROM training_sessions
		WHERE id = $1
	`

	session := &models.TrainingSession{}
	err := r.db.QueryRow(query, id).Scan(
		&session.ID,
		&session.Date,
		&session.StartTime,
		&session.EndTime,
		&session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return session, err
}

// GetAll retrieves all training sessions, newest first
func (r *SessionRepository) GetAll() ([]models.TrainingSession, error) {
	query := `
		SELECT id, date, start_time, end_time, created_at
		FROM training_sessions
		ORDER BY id DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.TrainingSession{}
	for rows.Next() {
		var session models.TrainingSession
		err := rows.Scan(
			&session.ID,
			&session.Date,
			&session.StartTime,
			&session.EndTime,
			&session.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// Update updates a training session
func (r *SessionRepository) Update(session *models.TrainingSession) error {
	result, err := r.db.Exec(
		`UPDATE training_sessions SET date = $1, start_time = $2, end_time = $3 WHERE id = $4`,
		session.Date,
		session.StartTime,
		session.EndTime,
		session.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("training session %d not found", session.ID)
	}

	return nil
}

// Delete removes a training session
func (r *SessionRepository) Delete(id uint) error {
	result, err := r.db.Exec(`DELETE FROM training_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("training session %d not found", id)
	}

	return nil
}
