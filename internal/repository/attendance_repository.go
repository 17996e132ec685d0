package repository

import (
	"database/sql"
	"fmt"

	"selecao-backend/internal/models"
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *sql.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create inserts a new attendance record
func (r *AttendanceRepository) Create(attendance *models.Attendance) error {
	query := `
		INSERT INTO attendance (training_session_id, team_id, present, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	return r.db.QueryRow(
		query,
		attendance.TrainingSessionID,
		attendance.TeamID,
		attendance.Present,
		attendance.Notes,
	).Scan(&attendance.ID, &attendance.CreatedAt)
}

// GetAll retrieves all attendance records, newest first
func (r *AttendanceRepository) GetAll() ([]models.Attendance, error) {
	query := `
		SELECT id, training_session_id, team_id, present, notes, created_at
		FROM attendance
		ORDER BY id DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.Attendance{}
	for rows.Next() {
		var attendance models.Attendance
		err := rows.Scan(
			&attendance.ID,
			&attendance.TrainingSessionID,
			&attendance.TeamID,
			&attendance.Present,
			&attendance.Notes,
			&attendance.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, attendance)
	}

	return records, rows.Err()
}

// Update updates an attendance record
func (r *AttendanceRepository) Update(attendance *models.Attendance) error {
	result, err := r.db.Exec(
		`UPDATE attendance SET training_session_id = $1, team_id = $2, present = $3, notes = $4 WHERE id = $5`,
		attendance.TrainingSessionID,
		attendance.TeamID,
		attendance.Present,
		attendance.Notes,
		attendance.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("attendance record %d not found", attendance.ID)
	}

	return nil
}

// Delete removes an attendance record
func (r *AttendanceRepository) Delete(id uint) error {
	result, err := r.db.Exec(`DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("attendance record %d not found", id)
	}

	return nil
}

// GetPresenceRatios returns, per team, the mean of present over all of
// that team's attendance rows. Teams without attendance rows are absent
// from the map.
func (r *AttendanceRepository) GetPresenceRatios() (map[uint]float64, error) {
	query := `
		SELECT team_id, AVG(CASE WHEN present THEN 1.0 ELSE 0.0 END)
		FROM attendance
		GROUP BY team_id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratios := make(map[uint]float64)
	for rows.Next() {
		var teamID uint
		var ratio float64
		if err := rows.Scan(&teamID, &ratio); err != nil {
			return nil, err
		}
		ratios[teamID] = ratio
	}

	return ratios, rows.Err()
}
