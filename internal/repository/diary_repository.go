package repository

import (
	"database/sql"
	"fmt"

	"selecao-backend/internal/models"
)

// DiaryRepository handles database operations for diary entries and
// their attachments
type DiaryRepository struct {
	db *sql.DB
}

// NewDiaryRepository creates a new diary repository
func NewDiaryRepository(db *sql.DB) *DiaryRepository {
	return &DiaryRepository{db: db}
}

// CreateEntry inserts a new diary entry
func (r *DiaryRepository) CreateEntry(entry *models.DiaryEntry) error {
	query := `
		INSERT INTO diary_entries (team_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	return r.db.QueryRow(
		query,
		entry.TeamID,
		entry.Title,
		entry.Content,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// GetEntryByID retrieves a diary entry by ID
func (r *DiaryRepository) GetEntryByID(id uint) (*models.DiaryEntry, error) {
	query := `
		SELECT id, team_id, title, content, created_at
		FROM diary_entries
		WHERE id = $1
	`

	entry := &models.DiaryEntry{}
	err := r.db.QueryRow(query, id).Scan(
		&entry.ID,
		&entry.TeamID,
		&entry.Title,
		&entry.Content,
		&entry.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return entry, err
}

// GetEntriesByTeam retrieves a team's diary entries, newest first
func (r *DiaryRepository) GetEntriesByTeam(teamID uint) ([]models.DiaryEntry, error) {
	query := `
		SELECT id, team_id, title, content, created_at
		FROM diary_entries
		WHERE team_id = $1
		ORDER BY id DESC
	`

	rows, err := r.db.Query(query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.DiaryEntry{}
	for rows.Next() {
		var entry models.DiaryEntry
		err := rows.Scan(
			&entry.ID,
			&entry.TeamID,
			&entry.Title,
			&entry.Content,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// UpdateEntry updates a diary entry's title and content
func (r *DiaryRepository) UpdateEntry(entry *models.DiaryEntry) error {
	result, err := r.db.Exec(
		`UPDATE diary_entries SET title = $1, content = $2 WHERE id = $3`,
		entry.Title, entry.Content, entry.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("diary entry %d not found", entry.ID)
	}

	return nil
}

// DeleteEntry removes a diary entry and its attachment records
func (r *DiaryRepository) DeleteEntry(id uint) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM attachments WHERE diary_entry_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM diary_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("diary entry %d not found", id)
	}

	return tx.Commit()
}

// CreateAttachment inserts an attachment record for a diary entry
func (r *DiaryRepository) CreateAttachment(attachment *models.Attachment) error {
	query := `
		INSERT INTO attachments (diary_entry_id, file_path, original_name, mime_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	return r.db.QueryRow(
		query,
		attachment.DiaryEntryID,
		attachment.FilePath,
		attachment.OriginalName,
		attachment.MimeType,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}

// GetAttachmentsByTeam retrieves all attachment records across a team's
// diary entries
func (r *DiaryRepository) GetAttachmentsByTeam(teamID uint) ([]models.Attachment, error) {
	query := `
		SELECT a.id, a.diary_entry_id, a.file_path, a.original_name, a.mime_type, a.created_at
		FROM attachments a
		JOIN diary_entries d ON a.diary_entry_id = d.id
		WHERE d.team_id = $1
		ORDER BY a.id DESC
	`

	rows, err := r.db.Query(query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments := []models.Attachment{}
	for rows.Next() {
		var attachment models.Attachment
		err := rows.Scan(
			&attachment.ID,
			&attachment.DiaryEntryID,
			&attachment.FilePath,
			&attachment.OriginalName,
			&attachment.MimeType,
			&attachment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}

	return attachments, rows.Err()
}

// DeleteAttachment removes one attachment record
func (r *DiaryRepository) DeleteAttachment(id uint) error {
	result, err := r.db.Exec(`DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("attachment %d not found", id)
	}

	return nil
}
