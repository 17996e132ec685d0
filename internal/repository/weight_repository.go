package repository

import (
	"database/sql"

	"selecao-backend/internal/models"
)

// WeightRepository handles database operations for the internal weights
type WeightRepository struct {
	db *sql.DB
}

// NewWeightRepository creates a new weight repository
func NewWeightRepository(db *sql.DB) *WeightRepository {
	return &WeightRepository{db: db}
}

// GetAll returns the named weights as a map. A name with no row is simply
// absent; callers decide the fallback.
func (r *WeightRepository) GetAll() (map[string]float64, error) {
	rows, err := r.db.Query(`SELECT name, weight FROM internal_weights`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weights := make(map[string]float64)
	for rows.Next() {
		var name string
		var weight float64
		if err := rows.Scan(&name, &weight); err != nil {
			return nil, err
		}
		weights[name] = weight
	}

	return weights, rows.Err()
}

// GetList returns the weights as a list, for display
func (r *WeightRepository) GetList() ([]models.InternalWeight, error) {
	rows, err := r.db.Query(`SELECT name, weight FROM internal_weights ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weights := []models.InternalWeight{}
	for rows.Next() {
		var weight models.InternalWeight
		if err := rows.Scan(&weight.Name, &weight.Weight); err != nil {
			return nil, err
		}
		weights = append(weights, weight)
	}

	return weights, rows.Err()
}

// Set upserts one named weight
func (r *WeightRepository) Set(name string, weight float64) error {
	_, err := r.db.Exec(
		`INSERT INTO internal_weights (name, weight) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET weight = EXCLUDED.weight`,
		name, weight,
	)
	return err
}
