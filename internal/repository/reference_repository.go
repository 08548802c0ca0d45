package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// ReferenceRepository reads the static lookup tables.
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository creates a new reference repository.
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// Load reads every reference table. Rows keep their table order so faculty-load
// statistics are stable.
func (r *ReferenceRepository) Load(ctx context.Context) (models.ReferenceTables, error) {
	var tables models.ReferenceTables
	loads := []struct {
		name  string
		query string
		dest  interface{}
	}{
		{"subjects", `SELECT id, name, requires_lab FROM subjects ORDER BY position ASC, id ASC`, &tables.Subjects},
		{"faculty", `SELECT id, name, subject_id, email FROM faculty ORDER BY position ASC, id ASC`, &tables.Faculty},
		{"batches", `SELECT id, name, size FROM batches ORDER BY position ASC, id ASC`, &tables.Batches},
		{"classrooms", `SELECT id, name, is_lab, capacity FROM classrooms ORDER BY position ASC, id ASC`, &tables.Classrooms},
		{"clubs", `SELECT id, name FROM clubs ORDER BY position ASC, id ASC`, &tables.Clubs},
		{"coordinators", `SELECT id, name, club_id, email FROM coordinators ORDER BY position ASC, id ASC`, &tables.Coordinators},
	}
	for _, load := range loads {
		if err := r.db.SelectContext(ctx, load.dest, load.query); err != nil {
			return models.ReferenceTables{}, fmt.Errorf("load %s: %w", load.name, err)
		}
	}
	return tables, nil
}
