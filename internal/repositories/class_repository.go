package repositories

import (
	"database/sql"

	"github.com/codepulse/codepulse/internal/models"
)

type ClassRepository struct {
	db *sql.DB
}

func NewClassRepository(db *sql.DB) *ClassRepository {
	return &ClassRepository{
		db: db,
	}
}

// Create creates a new class
func (r *ClassRepository) Create(class *models.Class) error {
	query := `
		INSERT INTO classes (id, name, section, academic_year, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		class.ID,
		class.Name,
		class.Section,
		class.AcademicYear,
		class.CreatedAt,
		class.UpdatedAt,
	)
	return err
}

// GetByID retrieves a class by ID
func (r *ClassRepository) GetByID(id string) (*models.Class, error) {
	query := `SELECT id, name, section, academic_year, created_at, updated_at FROM classes WHERE id = ?`

	class := &models.Class{}
	err := r.db.QueryRow(query, id).Scan(
		&class.ID,
		&class.Name,
		&class.Section,
		&class.AcademicYear,
		&class.CreatedAt,
		&class.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return class, nil
}

// GetAll retrieves all classes, ordered by name
func (r *ClassRepository) GetAll() ([]*models.Class, error) {
	query := `SELECT id, name, section, academic_year, created_at, updated_at FROM classes ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class := &models.Class{}
		err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.Section,
			&class.AcademicYear,
			&class.CreatedAt,
			&class.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	return classes, rows.Err()
}

// Update updates a class
func (r *ClassRepository) Update(class *models.Class) error {
	query := `
		UPDATE classes
		SET name = ?, section = ?, academic_year = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		class.Name,
		class.Section,
		class.AcademicYear,
		class.UpdatedAt,
		class.ID,
	)
	return err
}

// Delete deletes a class by ID
func (r *ClassRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM classes WHERE id = ?`, id)
	return err
}
