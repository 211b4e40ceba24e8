package repositories

import (
	"database/sql"

	"github.com/codepulse/codepulse/internal/models"
)

type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{
		db: db,
	}
}

// Create creates a new assignment
func (r *AssignmentRepository) Create(assignment *models.Assignment) error {
	query := `
		INSERT INTO assignments (id, class_id, title, description, link, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		assignment.ID,
		assignment.ClassID,
		assignment.Title,
		assignment.Description,
		assignment.Link,
		assignment.DueDate,
		assignment.CreatedAt,
		assignment.UpdatedAt,
	)
	return err
}

// GetByID retrieves an assignment by ID
func (r *AssignmentRepository) GetByID(id string) (*models.Assignment, error) {
	query := `
		SELECT id, class_id, title, description, link, due_date, created_at, updated_at
		FROM assignments WHERE id = ?
	`

	assignment := &models.Assignment{}
	err := r.db.QueryRow(query, id).Scan(
		&assignment.ID,
		&assignment.ClassID,
		&assignment.Title,
		&assignment.Description,
		&assignment.Link,
		&assignment.DueDate,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

// GetByClassID retrieves all assignments for a class, most recent due date first
func (r *AssignmentRepository) GetByClassID(classID string) ([]*models.Assignment, error) {
	query := `
		SELECT id, class_id, title, description, link, due_date, created_at, updated_at
		FROM assignments
		WHERE class_id = ?
		ORDER BY due_date DESC
	`

	rows, err := r.db.Query(query, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.Assignment
	for rows.Next() {
		assignment := &models.Assignment{}
		err := rows.Scan(
			&assignment.ID,
			&assignment.ClassID,
			&assignment.Title,
			&assignment.Description,
			&assignment.Link,
			&assignment.DueDate,
			&assignment.CreatedAt,
			&assignment.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

// Update updates an assignment
func (r *AssignmentRepository) Update(assignment *models.Assignment) error {
	query := `
		UPDATE assignments
		SET title = ?, description = ?, link = ?, due_date = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		assignment.Title,
		assignment.Description,
		assignment.Link,
		assignment.DueDate,
		assignment.UpdatedAt,
		assignment.ID,
	)
	return err
}

// Delete deletes an assignment by ID
func (r *AssignmentRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM assignments WHERE id = ?`, id)
	return err
}
