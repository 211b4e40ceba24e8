package repositories

import (
	"database/sql"

	"github.com/codepulse/codepulse/internal/models"
)

type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create creates a new student
func (r *StudentRepository) Create(student *models.Student) error {
	query := `
		INSERT INTO students (id, class_id, roll_no, name, email, github_username, leetcode_username, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		student.ID,
		student.ClassID,
		student.RollNo,
		student.Name,
		student.Email,
		student.GithubUsername,
		student.LeetcodeUsername,
		student.CreatedAt,
		student.UpdatedAt,
	)
	return err
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(id string) (*models.Student, error) {
	query := `
		SELECT id, class_id, roll_no, name, email, github_username, leetcode_username, created_at, updated_at
		FROM students WHERE id = ?
	`

	student := &models.Student{}
	err := r.db.QueryRow(query, id).Scan(
		&student.ID,
		&student.ClassID,
		&student.RollNo,
		&student.Name,
		&student.Email,
		&student.GithubUsername,
		&student.LeetcodeUsername,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return student, nil
}

// GetByRollNo retrieves a student by roll number
func (r *StudentRepository) GetByRollNo(rollNo string) (*models.Student, error) {
	query := `
		SELECT id, class_id, roll_no, name, email, github_username, leetcode_username, created_at, updated_at
		FROM students WHERE roll_no = ?
	`

	student := &models.Student{}
	err := r.db.QueryRow(query, rollNo).Scan(
		&student.ID,
		&student.ClassID,
		&student.RollNo,
		&student.Name,
		&student.Email,
		&student.GithubUsername,
		&student.LeetcodeUsername,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return student, nil
}

// GetByClassID retrieves all students in a class, ordered by roll number
func (r *StudentRepository) GetByClassID(classID string) ([]*models.Student, error) {
	query := `
		SELECT id, class_id, roll_no, name, email, github_username, leetcode_username, created_at, updated_at
		FROM students
		WHERE class_id = ?
		ORDER BY roll_no ASC
	`

	return r.queryStudents(query, classID)
}

// GetAll retrieves all students, ordered by roll number
func (r *StudentRepository) GetAll() ([]*models.Student, error) {
	query := `
		SELECT id, class_id, roll_no, name, email, github_username, leetcode_username, created_at, updated_at
		FROM students
		ORDER BY roll_no ASC
	`

	return r.queryStudents(query)
}

// Update updates a student
func (r *StudentRepository) Update(student *models.Student) error {
	query := `
		UPDATE students
		SET class_id = ?, roll_no = ?, name = ?, email = ?, github_username = ?, leetcode_username = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		student.ClassID,
		student.RollNo,
		student.Name,
		student.Email,
		student.GithubUsername,
		student.LeetcodeUsername,
		student.UpdatedAt,
		student.ID,
	)
	return err
}

// Delete deletes a student by ID
func (r *StudentRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM students WHERE id = ?`, id)
	return err
}

func (r *StudentRepository) queryStudents(query string, args ...interface{}) ([]*models.Student, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		err := rows.Scan(
			&student.ID,
			&student.ClassID,
			&student.RollNo,
			&student.Name,
			&student.Email,
			&student.GithubUsername,
			&student.LeetcodeUsername,
			&student.CreatedAt,
			&student.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}
