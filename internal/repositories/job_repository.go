package repositories

import (
	"database/sql"
	"sync"
	"time"

	"github.com/codepulse/codepulse/internal/models"
)

// JobRepository handles database operations for jobs
type JobRepository struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new job
func (r *JobRepository) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO jobs (id, student_id, job_type, status, error_message, started_at, completed_at, worker_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		job.ID,
		job.StudentID,
		job.JobType,
		job.Status,
		job.ErrorMessage,
		job.StartedAt,
		job.CompletedAt,
		job.WorkerID,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(id string) (*models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, student_id, job_type, status, error_message, started_at, completed_at, worker_id, created_at, updated_at
		FROM jobs WHERE id = ?
	`

	job := &models.Job{}
	err := r.db.QueryRow(query, id).Scan(
		&job.ID,
		&job.StudentID,
		&job.JobType,
		&job.Status,
		&job.ErrorMessage,
		&job.StartedAt,
		&job.CompletedAt,
		&job.WorkerID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return job, nil
}

// GetByStudentID retrieves all jobs for a student, most recent first
func (r *JobRepository) GetByStudentID(studentID string) ([]*models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT id, student_id, job_type, status, error_message, started_at, completed_at, worker_id, created_at, updated_at
		FROM jobs
		WHERE student_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job := &models.Job{}
		err := rows.Scan(
			&job.ID,
			&job.StudentID,
			&job.JobType,
			&job.Status,
			&job.ErrorMessage,
			&job.StartedAt,
			&job.CompletedAt,
			&job.WorkerID,
			&job.CreatedAt,
			&job.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// HasActiveJob reports whether the student already has a pending or
// in-progress job of the given type
func (r *JobRepository) HasActiveJob(studentID string, jobType models.JobType) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `
		SELECT COUNT(*) FROM jobs
		WHERE student_id = ? AND job_type = ? AND status IN (?, ?)
	`

	var count int
	err := r.db.QueryRow(query, studentID, jobType, models.JobStatusPending, models.JobStatusInProgress).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetNextPendingJob retrieves the next pending job of a specific type (FIFO)
// This method is thread-safe and marks the job as in-progress
func (r *JobRepository) GetNextPendingJob(jobType models.JobType) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Use a transaction to ensure atomicity
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		SELECT id, student_id, job_type, status, error_message, started_at, completed_at, worker_id, created_at, updated_at
		FROM jobs
		WHERE status = ? AND job_type = ?
		ORDER BY created_at ASC
		LIMIT 1
	`

	job := &models.Job{}
	err = tx.QueryRow(query, models.JobStatusPending, jobType).Scan(
		&job.ID,
		&job.StudentID,
		&job.JobType,
		&job.Status,
		&job.ErrorMessage,
		&job.StartedAt,
		&job.CompletedAt,
		&job.WorkerID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No pending jobs found
		}
		return nil, err
	}

	// Mark the job as in-progress
	job.MarkStarted()
	updateQuery := `
		UPDATE jobs
		SET status = ?, started_at = ?, updated_at = ?
		WHERE id = ?
	`

	_, err = tx.Exec(updateQuery, job.Status, job.StartedAt, time.Now(), job.ID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return job, nil
}

// Update updates a job
func (r *JobRepository) Update(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		UPDATE jobs
		SET student_id = ?, job_type = ?, status = ?, error_message = ?,
		    started_at = ?, completed_at = ?, worker_id = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		job.StudentID,
		job.JobType,
		job.Status,
		job.ErrorMessage,
		job.StartedAt,
		job.CompletedAt,
		job.WorkerID,
		time.Now(),
		job.ID,
	)
	return err
}

// Delete deletes a job by ID
func (r *JobRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	return err
}

// DeleteByStudentID deletes all jobs for a student
func (r *JobRepository) DeleteByStudentID(studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`DELETE FROM jobs WHERE student_id = ?`, studentID)
	return err
}
