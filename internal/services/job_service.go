package services

import (
	"fmt"

	"github.com/codepulse/codepulse/internal/models"
	"github.com/codepulse/codepulse/internal/repositories"
)

// JobService handles job creation and management
type JobService struct {
	jobRepo *repositories.JobRepository
}

// NewJobService creates a new job service
func NewJobService(jobRepo *repositories.JobRepository) *JobService {
	return &JobService{
		jobRepo: jobRepo,
	}
}

// CreateSyncJob creates a new sync job for a student
func (s *JobService) CreateSyncJob(studentID string) (*models.Job, error) {
	hasActive, err := s.jobRepo.HasActiveJob(studentID, models.JobTypeSync)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing jobs: %w", err)
	}

	if hasActive {
		return nil, fmt.Errorf("a sync job is already in progress or pending for this student")
	}

	job := models.NewJob(studentID, models.JobTypeSync)

	if err := s.jobRepo.Create(job); err != nil {
		return nil, err
	}

	return job, nil
}

// CreateSyncJobsForStudents creates sync jobs for all given students,
// skipping students that already have an active sync job
func (s *JobService) CreateSyncJobsForStudents(students []*models.Student) (int, error) {
	createdCount := 0
	for _, student := range students {
		if !student.HasGithub() && !student.HasLeetcode() {
			continue
		}

		if _, err := s.CreateSyncJob(student.ID); err != nil {
			continue
		}
		createdCount++
	}

	return createdCount, nil
}

// GetJobsByStudent retrieves all jobs for a student
func (s *JobService) GetJobsByStudent(studentID string) ([]*models.Job, error) {
	return s.jobRepo.GetByStudentID(studentID)
}

// GetJobByID retrieves a job by ID
func (s *JobService) GetJobByID(jobID string) (*models.Job, error) {
	return s.jobRepo.GetByID(jobID)
}
