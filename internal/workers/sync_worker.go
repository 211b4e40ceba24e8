package workers

import (
	"context"
	"time"

	"github.com/codepulse/codepulse/internal/models"
	"github.com/codepulse/codepulse/internal/repositories"
	"github.com/codepulse/codepulse/internal/services"
	"github.com/codepulse/codepulse/pkg/logger"
)

// SyncWorker processes sync jobs: it fetches a student's platform data,
// computes a fresh metrics snapshot and upserts it wholesale.
type SyncWorker struct {
	*BaseWorker
	jobRepo         *repositories.JobRepository
	studentRepo     *repositories.StudentRepository
	metricsRepo     *repositories.MetricsRepository
	githubSync      *services.GitHubSyncService
	leetcodeService *services.LeetCodeService
	metricsService  *services.MetricsService
	githubToken     string
}

// NewSyncWorker creates a new sync worker
func NewSyncWorker(
	workerID string,
	jobRepo *repositories.JobRepository,
	studentRepo *repositories.StudentRepository,
	metricsRepo *repositories.MetricsRepository,
	githubSync *services.GitHubSyncService,
	leetcodeService *services.LeetCodeService,
	metricsService *services.MetricsService,
	githubToken string,
) *SyncWorker {
	return &SyncWorker{
		BaseWorker:      NewBaseWorker(workerID, models.JobTypeSync),
		jobRepo:         jobRepo,
		studentRepo:     studentRepo,
		metricsRepo:     metricsRepo,
		githubSync:      githubSync,
		leetcodeService: leetcodeService,
		metricsService:  metricsService,
		githubToken:     githubToken,
	}
}

// Start begins the sync worker process
func (w *SyncWorker) Start(ctx context.Context) error {
	w.Running = true
	logger.Infof("Sync worker %s started", w.WorkerID)

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Sync worker %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			logger.Infof("Sync worker %s stopping", w.WorkerID)
			return nil
		default:
			job, err := w.jobRepo.GetNextPendingJob(models.JobTypeSync)
			if err != nil {
				logger.Errorf("Sync worker %s error getting job: %v", w.WorkerID, err)
				time.Sleep(5 * time.Second)
				continue
			}

			if job == nil {
				// No jobs available, sleep and try again
				time.Sleep(10 * time.Second)
				continue
			}

			w.processSyncJob(ctx, job)
		}
	}
}

// processSyncJob runs the full sync pipeline for one student
func (w *SyncWorker) processSyncJob(ctx context.Context, job *models.Job) {
	logger.Infof("Sync worker %s processing job %s", w.WorkerID, job.ID)

	job.WorkerID = &w.WorkerID
	if err := w.jobRepo.Update(job); err != nil {
		logger.Errorf("Sync worker %s error updating job %s: %v", w.WorkerID, job.ID, err)
		return
	}

	if err := w.syncStudent(ctx, job.StudentID); err != nil {
		logger.Errorf("Sync worker %s job %s failed: %v", w.WorkerID, job.ID, err)
		job.MarkFailed()
		job.SetError(err.Error())
		if err := w.jobRepo.Update(job); err != nil {
			logger.Errorf("Sync worker %s error updating failed job %s: %v", w.WorkerID, job.ID, err)
		}
		return
	}

	job.MarkCompleted()
	if err := w.jobRepo.Update(job); err != nil {
		logger.Errorf("Sync worker %s error completing job %s: %v", w.WorkerID, job.ID, err)
		return
	}

	logger.Infof("Sync worker %s completed job %s", w.WorkerID, job.ID)
}

// syncStudent fetches upstream data, computes the snapshot and persists it
func (w *SyncWorker) syncStudent(ctx context.Context, studentID string) error {
	student, err := w.studentRepo.GetByID(studentID)
	if err != nil {
		return err
	}

	now := time.Now()
	since := now.AddDate(0, 0, -services.DefaultMetricsConfig().RecentWindowDays)

	var repos []*models.Repository
	if student.HasGithub() {
		repos, err = w.githubSync.FetchRepositories(ctx, *student.GithubUsername, w.githubToken, since)
		if err != nil {
			// Persist a failed record so dashboards can show degraded state
			failed := models.NewStudentMetrics(studentID, nil)
			failed.SyncStatus = models.SyncStatusFailed
			if upsertErr := w.metricsRepo.Upsert(failed); upsertErr != nil {
				logger.Errorf("Failed to persist error state for student %s: %v", studentID, upsertErr)
			}
			return err
		}
	}

	var profile *models.ProblemProfile
	if student.HasLeetcode() {
		profile, err = w.leetcodeService.FetchProfile(ctx, *student.LeetcodeUsername)
		if err != nil {
			// Missing upstream data degrades to a nil profile
			logger.WithError(err).Warnf("LeetCode profile unavailable for student %s", studentID)
			profile = nil
		}
	}

	snapshot, err := w.metricsService.ComputeMetrics(repos, profile, now)
	if err != nil {
		return err
	}

	return w.metricsRepo.Upsert(models.NewStudentMetrics(studentID, snapshot))
}
