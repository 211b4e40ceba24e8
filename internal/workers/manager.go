package workers

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/codepulse/codepulse/internal/repositories"
	"github.com/codepulse/codepulse/internal/services"
)

// WorkerManager manages the pool of background workers
type WorkerManager struct {
	workers         []Worker
	jobRepo         *repositories.JobRepository
	studentRepo     *repositories.StudentRepository
	metricsRepo     *repositories.MetricsRepository
	githubSync      *services.GitHubSyncService
	leetcodeService *services.LeetCodeService
	metricsService  *services.MetricsService
	githubToken     string
	wg              sync.WaitGroup
	ctx             context.Context
	cancel          context.CancelFunc
}

// NewWorkerManager creates a new worker manager
func NewWorkerManager(
	jobRepo *repositories.JobRepository,
	studentRepo *repositories.StudentRepository,
	metricsRepo *repositories.MetricsRepository,
	githubSync *services.GitHubSyncService,
	leetcodeService *services.LeetCodeService,
	metricsService *services.MetricsService,
	githubToken string,
) *WorkerManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerManager{
		workers:         make([]Worker, 0),
		jobRepo:         jobRepo,
		studentRepo:     studentRepo,
		metricsRepo:     metricsRepo,
		githubSync:      githubSync,
		leetcodeService: leetcodeService,
		metricsService:  metricsService,
		githubToken:     githubToken,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// StartAll starts all workers based on environment configuration
func (wm *WorkerManager) StartAll() error {
	syncWorkers := wm.getWorkerCount("SYNC_WORKERS", 2)

	log.Printf("Starting workers - Sync: %d", syncWorkers)

	for i := 0; i < syncWorkers; i++ {
		worker := NewSyncWorker(
			fmt.Sprintf("sync-%d", i+1),
			wm.jobRepo, wm.studentRepo, wm.metricsRepo,
			wm.githubSync, wm.leetcodeService, wm.metricsService,
			wm.githubToken,
		)
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	log.Printf("Started %d total workers", len(wm.workers))
	return nil
}

// StopAll gracefully stops all workers
func (wm *WorkerManager) StopAll() error {
	log.Println("Stopping all workers...")

	// Cancel the context to signal all workers to stop
	wm.cancel()

	for _, worker := range wm.workers {
		if err := worker.Stop(); err != nil {
			log.Printf("Error stopping worker %s: %v", worker.GetWorkerID(), err)
		}
	}

	// Wait for all workers to finish
	wm.wg.Wait()

	log.Println("All workers stopped")
	return nil
}

// getWorkerCount reads worker count from environment variable with fallback
func (wm *WorkerManager) getWorkerCount(envVar string, defaultValue int) int {
	if value := os.Getenv(envVar); value != "" {
		if count, err := strconv.Atoi(value); err == nil && count > 0 {
			return count
		}
		log.Printf("Invalid value for %s, using default: %d", envVar, defaultValue)
	}
	return defaultValue
}

// startWorker starts a single worker in a goroutine
func (wm *WorkerManager) startWorker(worker Worker) {
	wm.wg.Add(1)
	go func() {
		defer wm.wg.Done()
		if err := worker.Start(wm.ctx); err != nil {
			log.Printf("Worker %s stopped with error: %v", worker.GetWorkerID(), err)
		}
	}()
}

// GetWorkerStatus returns the status of all workers
func (wm *WorkerManager) GetWorkerStatus() map[string]bool {
	status := make(map[string]bool)
	for _, worker := range wm.workers {
		if syncWorker, ok := worker.(*SyncWorker); ok {
			status[worker.GetWorkerID()] = syncWorker.IsRunning()
		} else {
			status[worker.GetWorkerID()] = false
		}
	}
	return status
}
