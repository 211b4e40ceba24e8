package services

import (
	"log"
	"time"

	"github.com/codepulse/codepulse/internal/repositories"
)

type SchedulerService struct {
	studentRepo *repositories.StudentRepository
	jobService  *JobService
	syncHour    int
}

func NewSchedulerService(
	studentRepo *repositories.StudentRepository,
	jobService *JobService,
	syncHour int,
) *SchedulerService {
	return &SchedulerService{
		studentRepo: studentRepo,
		jobService:  jobService,
		syncHour:    syncHour,
	}
}

// StartScheduler starts the automatic daily sync scheduler
func (s *SchedulerService) StartScheduler() {
	go func() {
		for {
			now := time.Now()

			if now.Hour() == s.syncHour {
				if err := s.scheduleDailySync(); err != nil {
					log.Printf("Error scheduling daily sync: %v", err)
				}
			}

			// Sleep until the next hour
			nextHour := now.Add(1 * time.Hour)
			nextHour = time.Date(nextHour.Year(), nextHour.Month(), nextHour.Day(), nextHour.Hour(), 0, 0, 0, nextHour.Location())
			time.Sleep(nextHour.Sub(now))
		}
	}()
}

// scheduleDailySync enqueues sync jobs for every student with at least
// one platform username. Students with an active sync job are skipped.
func (s *SchedulerService) scheduleDailySync() error {
	students, err := s.studentRepo.GetAll()
	if err != nil {
		return err
	}

	created, err := s.jobService.CreateSyncJobsForStudents(students)
	if err != nil {
		return err
	}

	log.Printf("Scheduled daily sync: %d jobs created for %d students", created, len(students))
	return nil
}
