package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/codepulse/codepulse/internal/models"
	"github.com/codepulse/codepulse/internal/repositories"
	"github.com/codepulse/codepulse/internal/services"
	"github.com/codepulse/codepulse/pkg/cache"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentService *services.StudentService
	jobService     *services.JobService
	metricsRepo    *repositories.MetricsRepository
	metricsCache   *cache.Cache
	cacheTTL       time.Duration
}

func NewStudentHandler(
	studentService *services.StudentService,
	jobService *services.JobService,
	metricsRepo *repositories.MetricsRepository,
	metricsCache *cache.Cache,
	cacheTTL time.Duration,
) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		jobService:     jobService,
		metricsRepo:    metricsRepo,
		metricsCache:   metricsCache,
		cacheTTL:       cacheTTL,
	}
}

type studentRequest struct {
	ClassID          *string `json:"class_id"`
	RollNo           string  `json:"roll_no" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	Email            string  `json:"email" binding:"required"`
	GithubUsername   *string `json:"github_username"`
	LeetcodeUsername *string `json:"leetcode_username"`
}

// CreateStudent handles student creation
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student := models.NewStudent(req.RollNo, req.Name, req.Email)
	student.ClassID = req.ClassID
	student.GithubUsername = req.GithubUsername
	student.LeetcodeUsername = req.LeetcodeUsername

	if err := h.studentService.CreateStudent(student); err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			c.JSON(http.StatusConflict, gin.H{"error": "roll number already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, student)
}

// GetStudent returns a single student
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.studentService.GetStudentByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}

	c.JSON(http.StatusOK, student)
}

// ListStudents returns all students, optionally filtered by class
func (h *StudentHandler) ListStudents(c *gin.Context) {
	var students []*models.Student
	var err error

	if classID := c.Query("class_id"); classID != "" {
		students, err = h.studentService.GetStudentsByClass(classID)
	} else {
		students, err = h.studentService.GetAllStudents()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list students"})
		return
	}

	if students == nil {
		students = []*models.Student{}
	}
	c.JSON(http.StatusOK, students)
}

// UpdateStudent handles student updates
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	student, err := h.studentService.GetStudentByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}

	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student.ClassID = req.ClassID
	student.RollNo = req.RollNo
	student.Name = req.Name
	student.Email = req.Email
	student.GithubUsername = req.GithubUsername
	student.LeetcodeUsername = req.LeetcodeUsername
	student.UpdatedAt = time.Now()

	if err := h.studentService.UpdateStudent(student); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Platform usernames may have changed, drop any cached snapshot
	h.metricsCache.Delete(metricsCacheKey(student.ID))

	c.JSON(http.StatusOK, student)
}

// DeleteStudent handles student deletion
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := c.Param("id")
	if err := h.studentService.DeleteStudent(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete student"})
		return
	}

	h.metricsCache.Delete(metricsCacheKey(id))

	c.JSON(http.StatusOK, gin.H{"message": "student deleted"})
}

// SyncStudent enqueues a sync job for the student
func (h *StudentHandler) SyncStudent(c *gin.Context) {
	student, err := h.studentService.GetStudentByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}

	if !student.HasGithub() && !student.HasLeetcode() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student has no platform usernames configured"})
		return
	}

	job, err := h.jobService.CreateSyncJob(student.ID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	h.metricsCache.Delete(metricsCacheKey(student.ID))

	c.JSON(http.StatusAccepted, job)
}

// GetStudentMetrics returns the student's latest metrics snapshot with
// dashboard-threshold suggestions. Snapshots are served from the TTL
// cache when available.
func (h *StudentHandler) GetStudentMetrics(c *gin.Context) {
	id := c.Param("id")

	if cached, ok := h.metricsCache.Get(metricsCacheKey(id)); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	metrics, err := h.metricsRepo.GetByStudentID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "metrics not computed yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load metrics"})
		return
	}

	response := gin.H{
		"student_id":   metrics.StudentID,
		"sync_status":  metrics.SyncStatus,
		"last_updated": metrics.LastUpdated,
		"github":       metrics.Snapshot,
		"leetcode":     metrics.LeetCode,
	}
	if metrics.Snapshot != nil {
		// The dashboard view uses its own, looser suggestion threshold
		response["suggestions"] = services.BuildSuggestions(metrics.Snapshot, services.SuggestionThresholdDashboard)
	}

	h.metricsCache.Set(metricsCacheKey(id), response, h.cacheTTL)

	c.JSON(http.StatusOK, response)
}

// GetStudentJobs lists sync jobs for the student
func (h *StudentHandler) GetStudentJobs(c *gin.Context) {
	jobs, err := h.jobService.GetJobsByStudent(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs"})
		return
	}

	if jobs == nil {
		jobs = []*models.Job{}
	}
	c.JSON(http.StatusOK, jobs)
}

func metricsCacheKey(studentID string) string {
	return "metrics:" + studentID
}
