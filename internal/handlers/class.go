package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/codepulse/codepulse/internal/models"
	"github.com/codepulse/codepulse/internal/services"
	"github.com/gin-gonic/gin"
)

type ClassHandler struct {
	classService   *services.ClassService
	studentService *services.StudentService
	reportService  *services.ReportService
	jobService     *services.JobService
}

func NewClassHandler(
	classService *services.ClassService,
	studentService *services.StudentService,
	reportService *services.ReportService,
	jobService *services.JobService,
) *ClassHandler {
	return &ClassHandler{
		classService:   classService,
		studentService: studentService,
		reportService:  reportService,
		jobService:     jobService,
	}
}

type classRequest struct {
	Name         string  `json:"name" binding:"required"`
	Section      *string `json:"section"`
	AcademicYear *string `json:"academic_year"`
}

// CreateClass handles class creation
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req classRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class := models.NewClass(req.Name)
	class.Section = req.Section
	class.AcademicYear = req.AcademicYear

	if err := h.classService.CreateClass(class); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, class)
}

// GetClass returns a single class
func (h *ClassHandler) GetClass(c *gin.Context) {
	class, err := h.classService.GetClassByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
		return
	}

	c.JSON(http.StatusOK, class)
}

// ListClasses returns all classes
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.GetAllClasses()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list classes"})
		return
	}

	if classes == nil {
		classes = []*models.Class{}
	}
	c.JSON(http.StatusOK, classes)
}

// UpdateClass handles class updates
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	class, err := h.classService.GetClassByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
		return
	}

	var req classRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	class.Name = req.Name
	class.Section = req.Section
	class.AcademicYear = req.AcademicYear
	class.UpdatedAt = time.Now()

	if err := h.classService.UpdateClass(class); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, class)
}

// DeleteClass handles class deletion
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	if err := h.classService.DeleteClass(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete class"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "class deleted"})
}

// GetClassSummary returns the class dashboard: one report row per student
func (h *ClassHandler) GetClassSummary(c *gin.Context) {
	classID := c.Param("id")

	if _, err := h.classService.GetClassByID(classID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
		return
	}

	rows, err := h.reportService.BuildClassReport(classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build class summary"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// SyncClass enqueues sync jobs for every student of the class
func (h *ClassHandler) SyncClass(c *gin.Context) {
	classID := c.Param("id")

	students, err := h.studentService.GetStudentsByClass(classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load students"})
		return
	}

	created, err := h.jobService.CreateSyncJobsForStudents(students)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create sync jobs"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"jobs_created": created, "students": len(students)})
}

// ExportClass streams the class report as an xlsx workbook
func (h *ClassHandler) ExportClass(c *gin.Context) {
	classID := c.Param("id")

	class, err := h.classService.GetClassByID(classID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
		return
	}

	rows, err := h.reportService.BuildClassReport(classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build class report"})
		return
	}

	f, err := h.reportService.WriteExcel(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report file"})
		return
	}

	filename := fmt.Sprintf("%s-report-%s.xlsx", class.Name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write report file"})
		return
	}
}
