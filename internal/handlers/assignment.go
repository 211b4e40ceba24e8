package handlers

import (
	"net/http"
	"time"

	"github.com/codepulse/codepulse/internal/models"
	"github.com/codepulse/codepulse/internal/services"
	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

type assignmentRequest struct {
	ClassID     string     `json:"class_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	Link        *string    `json:"link"`
	DueDate     *time.Time `json:"due_date"`
}

// CreateAssignment handles assignment creation
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment := models.NewAssignment(req.ClassID, req.Title)
	assignment.Description = req.Description
	assignment.Link = req.Link
	assignment.DueDate = req.DueDate

	if err := h.assignmentService.CreateAssignment(assignment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// GetAssignment returns a single assignment
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	assignment, err := h.assignmentService.GetAssignmentByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// ListAssignments returns all assignments for a class
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	classID := c.Query("class_id")
	if classID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "class_id query parameter is required"})
		return
	}

	assignments, err := h.assignmentService.GetAssignmentsByClass(classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list assignments"})
		return
	}

	if assignments == nil {
		assignments = []*models.Assignment{}
	}
	c.JSON(http.StatusOK, assignments)
}

// UpdateAssignment handles assignment updates
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	assignment, err := h.assignmentService.GetAssignmentByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
		return
	}

	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.Link = req.Link
	assignment.DueDate = req.DueDate
	assignment.UpdatedAt = time.Now()

	if err := h.assignmentService.UpdateAssignment(assignment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// DeleteAssignment handles assignment deletion
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	if err := h.assignmentService.DeleteAssignment(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "assignment deleted"})
}
