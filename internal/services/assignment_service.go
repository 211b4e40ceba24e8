package services

import (
	"errors"
	"strings"

	"github.com/codepulse/codepulse/internal/models"
	"github.com/codepulse/codepulse/internal/repositories"
)

type AssignmentService struct {
	assignmentRepo *repositories.AssignmentRepository
	classRepo      *repositories.ClassRepository
}

func NewAssignmentService(assignmentRepo *repositories.AssignmentRepository, classRepo *repositories.ClassRepository) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		classRepo:      classRepo,
	}
}

// CreateAssignment creates a new assignment after checking the class exists
func (s *AssignmentService) CreateAssignment(assignment *models.Assignment) error {
	assignment.Title = strings.TrimSpace(assignment.Title)
	if err := assignment.Validate(); err != nil {
		return err
	}

	if _, err := s.classRepo.GetByID(assignment.ClassID); err != nil {
		return errors.New("class not found")
	}

	return s.assignmentRepo.Create(assignment)
}

// GetAssignmentByID retrieves an assignment by ID
func (s *AssignmentService) GetAssignmentByID(id string) (*models.Assignment, error) {
	if id == "" {
		return nil, errors.New("assignment ID is required")
	}
	return s.assignmentRepo.GetByID(id)
}

// GetAssignmentsByClass retrieves all assignments of a class
func (s *AssignmentService) GetAssignmentsByClass(classID string) ([]*models.Assignment, error) {
	if classID == "" {
		return nil, errors.New("class ID is required")
	}
	return s.assignmentRepo.GetByClassID(classID)
}

// UpdateAssignment updates an assignment
func (s *AssignmentService) UpdateAssignment(assignment *models.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}
	return s.assignmentRepo.Update(assignment)
}

// DeleteAssignment deletes an assignment by ID
func (s *AssignmentService) DeleteAssignment(id string) error {
	if id == "" {
		return errors.New("assignment ID is required")
	}
	return s.assignmentRepo.Delete(id)
}
