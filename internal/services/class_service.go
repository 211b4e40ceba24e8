package services

import (
	"errors"
	"strings"

	"github.com/codepulse/codepulse/internal/models"
	"github.com/codepulse/codepulse/internal/repositories"
)

type ClassService struct {
	classRepo *repositories.ClassRepository
}

func NewClassService(classRepo *repositories.ClassRepository) *ClassService {
	return &ClassService{
		classRepo: classRepo,
	}
}

// CreateClass creates a new class
func (s *ClassService) CreateClass(class *models.Class) error {
	class.Name = strings.TrimSpace(class.Name)
	if err := class.Validate(); err != nil {
		return err
	}
	return s.classRepo.Create(class)
}

// GetClassByID retrieves a class by ID
func (s *ClassService) GetClassByID(id string) (*models.Class, error) {
	if id == "" {
		return nil, errors.New("class ID is required")
	}
	return s.classRepo.GetByID(id)
}

// GetAllClasses retrieves all classes
func (s *ClassService) GetAllClasses() ([]*models.Class, error) {
	return s.classRepo.GetAll()
}

// UpdateClass updates a class
func (s *ClassService) UpdateClass(class *models.Class) error {
	if err := class.Validate(); err != nil {
		return err
	}
	return s.classRepo.Update(class)
}

// DeleteClass deletes a class by ID
func (s *ClassService) DeleteClass(id string) error {
	if id == "" {
		return errors.New("class ID is required")
	}
	return s.classRepo.Delete(id)
}
