package services

import (
	"errors"
	"strings"

	"github.com/codepulse/codepulse/internal/models"
	"github.com/codepulse/codepulse/internal/repositories"
)

type StudentService struct {
	studentRepo *repositories.StudentRepository
	metricsRepo *repositories.MetricsRepository
}

func NewStudentService(studentRepo *repositories.StudentRepository, metricsRepo *repositories.MetricsRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		metricsRepo: metricsRepo,
	}
}

// CreateStudent creates a new student
func (s *StudentService) CreateStudent(student *models.Student) error {
	student.RollNo = strings.TrimSpace(student.RollNo)
	student.Name = strings.TrimSpace(student.Name)
	student.Email = strings.TrimSpace(student.Email)

	if err := student.Validate(); err != nil {
		return err
	}

	return s.studentRepo.Create(student)
}

// GetStudentByID retrieves a student by ID
func (s *StudentService) GetStudentByID(id string) (*models.Student, error) {
	if id == "" {
		return nil, errors.New("student ID is required")
	}
	return s.studentRepo.GetByID(id)
}

// GetStudentByRollNo retrieves a student by roll number
func (s *StudentService) GetStudentByRollNo(rollNo string) (*models.Student, error) {
	if rollNo == "" {
		return nil, errors.New("roll number is required")
	}
	return s.studentRepo.GetByRollNo(rollNo)
}

// GetStudentsByClass retrieves all students of a class
func (s *StudentService) GetStudentsByClass(classID string) ([]*models.Student, error) {
	if classID == "" {
		return nil, errors.New("class ID is required")
	}
	return s.studentRepo.GetByClassID(classID)
}

// GetAllStudents retrieves all students
func (s *StudentService) GetAllStudents() ([]*models.Student, error) {
	return s.studentRepo.GetAll()
}

// UpdateStudent updates a student
func (s *StudentService) UpdateStudent(student *models.Student) error {
	if err := student.Validate(); err != nil {
		return err
	}
	return s.studentRepo.Update(student)
}

// DeleteStudent deletes a student and their metrics record
func (s *StudentService) DeleteStudent(id string) error {
	if id == "" {
		return errors.New("student ID is required")
	}

	if err := s.metricsRepo.Delete(id); err != nil {
		return err
	}
	return s.studentRepo.Delete(id)
}
