package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Class represents a class/section of students
type Class struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Section      *string   `json:"section"`
	AcademicYear *string   `json:"academic_year"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewClass creates a new Class with a generated UUID
func NewClass(name string) *Class {
	now := time.Now()
	return &Class{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the Class fields
func (c *Class) Validate() error {
	if c.Name == "" {
		return errors.New("class name is required")
	}
	return nil
}
