package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Assignment represents a class assignment
type Assignment struct {
	ID          string     `json:"id"`
	ClassID     string     `json:"class_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Link        *string    `json:"link"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewAssignment creates a new Assignment with a generated UUID
func NewAssignment(classID, title string) *Assignment {
	now := time.Now()
	return &Assignment{
		ID:        uuid.New().String(),
		ClassID:   classID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the Assignment fields
func (a *Assignment) Validate() error {
	if a.ClassID == "" {
		return errors.New("class ID is required")
	}
	if a.Title == "" {
		return errors.New("assignment title is required")
	}
	return nil
}

// IsOverdue reports whether the assignment's due date has passed
func (a *Assignment) IsOverdue(now time.Time) bool {
	return a.DueDate != nil && now.After(*a.DueDate)
}
