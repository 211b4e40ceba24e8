package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Student represents a tracked student
type Student struct {
	ID               string    `json:"id"`
	ClassID          *string   `json:"class_id"`
	RollNo           string    `json:"roll_no"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	GithubUsername   *string   `json:"github_username"`
	LeetcodeUsername *string   `json:"leetcode_username"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewStudent creates a new Student with a generated UUID
func NewStudent(rollNo, name, email string) *Student {
	now := time.Now()
	return &Student{
		ID:        uuid.New().String(),
		RollNo:    rollNo,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the Student fields
func (s *Student) Validate() error {
	if s.RollNo == "" {
		return errors.New("roll number is required")
	}
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// HasGithub reports whether a GitHub username is set
func (s *Student) HasGithub() bool {
	return s.GithubUsername != nil && *s.GithubUsername != ""
}

// HasLeetcode reports whether a LeetCode username is set
func (s *Student) HasLeetcode() bool {
	return s.LeetcodeUsername != nil && *s.LeetcodeUsername != ""
}
