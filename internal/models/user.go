package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated teacher/admin account.
type User struct {
	ID                uuid.UUID
	Name              string
	Username          string
	Email             string
	ProfilePicture    string
	GitHubAccessToken string
	CreatedAt         time.Time
}
