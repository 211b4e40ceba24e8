package models

import "time"

// Repository is a normalized code-hosting repository with its recent
// commits. It is rebuilt wholesale on every sync, never patched.
type Repository struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	FullName  string     `json:"full_name"`
	Language  *string    `json:"language"`
	Stars     int        `json:"stars"`
	Forks     int        `json:"forks"`
	CreatedAt *time.Time `json:"created_at"`
	PushedAt  *time.Time `json:"pushed_at"`
	Commits   []Commit   `json:"commits"`
}

// Commit is a single authored commit inside a Repository.
type Commit struct {
	Message    string    `json:"message"`
	AuthoredAt time.Time `json:"authored_at"`
	URL        string    `json:"url"`
}
