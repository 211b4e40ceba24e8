package repositories

import (
	"database/sql"

	"github.com/codepulse/codepulse/internal/models"
	"github.com/google/uuid"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, name, username, email, profile_picture, github_access_token, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		user.ID.String(),
		user.Name,
		user.Username,
		user.Email,
		user.ProfilePicture,
		user.GitHubAccessToken,
		user.CreatedAt,
	)
	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	query := `SELECT id, name, username, email, profile_picture, github_access_token, created_at FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRow(query, id))
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := `SELECT id, name, username, email, profile_picture, github_access_token, created_at FROM users WHERE username = ?`
	return r.scanUser(r.db.QueryRow(query, username))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT id, name, username, email, profile_picture, github_access_token, created_at FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRow(query, email))
}

// Update updates a user
func (r *UserRepository) Update(user *models.User) error {
	query := `
		UPDATE users
		SET name = ?, username = ?, email = ?, profile_picture = ?, github_access_token = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		user.Name,
		user.Username,
		user.Email,
		user.ProfilePicture,
		user.GitHubAccessToken,
		user.ID.String(),
	)
	return err
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	return err
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var userID string
	err := row.Scan(
		&userID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.ProfilePicture,
		&user.GitHubAccessToken,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.ID, err = uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
