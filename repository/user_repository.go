// repository/user_repository.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// UserRepository handles database operations for users
type UserRepository struct {
	DB *sql.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		DB: GetDB(),
	}
}

const userColumns = `id, name, email, phone_number, avatar, password_hash,
	is_email_verified, created_at, updated_at, last_login_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var user models.User
	var updatedAt, lastLoginAt sql.NullTime

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PhoneNumber, &user.Avatar,
		&user.PasswordHash, &user.IsEmailVerified, &user.CreatedAt,
		&updatedAt, &lastLoginAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		user.UpdatedAt = &updatedAt.Time
	}
	if lastLoginAt.Valid {
		user.LastLoginAt = &lastLoginAt.Time
	}
	return &user, nil
}

// CreateUser inserts a new user and fills in the generated ID
func (r *UserRepository) CreateUser(user *models.User) error {
	err := r.DB.QueryRow(
		`INSERT INTO users (name, email, phone_number, avatar, password_hash, is_email_verified, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		user.Name, user.Email, user.PhoneNumber, user.Avatar,
		user.PasswordHash, user.IsEmailVerified, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to insert user: %v", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int) (*models.User, error) {
	user, err := scanUser(r.DB.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewNotFoundError("User")
		}
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	user, err := scanUser(r.DB.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.NewNotFoundError("User")
		}
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// EmailExists reports whether another user already uses this email
func (r *UserRepository) EmailExists(email string, excludeUserID int) (bool, error) {
	var count int
	err := r.DB.QueryRow(
		"SELECT COUNT(*) FROM users WHERE email = $1 AND id <> $2",
		email, excludeUserID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %v", err)
	}
	return count > 0, nil
}

// ListUsers retrieves all users
func (r *UserRepository) ListUsers() ([]models.User, error) {
	rows, err := r.DB.Query(`SELECT ` + userColumns + ` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %v", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %v", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// UpdateUser updates a user's profile fields
func (r *UserRepository) UpdateUser(user *models.User) error {
	result, err := r.DB.Exec(
		`UPDATE users SET name = $1, email = $2, phone_number = $3, avatar = $4, updated_at = $5
		 WHERE id = $6`,
		user.Name, user.Email, user.PhoneNumber, user.Avatar, time.Now().UTC(), user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %v", err)
	}
	return requireRowAffected(result, "User")
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(userID int, passwordHash string) error {
	result, err := r.DB.Exec(
		"UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3",
		passwordHash, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}
	return requireRowAffected(result, "User")
}

// UpdateLastLogin records a successful login
func (r *UserRepository) UpdateLastLogin(userID int) error {
	_, err := r.DB.Exec(
		"UPDATE users SET last_login_at = $1 WHERE id = $2",
		time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update last login: %v", err)
	}
	return nil
}

// DeleteUser removes a user
func (r *UserRepository) DeleteUser(id int) error {
	result, err := r.DB.Exec("DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %v", err)
	}
	return requireRowAffected(result, "User")
}

func requireRowAffected(result sql.Result, resource string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %v", err)
	}
	if affected == 0 {
		return utils.NewNotFoundError(resource)
	}
	return nil
}
