package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/code1379/bookmark/internal/api/models"
	"github.com/code1379/bookmark/internal/auth"
	"github.com/code1379/bookmark/internal/store"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// FindByEmail looks a user up by email, case-insensitively. A missing
	// user is (nil, nil), not an error.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByID looks a user up by id. A missing user is (nil, nil).
	FindByID(ctx context.Context, id int64) (*models.User, error)
	// Create registers a new user with a hashed credential. Fails with
	// ErrDuplicateEmail when the normalized email is already taken.
	Create(ctx context.Context, username, email, password string) (*models.User, error)
	// VerifyCredentials returns the public user projection when email and
	// password match a stored credential, (nil, nil) otherwise. The
	// credential hash never leaves this boundary.
	VerifyCredentials(ctx context.Context, email, password string) (*models.User, error)
}

type userRepository struct {
	store store.Store
}

// NewUserRepository creates a UserRepository backed by the given store.
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userFromRow(row store.Row) *models.User {
	return &models.User{
		ID:        row.Int64("id"),
		Username:  row.String("username"),
		Email:     row.String("email"),
		CreatedAt: row.Int64("created_at"),
	}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, err := r.store.Query(ctx,
		"SELECT id, username, email, created_at FROM users WHERE email = ? LIMIT 1",
		NormalizeEmail(email),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return userFromRow(rows[0]), nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	rows, err := r.store.Query(ctx,
		"SELECT id, username, email, created_at FROM users WHERE id = ? LIMIT 1",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return userFromRow(rows[0]), nil
}

func (r *userRepository) Create(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	duplicate, err := r.store.Query(ctx, "SELECT id FROM users WHERE email = ? LIMIT 1", email)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if len(duplicate) > 0 {
		return nil, ErrDuplicateEmail
	}

	credential, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rows, err := r.store.Query(ctx,
		`INSERT INTO users (username, email, password_hash)
		VALUES (?, ?, ?)
		RETURNING id, username, email, created_at`,
		username, email, credential,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to create user: no row returned")
	}
	return userFromRow(rows[0]), nil
}

func (r *userRepository) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	rows, err := r.store.Query(ctx,
		"SELECT id, username, email, password_hash, created_at FROM users WHERE email = ? LIMIT 1",
		NormalizeEmail(email),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load auth record: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	if !auth.VerifyPassword(password, row.String("password_hash")) {
		return nil, nil
	}
	return userFromRow(row), nil
}
