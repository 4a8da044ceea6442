package service

import (
	"context"
	"errors"
	"strings"

	"github.com/code1379/bookmark/internal/api/models"
	"github.com/code1379/bookmark/internal/api/repository"
	"github.com/code1379/bookmark/internal/auth"
	"github.com/code1379/bookmark/internal/validator"
)

// ErrInvalidCredentials is returned on login failure. It carries no
// detail on whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService defines the interface for account business logic.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	// Login verifies credentials and mints a session token.
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error)
}

type userService struct {
	userRepo repository.UserRepository
	sessions *auth.SessionManager
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, sessions *auth.SessionManager) UserService {
	return &userService{userRepo: userRepo, sessions: sessions}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	return s.userRepo.Create(ctx, req.Username, req.Email, req.Password)
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validator.ValidateStruct(req); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	return user, s.sessions.Issue(user.ID), nil
}
