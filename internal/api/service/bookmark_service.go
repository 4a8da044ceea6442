package service

import (
	"context"
	"errors"

	"github.com/code1379/bookmark/internal/api/models"
	"github.com/code1379/bookmark/internal/api/repository"
	"github.com/code1379/bookmark/internal/validator"
)

// List limits: callers get DefaultListLimit rows unless they ask for
// more, capped at MaxListLimit.
const (
	DefaultListLimit = 24
	MaxListLimit     = 100
)

// ErrEmptyUpdate rejects partial updates that carry no fields.
var ErrEmptyUpdate = errors.New("at least one field is required")

// BookmarkService defines the interface for bookmark business logic.
type BookmarkService interface {
	List(ctx context.Context, userID int64, limit int) ([]models.Bookmark, error)
	Create(ctx context.Context, userID int64, req *models.CreateBookmarkRequest) (*models.Bookmark, error)
	Update(ctx context.Context, userID, id int64, req *models.UpdateBookmarkRequest) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, id int64) error
}

type bookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
}

// NewBookmarkService creates a new BookmarkService.
func NewBookmarkService(bookmarkRepo repository.BookmarkRepository) BookmarkService {
	return &bookmarkService{bookmarkRepo: bookmarkRepo}
}

func (s *bookmarkService) List(ctx context.Context, userID int64, limit int) ([]models.Bookmark, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.bookmarkRepo.List(ctx, userID, limit)
}

func (s *bookmarkService) Create(ctx context.Context, userID int64, req *models.CreateBookmarkRequest) (*models.Bookmark, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.bookmarkRepo.Create(ctx, userID, req)
}

func (s *bookmarkService) Update(ctx context.Context, userID, id int64, req *models.UpdateBookmarkRequest) (*models.Bookmark, error) {
	if !req.HasChanges() {
		return nil, ErrEmptyUpdate
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.bookmarkRepo.Update(ctx, userID, id, req)
}

func (s *bookmarkService) Delete(ctx context.Context, userID, id int64) error {
	return s.bookmarkRepo.Delete(ctx, userID, id)
}
