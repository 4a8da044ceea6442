package service

import (
	"context"

	"github.com/code1379/bookmark/internal/api/models"
	"github.com/code1379/bookmark/internal/api/repository"
	"github.com/code1379/bookmark/internal/validator"
)

// CategoryService defines the interface for category business logic.
type CategoryService interface {
	List(ctx context.Context, userID int64) ([]models.Category, error)
	Create(ctx context.Context, userID int64, req *models.CategoryRequest) (*models.Category, error)
	Rename(ctx context.Context, userID, id int64, req *models.CategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, userID, id int64) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, userID int64) ([]models.Category, error) {
	return s.categoryRepo.List(ctx, userID)
}

func (s *categoryService) Create(ctx context.Context, userID int64, req *models.CategoryRequest) (*models.Category, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.categoryRepo.Create(ctx, userID, req.Name)
}

func (s *categoryService) Rename(ctx context.Context, userID, id int64, req *models.CategoryRequest) (*models.Category, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.categoryRepo.Rename(ctx, userID, id, req.Name)
}

func (s *categoryService) Delete(ctx context.Context, userID, id int64) error {
	return s.categoryRepo.Delete(ctx, userID, id)
}
