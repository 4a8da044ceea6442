package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/code1379/bookmark/internal/api/models"
	"github.com/code1379/bookmark/internal/store"
)

// CategoryRepository defines the interface for category data operations.
// Category names are unique per user, case-insensitively, and a category
// holding bookmarks cannot be deleted.
type CategoryRepository interface {
	List(ctx context.Context, userID int64) ([]models.Category, error)
	Create(ctx context.Context, userID int64, name string) (*models.Category, error)
	Rename(ctx context.Context, userID, id int64, name string) (*models.Category, error)
	Delete(ctx context.Context, userID, id int64) error
}

type categoryRepository struct {
	store store.Store
}

// NewCategoryRepository creates a CategoryRepository backed by the given store.
func NewCategoryRepository(s store.Store) CategoryRepository {
	return &categoryRepository{store: s}
}

func categoryFromRow(row store.Row) models.Category {
	return models.Category{
		ID:            row.Int64("id"),
		Name:          row.String("name"),
		BookmarkCount: row.Int64("bookmark_count"),
	}
}

// List returns the user's categories alphabetically, each with the count
// of the user's bookmarks assigned to it.
func (r *categoryRepository) List(ctx context.Context, userID int64) ([]models.Category, error) {
	rows, err := r.store.Query(ctx,
		`SELECT
			c.id AS id,
			c.name AS name,
			COUNT(b.id) AS bookmark_count
		FROM categories c
		LEFT JOIN bookmarks b
			ON c.id = b.category_id
			AND b.user_id = ?
		WHERE c.user_id = ?
		GROUP BY c.id, c.name
		ORDER BY c.name ASC`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]models.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, categoryFromRow(row))
	}
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, userID int64, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}

	duplicate, err := r.store.Query(ctx,
		"SELECT id FROM categories WHERE user_id = ? AND lower(name) = lower(?) LIMIT 1",
		userID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate category: %w", err)
	}
	if len(duplicate) > 0 {
		return nil, ErrDuplicateCategoryName
	}

	rows, err := r.store.Query(ctx,
		"INSERT INTO categories (user_id, name) VALUES (?, ?) RETURNING id, name",
		userID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to create category: no row returned")
	}

	created := categoryFromRow(rows[0])
	return &created, nil
}

func (r *categoryRepository) Rename(ctx context.Context, userID, id int64, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}

	exists, err := r.store.Query(ctx,
		"SELECT id FROM categories WHERE user_id = ? AND id = ? LIMIT 1",
		userID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if len(exists) == 0 {
		return nil, ErrCategoryNotFound
	}

	// The same name on any other category of this user is a conflict;
	// renaming a category to its own name (case change included) is not.
	duplicate, err := r.store.Query(ctx,
		"SELECT id FROM categories WHERE user_id = ? AND lower(name) = lower(?) AND id <> ? LIMIT 1",
		userID, name, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate category: %w", err)
	}
	if len(duplicate) > 0 {
		return nil, ErrDuplicateCategoryName
	}

	if _, err := r.store.Query(ctx,
		"UPDATE categories SET name = ? WHERE user_id = ? AND id = ?",
		name, userID, id,
	); err != nil {
		return nil, fmt.Errorf("failed to rename category: %w", err)
	}

	rows, err := r.store.Query(ctx,
		`SELECT
			c.id AS id,
			c.name AS name,
			COUNT(b.id) AS bookmark_count
		FROM categories c
		LEFT JOIN bookmarks b
			ON c.id = b.category_id
			AND b.user_id = ?
		WHERE c.user_id = ? AND c.id = ?
		GROUP BY c.id, c.name
		LIMIT 1`,
		userID, userID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load renamed category: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrCategoryNotFound
	}

	renamed := categoryFromRow(rows[0])
	return &renamed, nil
}

func (r *categoryRepository) Delete(ctx context.Context, userID, id int64) error {
	exists, err := r.store.Query(ctx,
		"SELECT id FROM categories WHERE user_id = ? AND id = ? LIMIT 1",
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}
	if len(exists) == 0 {
		return ErrCategoryNotFound
	}

	counted, err := r.store.Query(ctx,
		"SELECT COUNT(1) AS total FROM bookmarks WHERE user_id = ? AND category_id = ?",
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to count category bookmarks: %w", err)
	}
	if len(counted) > 0 && counted[0].Int64("total") > 0 {
		return ErrCategoryNotEmpty
	}

	if _, err := r.store.Query(ctx,
		"DELETE FROM categories WHERE user_id = ? AND id = ?",
		userID, id,
	); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
