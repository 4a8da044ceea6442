package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/code1379/bookmark/internal/api/models"
	"github.com/code1379/bookmark/internal/store"
)

// UncategorizedName annotates bookmarks without a category.
const UncategorizedName = "Uncategorized"

// BookmarkRepository defines the interface for bookmark data operations.
// Every predicate includes the owning user id; cross-user access is
// rejected, never silently scoped.
type BookmarkRepository interface {
	// List returns the user's bookmarks newest-first, capped at limit,
	// each annotated with its resolved category name.
	List(ctx context.Context, userID int64, limit int) ([]models.Bookmark, error)
	Create(ctx context.Context, userID int64, input *models.CreateBookmarkRequest) (*models.Bookmark, error)
	// Update applies a partial update; omitted fields keep their previous
	// value, an explicit null category clears the category.
	Update(ctx context.Context, userID, id int64, input *models.UpdateBookmarkRequest) (*models.Bookmark, error)
	Delete(ctx context.Context, userID, id int64) error
}

type bookmarkRepository struct {
	store store.Store
}

// NewBookmarkRepository creates a BookmarkRepository backed by the given store.
func NewBookmarkRepository(s store.Store) BookmarkRepository {
	return &bookmarkRepository{store: s}
}

// hostTitle derives a default title from the URL's hostname, minus a
// leading "www.". Unparsable URLs fall back to "Untitled".
func hostTitle(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return "Untitled"
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

// parseTags decodes the JSON tags column, tolerating nulls and garbage
// left by older writers. Order is preserved and duplicates are kept.
func parseTags(value string) []string {
	if value == "" || value == "undefined" || value == "null" {
		return []string{}
	}

	var decoded []string
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		return []string{}
	}

	tags := make([]string, 0, len(decoded))
	for _, tag := range decoded {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func (r *bookmarkRepository) categoryName(ctx context.Context, userID int64, categoryID *int64) (string, error) {
	if categoryID == nil {
		return UncategorizedName, nil
	}
	rows, err := r.store.Query(ctx,
		"SELECT name FROM categories WHERE user_id = ? AND id = ? LIMIT 1",
		userID, *categoryID,
	)
	if err != nil {
		return "", fmt.Errorf("failed to resolve category name: %w", err)
	}
	if len(rows) == 0 {
		return UncategorizedName, nil
	}
	return rows[0].String("name"), nil
}

// validateCategoryID checks that an explicitly supplied category id is a
// positive integer referencing a category owned by userID.
func (r *bookmarkRepository) validateCategoryID(ctx context.Context, userID, categoryID int64) error {
	if categoryID <= 0 {
		return ErrInvalidCategoryID
	}
	rows, err := r.store.Query(ctx,
		"SELECT id FROM categories WHERE user_id = ? AND id = ? LIMIT 1",
		userID, categoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to validate category: %w", err)
	}
	if len(rows) == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// ensureCategoryByName finds the user's category with the given name
// (case-insensitively) or creates it. A blank name means uncategorized.
func (r *bookmarkRepository) ensureCategoryByName(ctx context.Context, userID int64, name string) (*int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	existing, err := r.store.Query(ctx,
		"SELECT id FROM categories WHERE user_id = ? AND lower(name) = lower(?) LIMIT 1",
		userID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find category by name: %w", err)
	}
	if len(existing) > 0 {
		id := existing[0].Int64("id")
		return &id, nil
	}

	inserted, err := r.store.Query(ctx,
		"INSERT INTO categories (user_id, name) VALUES (?, ?) RETURNING id",
		userID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	if len(inserted) == 0 {
		return nil, fmt.Errorf("failed to create category: no row returned")
	}
	id := inserted[0].Int64("id")
	return &id, nil
}

// resolveCategoryForCreate picks the category for a new bookmark. An
// explicit null means uncategorized regardless of any name; a present id
// takes precedence over a name and must belong to the user; with neither,
// a non-blank name is found or created.
func (r *bookmarkRepository) resolveCategoryForCreate(ctx context.Context, userID int64, input *models.CreateBookmarkRequest) (*int64, error) {
	if input.CategoryID.Present {
		if !input.CategoryID.Valid {
			return nil, nil
		}
		if err := r.validateCategoryID(ctx, userID, input.CategoryID.ID); err != nil {
			return nil, err
		}
		id := input.CategoryID.ID
		return &id, nil
	}
	return r.ensureCategoryByName(ctx, userID, input.Category)
}

func (r *bookmarkRepository) List(ctx context.Context, userID int64, limit int) ([]models.Bookmark, error) {
	rows, err := r.store.Query(ctx,
		`SELECT
			b.id,
			b.title,
			b.url,
			b.description,
			b.category_id,
			c.name AS category,
			b.tags,
			b.created_at
		FROM bookmarks b
		LEFT JOIN categories c
			ON b.category_id = c.id
			AND c.user_id = b.user_id
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	bookmarks := make([]models.Bookmark, 0, len(rows))
	for _, row := range rows {
		bookmark := models.Bookmark{
			ID:          row.Int64("id"),
			Title:       row.String("title"),
			URL:         row.String("url"),
			Description: row.String("description"),
			Category:    UncategorizedName,
			Tags:        parseTags(row.String("tags")),
			CreatedAt:   row.Int64("created_at"),
		}
		if !row.IsNull("category_id") {
			id := row.Int64("category_id")
			bookmark.CategoryID = &id
		}
		if !row.IsNull("category") {
			bookmark.Category = row.String("category")
		}
		bookmarks = append(bookmarks, bookmark)
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) Create(ctx context.Context, userID int64, input *models.CreateBookmarkRequest) (*models.Bookmark, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = hostTitle(input.URL)
	}
	description := strings.TrimSpace(input.Description)

	tags := make([]string, 0, len(input.Tags))
	for _, tag := range input.Tags {
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	categoryID, err := r.resolveCategoryForCreate(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	var categoryParam any
	if categoryID != nil {
		categoryParam = *categoryID
	}

	rows, err := r.store.Query(ctx,
		`INSERT INTO bookmarks (user_id, url, title, description, tags, category_id)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`,
		userID, input.URL, title, description, encodeTags(tags), categoryParam,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to create bookmark: no row returned")
	}

	categoryName, err := r.categoryName(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	return &models.Bookmark{
		ID:          rows[0].Int64("id"),
		Title:       title,
		URL:         input.URL,
		Description: description,
		CategoryID:  categoryID,
		Category:    categoryName,
		Tags:        tags,
		CreatedAt:   rows[0].Int64("created_at"),
	}, nil
}

func (r *bookmarkRepository) Update(ctx context.Context, userID, id int64, input *models.UpdateBookmarkRequest) (*models.Bookmark, error) {
	existingRows, err := r.store.Query(ctx,
		`SELECT id, title, url, description, category_id, tags, created_at
		FROM bookmarks WHERE user_id = ? AND id = ? LIMIT 1`,
		userID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmark: %w", err)
	}
	if len(existingRows) == 0 {
		return nil, ErrBookmarkNotFound
	}
	existing := existingRows[0]

	newURL := existing.String("url")
	if input.URL != nil {
		newURL = *input.URL
	}
	newTitle := existing.String("title")
	if input.Title != nil {
		newTitle = *input.Title
	}
	newDescription := existing.String("description")
	if input.Description != nil {
		newDescription = *input.Description
	}
	newTags := parseTags(existing.String("tags"))
	if input.Tags != nil {
		newTags = *input.Tags
	}

	var newCategoryID *int64
	switch {
	case !input.CategoryID.Present:
		if !existing.IsNull("category_id") {
			current := existing.Int64("category_id")
			newCategoryID = &current
		}
	case !input.CategoryID.Valid:
		// Explicit null clears the category.
		newCategoryID = nil
	default:
		if err := r.validateCategoryID(ctx, userID, input.CategoryID.ID); err != nil {
			return nil, err
		}
		requested := input.CategoryID.ID
		newCategoryID = &requested
	}

	var categoryParam any
	if newCategoryID != nil {
		categoryParam = *newCategoryID
	}

	if _, err := r.store.Query(ctx,
		`UPDATE bookmarks SET url = ?, title = ?, description = ?, tags = ?, category_id = ?
		WHERE user_id = ? AND id = ?`,
		newURL, newTitle, newDescription, encodeTags(newTags), categoryParam, userID, id,
	); err != nil {
		return nil, fmt.Errorf("failed to update bookmark: %w", err)
	}

	categoryName, err := r.categoryName(ctx, userID, newCategoryID)
	if err != nil {
		return nil, err
	}

	return &models.Bookmark{
		ID:          id,
		Title:       newTitle,
		URL:         newURL,
		Description: newDescription,
		CategoryID:  newCategoryID,
		Category:    categoryName,
		Tags:        newTags,
		CreatedAt:   existing.Int64("created_at"),
	}, nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID, id int64) error {
	exists, err := r.store.Query(ctx,
		"SELECT id FROM bookmarks WHERE user_id = ? AND id = ? LIMIT 1",
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to load bookmark: %w", err)
	}
	if len(exists) == 0 {
		return ErrBookmarkNotFound
	}

	if _, err := r.store.Query(ctx,
		"DELETE FROM bookmarks WHERE user_id = ? AND id = ?",
		userID, id,
	); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}
