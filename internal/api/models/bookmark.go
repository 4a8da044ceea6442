package models

// Bookmark is a saved link as returned by the API, annotated with the
// resolved category name ("Uncategorized" when none).
type Bookmark struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	CategoryID  *int64   `json:"categoryId"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	CreatedAt   int64    `json:"createdAt"`
}

// CreateBookmarkRequest defines the structure for creating a bookmark.
// CategoryID and Category are mutually exclusive ways to pick a category:
// an explicit id must already exist and belong to the user, a name is
// find-or-create scoped to the user. When CategoryID is present it takes
// precedence over Category.
type CreateBookmarkRequest struct {
	URL         string     `json:"url" validate:"required,url"`
	Title       string     `json:"title" validate:"omitempty,max=120"`
	Description string     `json:"description" validate:"omitempty,max=300"`
	CategoryID  OptionalID `json:"categoryId" validate:"-"`
	Category    string     `json:"category" validate:"omitempty,max=60"`
	Tags        []string   `json:"tags" validate:"omitempty,max=8,dive,min=1,max=30"`
}

// UpdateBookmarkRequest defines a partial bookmark update. Nil fields
// keep their previous value; CategoryID distinguishes "not sent" from an
// explicit null, which clears the category.
type UpdateBookmarkRequest struct {
	URL         *string    `json:"url" validate:"omitempty,url"`
	Title       *string    `json:"title" validate:"omitempty,max=120"`
	Description *string    `json:"description" validate:"omitempty,max=300"`
	CategoryID  OptionalID `json:"categoryId" validate:"-"`
	Tags        *[]string  `json:"tags" validate:"omitempty,max=8,dive,min=1,max=30"`
}

// HasChanges reports whether the update carries at least one field.
func (r *UpdateBookmarkRequest) HasChanges() bool {
	return r.URL != nil || r.Title != nil || r.Description != nil ||
		r.Tags != nil || r.CategoryID.Present
}
