package repository

import "errors"

// Sentinel errors raised by the repositories. The controller layer maps
// each to a user-facing status; nothing here is swallowed or retried.
var (
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrBookmarkNotFound      = errors.New("bookmark not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrInvalidCategoryID     = errors.New("invalid category id")
	ErrDuplicateCategoryName = errors.New("category name already exists")
	ErrEmptyCategoryName     = errors.New("category name is required")
	ErrCategoryNotEmpty      = errors.New("category contains bookmarks and cannot be deleted")
)
