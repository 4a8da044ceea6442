package models

// Category is a per-user bookmark folder. BookmarkCount is computed, not
// stored.
type Category struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	BookmarkCount int64  `json:"bookmarkCount"`
}

// CategoryRequest carries a category name for create and rename.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=60"`
}
