package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/code1379/bookmark/internal/api/models"
	"github.com/code1379/bookmark/internal/api/response"
	"github.com/code1379/bookmark/internal/api/service"
	"github.com/code1379/bookmark/internal/middleware"
)

// BookmarkController handles bookmark CRUD requests for the
// authenticated user.
type BookmarkController struct {
	bookmarkService service.BookmarkService
}

// NewBookmarkController creates a new BookmarkController.
func NewBookmarkController(bookmarkService service.BookmarkService) *BookmarkController {
	return &BookmarkController{bookmarkService: bookmarkService}
}

// List returns the user's bookmarks, newest first. An optional ?limit=
// query caps the row count.
func (bc *BookmarkController) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	bookmarks, err := bc.bookmarkService.List(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessResponse(c, gin.H{"data": bookmarks})
}

// Create saves a new bookmark.
func (bc *BookmarkController) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req models.CreateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	bookmark, err := bc.bookmarkService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.CreatedResponse(c, gin.H{"data": bookmark})
}

// Update applies a partial update to one bookmark.
func (bc *BookmarkController) Update(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		response.ErrorResponse(c, http.StatusBadRequest, "invalid bookmark id")
		return
	}

	var req models.UpdateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	bookmark, err := bc.bookmarkService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessResponse(c, gin.H{"data": bookmark})
}

// Delete removes one bookmark.
func (bc *BookmarkController) Delete(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		response.ErrorResponse(c, http.StatusBadRequest, "invalid bookmark id")
		return
	}

	if err := bc.bookmarkService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessResponse(c, gin.H{"deleted": true})
}
