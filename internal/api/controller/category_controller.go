package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/code1379/bookmark/internal/api/models"
	"github.com/code1379/bookmark/internal/api/response"
	"github.com/code1379/bookmark/internal/api/service"
	"github.com/code1379/bookmark/internal/middleware"
)

// CategoryController handles category CRUD requests for the
// authenticated user.
type CategoryController struct {
	categoryService service.CategoryService
}

// NewCategoryController creates a new CategoryController.
func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// List returns the user's categories alphabetically with bookmark counts.
func (cc *CategoryController) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	categories, err := cc.categoryService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessResponse(c, gin.H{"data": categories})
}

// Create adds a new category.
func (cc *CategoryController) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := cc.categoryService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.CreatedResponse(c, gin.H{"data": category})
}

// Rename changes a category's name.
func (cc *CategoryController) Rename(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		response.ErrorResponse(c, http.StatusBadRequest, "invalid category id")
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := cc.categoryService.Rename(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessResponse(c, gin.H{"data": category})
}

// Delete removes an empty category.
func (cc *CategoryController) Delete(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		response.ErrorResponse(c, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := cc.categoryService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	response.SuccessResponse(c, gin.H{"deleted": true})
}
