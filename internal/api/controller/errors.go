package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/code1379/bookmark/internal/api/repository"
	"github.com/code1379/bookmark/internal/api/response"
	"github.com/code1379/bookmark/internal/api/service"
	"github.com/code1379/bookmark/internal/store"
)

// respondError maps a service or repository failure to an HTTP status.
// Backend failures are surfaced as a generic message; the detail only
// goes to the log.
func respondError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var backendErr *store.BackendError

	switch {
	case errors.As(err, &validationErrs),
		errors.Is(err, service.ErrEmptyUpdate),
		errors.Is(err, repository.ErrInvalidCategoryID),
		errors.Is(err, repository.ErrEmptyCategoryName):
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrBookmarkNotFound),
		errors.Is(err, repository.ErrCategoryNotFound):
		response.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrDuplicateCategoryName),
		errors.Is(err, repository.ErrCategoryNotEmpty):
		response.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.As(err, &backendErr):
		slog.ErrorContext(c.Request.Context(), "backend failure", "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	default:
		slog.ErrorContext(c.Request.Context(), "unhandled failure", "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}

// parseID parses a positive integer path parameter.
func parseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
