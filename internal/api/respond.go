package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codersquid/researchcompendia/internal/repository"
	"github.com/codersquid/researchcompendia/internal/service"
)

// respondError translates data-layer errors into HTTP responses. Validation
// failures carry their field errors; uniqueness and referential failures map
// to conflict and not-found.
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationFailedError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"errors": validationErr.Errors,
		})
	case errors.Is(err, repository.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate value for unique field"})
	case errors.Is(err, repository.ErrMissingParent):
		c.JSON(http.StatusNotFound, gin.H{"error": "referenced record not found"})
	case errors.Is(err, sql.ErrNoRows):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
