package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/receptorium/backend/internal/service"
)

// respondServiceError maps service errors to the response taxonomy: conflicts,
// absent associations, self-follow and validation problems are 400 with a
// message; a missing target is 404; anything else is a 500.
func respondServiceError(c *gin.Context, err error) {
	var dup *service.DuplicateEntryError
	switch {
	case errors.Is(err, service.ErrAlreadyInList),
		errors.Is(err, service.ErrNotInList),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrAmountTooSmall),
		errors.Is(err, service.ErrUnknownColor),
		errors.As(err, &dup):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"errors": "not found"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
	}
}

// rejectAll is the handler for account-lifecycle actions that are disabled as
// a product decision.
func rejectAll(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"errors": "this action is not allowed"})
}
