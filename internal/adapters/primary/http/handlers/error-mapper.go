package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"model-config-service/internal/adapters/primary/http/dto"
	"model-config-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrEntityNotFound),
		errors.Is(err, domain.ErrTranslationNotFound),
		errors.Is(err, domain.ErrRevisionNotFound),
		errors.Is(err, domain.ErrUnknownCategory):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidKeyPath),
		errors.Is(err, domain.ErrInvalidDocument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Validation errors
	case errors.Is(err, domain.ErrDocumentRejected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	// Unavailable errors
	case errors.Is(err, domain.ErrNoActiveConfig),
		errors.Is(err, domain.ErrRevisionStoreDisabled),
		errors.Is(err, domain.ErrSourceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// rejectDocument renders a document that failed validation.
func rejectDocument(c *gin.Context, issues domain.ValidationErrors) {
	c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
		Error:  fmt.Sprintf("Server Error: %s — %s", domain.ErrDocumentRejected, summarize(issues)),
		Errors: issues,
	})
}

func summarize(issues domain.ValidationErrors) string {
	switch len(issues) {
	case 0:
		return "no usable document"
	case 1:
		return issues[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", issues[0].Error(), len(issues)-1)
}
