package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"content-studio-backend/internal/assets"
	"content-studio-backend/internal/reconcile"
	"content-studio-backend/internal/sections"
	"content-studio-backend/internal/service"
)

// respondError maps service errors onto HTTP statuses: not-found to 404,
// client mistakes to 400, everything else to 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrBusinessNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrSectionsRequired),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, sections.ErrUnknownSectionType),
		errors.Is(err, sections.ErrInvalidPayload),
		errors.Is(err, reconcile.ErrItemNotFound),
		errors.Is(err, assets.ErrInvalidInlinePayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		// Internal failures are logged at the service layer; the client only
		// ever sees the generic message.
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrMutationFailed.Error()})
	}
}
