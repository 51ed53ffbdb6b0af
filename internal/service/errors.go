package service

import (
	"errors"

	"content-studio-backend/pkg/logger"
)

var (
	ErrSectionNotFound  = errors.New("section not found")
	ErrBusinessNotFound = errors.New("business not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrArticleNotFound  = errors.New("article not found")

	// ErrSectionsRequired is raised when a request carries an explicit null
	// sections field. An omitted field is fine and defaults to empty.
	ErrSectionsRequired = errors.New("sections are required")

	ErrSlugTaken = errors.New("slug is already in use")

	// ErrMutationFailed hides internal storage errors from clients; the
	// original error is preserved in the logs only.
	ErrMutationFailed = errors.New("failed to apply content mutation")
)

func logError(err error, msg, id string) {
	fields := map[string]interface{}{}
	if id != "" {
		fields["id"] = id
	}
	logger.Error(err, msg, fields)
}
