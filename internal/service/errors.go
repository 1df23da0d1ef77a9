package service

import (
	"errors"

	"github.com/dom/videotube/internal/domain"
	"github.com/dom/videotube/internal/repository"
)

const msgInternal = "Something went wrong"

// storeErr converts a repository failure into a domain error. notFound is
// the message used when the record is missing.
func storeErr(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return domain.NotFound(notFound)
	case errors.Is(err, repository.ErrConflict):
		return domain.Conflict("Resource already exists")
	default:
		var derr *domain.Error
		if errors.As(err, &derr) {
			return err
		}
		return domain.Internal(msgInternal, err)
	}
}
