package service

import (
	"errors"

	"fms/internal/repository"
)

// isConflict reports whether a repository write was rejected by a uniqueness
// constraint.
func isConflict(err error) bool {
	return errors.Is(err, repository.ErrDuplicate)
}
