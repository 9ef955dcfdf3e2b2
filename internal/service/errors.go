package service

import (
	"errors"
	"fmt"

	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
)

var (
	ErrValidation         = errors.New("validation")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrDuplicateReview    = errors.New("review already exists")
)

// notFound maps repo.ErrNotFound onto ErrNotFound with a subject, leaving
// other errors untouched.
func notFound(err error, what string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

func conflict(err error, what string) error {
	if errors.Is(err, repo.ErrDuplicate) {
		return fmt.Errorf("%s: %w", what, ErrConflict)
	}
	return err
}
