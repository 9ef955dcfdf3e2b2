package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
)

type TagService struct {
	Tags *repo.Repository[models.Tag]
}

func (s *TagService) List(ctx context.Context, offset, limit int) ([]models.Tag, int64, error) {
	return s.Tags.FindMany(ctx, repo.Query{Order: "name ASC", Offset: offset, Limit: limit})
}

func (s *TagService) Get(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	t, err := s.Tags.FindByID(ctx, id)
	return t, notFound(err, "tag")
}

func (s *TagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	name = models.NormalizeTag(name)
	if name == "" {
		return nil, fmt.Errorf("tag name is required: %w", ErrValidation)
	}
	if ok, err := s.Tags.Exists(ctx, "name = ?", name); err != nil {
		return nil, err
	} else if ok {
		return nil, fmt.Errorf("tag %q already exists: %w", name, ErrConflict)
	}

	t := &models.Tag{Name: name}
	if err := s.Tags.Create(ctx, t); err != nil {
		return nil, conflict(err, "tag "+name)
	}
	return t, nil
}

func (s *TagService) Update(ctx context.Context, id uuid.UUID, name string) (*models.Tag, error) {
	name = models.NormalizeTag(name)
	if name == "" {
		return nil, fmt.Errorf("tag name is required: %w", ErrValidation)
	}
	t, err := s.Tags.Update(ctx, id, map[string]any{"name": name})
	if err != nil {
		return nil, conflict(notFound(err, "tag"), "tag "+name)
	}
	return t, nil
}

func (s *TagService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.Tags.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("tag %s: %w", id, ErrNotFound)
	}
	return nil
}
