package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/toomajBandad/MoonShop-Backend/internal/category"
	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

type CategoryService struct {
	Categories *repo.CategoryRepo
	Resolver   *category.Resolver
}

func (s *CategoryService) List(ctx context.Context, offset, limit int) ([]models.Category, int64, error) {
	return s.Categories.FindMany(ctx, repo.Query{Order: "level ASC, name ASC", Offset: offset, Limit: limit})
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.Categories.FindByID(ctx, id)
	return c, notFound(err, "category")
}

// levelFor places id under parent in the current tree and derives its level.
func (s *CategoryService) levelFor(ctx context.Context, id uuid.UUID, parent *uuid.UUID) (int, error) {
	nodes, err := s.Categories.ListNodes(ctx)
	if err != nil {
		return 0, err
	}
	snap := category.NewSnapshot(nodes)
	if parent != nil {
		if _, ok := snap[*parent]; !ok {
			return 0, fmt.Errorf("parent category %s does not exist: %w", *parent, ErrValidation)
		}
	}
	snap[id] = parent

	lvl, err := category.ComputeLevel(id, snap)
	if errors.Is(err, category.ErrCycleDetected) {
		return 0, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return lvl, err
}

func (s *CategoryService) Create(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	desc := strings.TrimSpace(req.Description)
	if name == "" || desc == "" {
		return nil, fmt.Errorf("name and desc are required: %w", ErrValidation)
	}

	c := &models.Category{Base: models.Base{ID: uuid.New()}, Name: name, Description: desc, ParentID: req.ParentID}
	lvl, err := s.levelFor(ctx, c.ID, c.ParentID)
	if err != nil {
		return nil, err
	}
	c.Level = lvl

	if err := s.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update changes name, description or parent. Descendants keep their stored
// level until the next RecomputeLevels.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req transport.PatchCategoryRequest) (*models.Category, error) {
	current, err := s.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "category")
	}

	fields := map[string]any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", ErrValidation)
		}
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, fmt.Errorf("desc cannot be empty: %w", ErrValidation)
		}
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.ParentID != nil {
		var parent *uuid.UUID
		if raw := strings.TrimSpace(*req.ParentID); raw != "" {
			pid, err := uuid.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("parent_id is not a uuid: %w", ErrValidation)
			}
			if pid == id {
				return nil, fmt.Errorf("category cannot be its own parent: %w", ErrValidation)
			}
			parent = &pid
		}
		lvl, err := s.levelFor(ctx, current.ID, parent)
		if err != nil {
			return nil, err
		}
		fields["parent_id"] = nil
		if parent != nil {
			fields["parent_id"] = *parent
		}
		fields["level"] = lvl
	}

	c, err := s.Categories.Update(ctx, id, fields)
	return c, notFound(err, "category")
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.Categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *CategoryService) RecomputeLevels(ctx context.Context) (category.LevelReport, error) {
	report, err := s.Resolver.RecomputeAllLevels(ctx)
	if err != nil && !errors.Is(err, category.ErrCycleDetected) {
		logging.FromContext(ctx).Error("recompute_levels_error", "error", err)
	}
	return report, err
}
