package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/cache"
	"github.com/toomajBandad/MoonShop-Backend/pkg/events"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

type ProductService struct {
	Products   *repo.ProductRepo
	Categories *repo.CategoryRepo
	Tags       *repo.Repository[models.Tag]
	Cache      ProductCache
	Events     Publisher
}

func jsonList(v []string) datatypes.JSONSlice[string] {
	if v == nil {
		v = []string{}
	}
	return datatypes.JSONSlice[string](v)
}

func (s *ProductService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, cache.ProductKey(id.String())); err != nil {
		logging.FromContext(ctx).Warn("cache_invalidate_error", "product_id", id, "error", err)
	}
}

func (s *ProductService) List(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	return s.Products.FindMany(ctx, repo.Query{Offset: offset, Limit: limit, Preload: []string{"Tags"}})
}

// Get reads through the product cache.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "product.get", "product_id", id)
	key := cache.ProductKey(id.String())

	if s.Cache != nil {
		var cached models.Product
		hit, err := s.Cache.GetJSON(ctx, key, &cached)
		if err != nil {
			l.Warn("cache_read_error", "error", err)
		}
		if hit {
			return &cached, nil
		}
	}

	p, err := s.Products.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}

	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, key, p); err != nil {
			l.Warn("cache_write_error", "error", err)
		}
	}
	return p, nil
}

func (s *ProductService) ByCategoryName(ctx context.Context, name string, offset, limit int) ([]models.Product, int64, error) {
	if strings.TrimSpace(name) == "" {
		return nil, 0, fmt.Errorf("category name is required: %w", ErrValidation)
	}
	return s.Products.ByCategoryName(ctx, name, offset, limit)
}

func (s *ProductService) ByTagName(ctx context.Context, name string, offset, limit int) ([]models.Product, int64, error) {
	if models.NormalizeTag(name) == "" {
		return nil, 0, fmt.Errorf("tag name is required: %w", ErrValidation)
	}
	return s.Products.ByTagName(ctx, name, offset, limit)
}

func (s *ProductService) checkName(ctx context.Context, name string, except uuid.UUID) error {
	taken, err := s.Products.NameTaken(ctx, name, except)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("product %q already exists: %w", name, ErrConflict)
	}
	return nil
}

func (s *ProductService) checkCategory(ctx context.Context, id uuid.UUID) error {
	ok, err := s.Categories.Exists(ctx, "id = ?", id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("category %s does not exist: %w", id, ErrValidation)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	switch {
	case name == "" || strings.TrimSpace(req.Brand) == "":
		return nil, fmt.Errorf("name and brand are required: %w", ErrValidation)
	case req.Price < 0:
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	case req.Stock < 0:
		return nil, fmt.Errorf("stock cannot be negative: %w", ErrValidation)
	case req.CategoryID == uuid.Nil:
		return nil, fmt.Errorf("category_id is required: %w", ErrValidation)
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	p := &models.Product{
		Name:        name,
		Brand:       strings.TrimSpace(req.Brand),
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		Sold:        req.Sold,
		Images:      jsonList(req.Images),
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return nil, conflict(err, "product name")
	}

	publish(ctx, s.Events, events.TopicProducts, "product_created", p.ID.String(), "", map[string]any{"name": p.Name})
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", ErrValidation)
		}
		if err := s.checkName(ctx, name, id); err != nil {
			return nil, err
		}
		fields["name"] = name
	}
	if req.Brand != nil {
		fields["brand"] = strings.TrimSpace(*req.Brand)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
		}
		fields["price"] = *req.Price
	}
	if req.Discount != nil {
		fields["discount"] = *req.Discount
	}
	if req.Sold != nil {
		fields["sold"] = *req.Sold
	}
	if req.Images != nil {
		fields["images"] = jsonList(*req.Images)
	}
	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *req.CategoryID
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative: %w", ErrValidation)
		}
		fields["stock"] = *req.Stock
	}

	if _, err := s.Products.Update(ctx, id, fields); err != nil {
		return nil, conflict(notFound(err, "product"), "product name")
	}
	s.invalidate(ctx, id)

	p, err := s.Products.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	publish(ctx, s.Events, events.TopicProducts, "product_updated", p.ID.String(), "", map[string]any{"name": p.Name})
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.Products.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	s.invalidate(ctx, id)
	publish(ctx, s.Events, events.TopicProducts, "product_deleted", id.String(), "", nil)
	return nil
}

// AssignTags replaces the product's tags with the existing tags named in
// names. Unknown names are ignored; none matching is ErrNotFound.
func (s *ProductService) AssignTags(ctx context.Context, id uuid.UUID, names []string) (*models.Product, error) {
	normalized := make([]string, 0, len(names))
	for _, n := range names {
		if n = models.NormalizeTag(n); n != "" {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return nil, fmt.Errorf("tags are required: %w", ErrValidation)
	}

	if ok, err := s.Products.Exists(ctx, "id = ?", id); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	tags, _, err := s.Tags.FindMany(ctx, repo.Query{Where: "name IN ?", Args: []any{normalized}, Order: "name ASC"})
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("no matching tags: %w", ErrNotFound)
	}

	p, err := s.Products.ReplaceTags(ctx, id, tags)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound(err, "product")
		}
		return nil, err
	}
	s.invalidate(ctx, id)
	return p, nil
}
