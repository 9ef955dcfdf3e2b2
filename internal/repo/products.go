package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/toomajBandad/MoonShop-Backend/internal/lineitem"
	"github.com/toomajBandad/MoonShop-Backend/internal/models"
)

type ProductRepo struct {
	*Repository[models.Product]
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{Repository: NewRepository[models.Product](db)}
}

// UnitPrice implements lineitem.Catalog.
func (r *ProductRepo) UnitPrice(ctx context.Context, productID uuid.UUID) (float64, error) {
	var p models.Product
	err := r.DB.WithContext(ctx).Select("id", "price").Where("id = ?", productID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: %s", lineitem.ErrProductNotFound, productID)
		}
		return 0, err
	}
	return p.Price, nil
}

func (r *ProductRepo) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return r.FindByID(ctx, id, "Tags")
}

// NameTaken compares names case-insensitively, ignoring the product except.
func (r *ProductRepo) NameTaken(ctx context.Context, name string, except uuid.UUID) (bool, error) {
	return r.Exists(ctx, "LOWER(name) = ? AND id <> ?", strings.ToLower(strings.TrimSpace(name)), except)
}

func (r *ProductRepo) ByCategoryName(ctx context.Context, name string, offset, limit int) ([]models.Product, int64, error) {
	sub := r.DB.Model(&models.Category{}).Select("id").Where("name = ?", name)
	return r.FindMany(ctx, Query{
		Where:   "category_id IN (?)",
		Args:    []any{sub},
		Offset:  offset,
		Limit:   limit,
		Preload: []string{"Tags"},
	})
}

func (r *ProductRepo) ByTagName(ctx context.Context, name string, offset, limit int) ([]models.Product, int64, error) {
	sub := r.DB.Table("product_tags").
		Select("product_tags.product_id").
		Joins("JOIN tags ON tags.id = product_tags.tag_id").
		Where("tags.name = ?", models.NormalizeTag(name))
	return r.FindMany(ctx, Query{
		Where:   "id IN (?)",
		Args:    []any{sub},
		Offset:  offset,
		Limit:   limit,
		Preload: []string{"Tags"},
	})
}

// ReplaceTags sets the product's tag list to exactly tags.
func (r *ProductRepo) ReplaceTags(ctx context.Context, id uuid.UUID, tags []models.Tag) (*models.Product, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p := models.Product{Base: models.Base{ID: id}}
		if err := tx.Model(&p).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Remove deletes the product with its tag links and reviews.
func (r *ProductRepo) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_tags WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Product{})
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}
