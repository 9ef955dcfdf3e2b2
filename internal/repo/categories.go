package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/toomajBandad/MoonShop-Backend/internal/category"
	"github.com/toomajBandad/MoonShop-Backend/internal/models"
)

// CategoryRepo implements category.Store.
type CategoryRepo struct {
	*Repository[models.Category]
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{Repository: NewRepository[models.Category](db)}
}

func (r *CategoryRepo) ListNodes(ctx context.Context) ([]category.Node, error) {
	var rows []models.Category
	if err := r.DB.WithContext(ctx).Select("id", "parent_id", "level").Find(&rows).Error; err != nil {
		return nil, err
	}
	nodes := make([]category.Node, len(rows))
	for i, c := range rows {
		nodes[i] = category.Node{ID: c.ID, ParentID: c.ParentID, Level: c.Level}
	}
	return nodes, nil
}

func (r *CategoryRepo) SetLevel(ctx context.Context, id uuid.UUID, level int) error {
	return r.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Update("level", level).Error
}
