package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/toomajBandad/MoonShop-Backend/internal/models"
)

type UserRepo struct {
	*Repository[models.User]
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{Repository: NewRepository[models.User](db)}
}

// CreateWithCart inserts the user together with an empty cart.
func (r *UserRepo) CreateWithCart(ctx context.Context, u *models.User) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return translate(err)
		}
		cart = models.Cart{UserID: u.ID}
		return tx.Create(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	cart.Items = []models.CartItem{}
	return &cart, nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.FindOne(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}
