package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/toomajBandad/MoonShop-Backend/internal/lineitem"
	"github.com/toomajBandad/MoonShop-Backend/internal/models"
)

// CartStore keeps one cart per user. It implements lineitem.Store.
type CartStore struct {
	DB *gorm.DB
}

func NewCartStore(db *gorm.DB) *CartStore {
	return &CartStore{DB: db}
}

func cartOf(tx *gorm.DB, ownerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Where("user_id = ?", ownerID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no cart for user %s", lineitem.ErrContainerNotFound, ownerID)
		}
		return nil, err
	}
	return &cart, nil
}

func (s *CartStore) mutate(ctx context.Context, ownerID uuid.UUID, fn func(tx *gorm.DB, cart *models.Cart) error) (*models.Cart, error) {
	var cartID uuid.UUID
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := cartOf(tx, ownerID)
		if err != nil {
			return err
		}
		cartID = cart.ID
		return fn(tx, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.Load(ctx, cartID)
}

func (s *CartStore) Increment(ctx context.Context, ownerID, productID uuid.UUID, delta int, _ float64) (*models.Cart, error) {
	return s.mutate(ctx, ownerID, func(tx *gorm.DB, cart *models.Cart) error {
		return cartLines.upsert(tx, &models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: delta}, delta)
	})
}

func (s *CartStore) SetQuantity(ctx context.Context, ownerID, productID uuid.UUID, qty int) (*models.Cart, error) {
	return s.mutate(ctx, ownerID, func(tx *gorm.DB, cart *models.Cart) error {
		return cartLines.set(tx, cart.ID, productID, qty)
	})
}

func (s *CartStore) Remove(ctx context.Context, ownerID, productID uuid.UUID) (*models.Cart, error) {
	return s.mutate(ctx, ownerID, func(tx *gorm.DB, cart *models.Cart) error {
		return cartLines.remove(tx, cart.ID, productID)
	})
}

func (s *CartStore) Load(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ?", cartID).
		First(&cart).Error
	if err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (s *CartStore) ByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := cartOf(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return s.Load(ctx, cart.ID)
}

func (s *CartStore) List(ctx context.Context, offset, limit int) ([]models.Cart, int64, error) {
	return NewRepository[models.Cart](s.DB).FindMany(ctx, Query{Offset: offset, Limit: limit, Preload: []string{"Items"}})
}

// Clear empties the cart but keeps it; it reports whether the cart exists.
func (s *CartStore) Clear(ctx context.Context, cartID uuid.UUID) (bool, error) {
	found := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Cart{}).Where("id = ?", cartID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		found = true
		return cartLines.clear(tx, cartID)
	})
	return found, err
}

func (s *CartStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&models.Cart{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("cart_id IN ?", ids).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Cart{}).Error
	})
}
