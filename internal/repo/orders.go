package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/toomajBandad/MoonShop-Backend/internal/lineitem"
	"github.com/toomajBandad/MoonShop-Backend/internal/models"
)

// OrderStore edits the most recent order of a user. It implements
// lineitem.Store; orders that are paid or past Pending are locked.
type OrderStore struct {
	DB *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{DB: db}
}

func openOrder(tx *gorm.DB, ownerID uuid.UUID) (*models.Order, error) {
	var o models.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no order for user %s", lineitem.ErrContainerNotFound, ownerID)
		}
		return nil, err
	}
	if !o.Editable() {
		return nil, fmt.Errorf("%w: order %s is %s (paid=%t)", lineitem.ErrContainerLocked, o.ID, o.Status, o.IsPaid)
	}
	return &o, nil
}

func recomputeTotal(tx *gorm.DB, orderID uuid.UUID) error {
	return tx.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total_price", gorm.Expr("(SELECT COALESCE(SUM(quantity * price), 0) FROM order_items WHERE order_id = ?)", orderID)).
		Error
}

func (s *OrderStore) mutate(ctx context.Context, ownerID uuid.UUID, fn func(tx *gorm.DB, o *models.Order) error) (*models.Order, error) {
	var orderID uuid.UUID
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := openOrder(tx, ownerID)
		if err != nil {
			return err
		}
		orderID = o.ID
		if err := fn(tx, o); err != nil {
			return err
		}
		return recomputeTotal(tx, o.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.Load(ctx, orderID)
}

// Increment keeps the price snapshot of an existing line; unitPrice is only
// written for a new line.
func (s *OrderStore) Increment(ctx context.Context, ownerID, productID uuid.UUID, delta int, unitPrice float64) (*models.Order, error) {
	return s.mutate(ctx, ownerID, func(tx *gorm.DB, o *models.Order) error {
		return orderLines.upsert(tx, &models.OrderItem{OrderID: o.ID, ProductID: productID, Quantity: delta, Price: unitPrice}, delta)
	})
}

func (s *OrderStore) SetQuantity(ctx context.Context, ownerID, productID uuid.UUID, qty int) (*models.Order, error) {
	return s.mutate(ctx, ownerID, func(tx *gorm.DB, o *models.Order) error {
		return orderLines.set(tx, o.ID, productID, qty)
	})
}

func (s *OrderStore) Remove(ctx context.Context, ownerID, productID uuid.UUID) (*models.Order, error) {
	return s.mutate(ctx, ownerID, func(tx *gorm.DB, o *models.Order) error {
		return orderLines.remove(tx, o.ID, productID)
	})
}

func (s *OrderStore) Load(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var o models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ?", orderID).
		First(&o).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// Create inserts the order with its lines and derives the total in one
// transaction. Lines must already be unique per product.
func (s *OrderStore) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := o.Items
		o.Items = nil
		if err := tx.Create(o).Error; err != nil {
			return translate(err)
		}
		for i := range items {
			items[i].OrderID = o.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return translate(err)
			}
		}
		return recomputeTotal(tx, o.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.Load(ctx, o.ID)
}

func (s *OrderStore) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Order, int64, error) {
	return NewRepository[models.Order](s.DB).FindMany(ctx, Query{
		Where:   "user_id = ?",
		Args:    []any{userID},
		Offset:  offset,
		Limit:   limit,
		Preload: []string{"Items"},
	})
}

func (s *OrderStore) List(ctx context.Context, offset, limit int) ([]models.Order, int64, error) {
	return NewRepository[models.Order](s.DB).FindMany(ctx, Query{Offset: offset, Limit: limit, Preload: []string{"Items"}})
}

func (s *OrderStore) setFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Order, error) {
	if _, err := NewRepository[models.Order](s.DB).Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.Load(ctx, id)
}

func (s *OrderStore) MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) (*models.Order, error) {
	return s.setFields(ctx, id, map[string]any{"is_paid": true, "paid_at": at})
}

func (s *OrderStore) MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) (*models.Order, error) {
	return s.setFields(ctx, id, map[string]any{
		"is_delivered": true,
		"delivered_at": at,
		"status":       models.StatusDelivered,
	})
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	return s.setFields(ctx, id, map[string]any{"status": status})
}

func (s *OrderStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := orderLines.clear(tx, id); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Order{})
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

func (s *OrderStore) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.Order{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("order_id IN (?)", sub).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.Order{}).Error
	})
}
