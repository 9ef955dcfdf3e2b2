package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/toomajBandad/MoonShop-Backend/internal/lineitem"
	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
	"github.com/toomajBandad/MoonShop-Backend/pkg/events"
)

type CartService struct {
	Carts  *repo.CartStore
	Lines  *lineitem.Merger[models.Cart]
	Events Publisher
}

func NewCartService(carts *repo.CartStore, products lineitem.Catalog, pub Publisher) *CartService {
	return &CartService{
		Carts:  carts,
		Lines:  &lineitem.Merger[models.Cart]{Kind: "cart", Store: carts, Catalog: products},
		Events: pub,
	}
}

func (s *CartService) Add(ctx context.Context, userID, productID uuid.UUID, qty int) (*models.Cart, error) {
	cart, err := s.Lines.MergeLineItem(ctx, userID, productID, qty)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicCarts, "cart_item_added", cart.ID.String(), userID.String(),
		map[string]any{"product_id": productID, "quantity": qty})
	return cart, nil
}

func (s *CartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (*models.Cart, error) {
	cart, err := s.Lines.SetLineItemQuantity(ctx, userID, productID, qty)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicCarts, "cart_item_updated", cart.ID.String(), userID.String(),
		map[string]any{"product_id": productID, "quantity": qty})
	return cart, nil
}

func (s *CartService) Get(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	c, err := s.Carts.Load(ctx, id)
	return c, notFound(err, "cart")
}

func (s *CartService) ByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return s.Carts.ByUser(ctx, userID)
}

func (s *CartService) List(ctx context.Context, offset, limit int) ([]models.Cart, int64, error) {
	return s.Carts.List(ctx, offset, limit)
}

// Clear drops every line of the cart; the cart itself stays attached to its user.
func (s *CartService) Clear(ctx context.Context, id uuid.UUID) error {
	found, err := s.Carts.Clear(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("cart %s: %w", id, ErrNotFound)
	}
	publish(ctx, s.Events, events.TopicCarts, "cart_cleared", id.String(), "", nil)
	return nil
}
