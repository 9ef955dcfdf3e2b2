package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/toomajBandad/MoonShop-Backend/internal/lineitem"
	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/events"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

type OrderService struct {
	Orders   *repo.OrderStore
	Users    *repo.UserRepo
	Products lineitem.Catalog
	Lines    *lineitem.Merger[models.Order]
	Events   Publisher
	Now      func() time.Time
}

func NewOrderService(orders *repo.OrderStore, users *repo.UserRepo, products lineitem.Catalog, pub Publisher) *OrderService {
	return &OrderService{
		Orders:   orders,
		Users:    users,
		Products: products,
		Lines:    &lineitem.Merger[models.Order]{Kind: "order", Store: orders, Catalog: products},
		Events:   pub,
		Now:      time.Now,
	}
}

func (s *OrderService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Create places a Pending order. Repeated products are folded into a single
// line and every line snapshots the product's current price.
func (s *OrderService) Create(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create", "user_id", req.UserID)

	if req.UserID == uuid.Nil {
		return nil, fmt.Errorf("user_id is required: %w", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order needs at least one item: %w", ErrValidation)
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("unknown payment method %q: %w", req.PaymentMethod, ErrValidation)
	}

	lines := make([]lineitem.Item, len(req.Items))
	for i, it := range req.Items {
		lines[i] = lineitem.Item{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	lines, err := lineitem.Normalize(lines)
	if err != nil {
		return nil, err
	}

	if ok, err := s.Users.Exists(ctx, "id = ?", req.UserID); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("user %s: %w", req.UserID, ErrNotFound)
	}

	items := make([]models.OrderItem, len(lines))
	for i, it := range lines {
		price, err := s.Products.UnitPrice(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		items[i] = models.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: price}
	}

	o, err := s.Orders.Create(ctx, &models.Order{
		UserID:          req.UserID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.StatusPending,
	})
	if err != nil {
		l.Error("create_order_error", "error", err)
		return nil, err
	}

	publish(ctx, s.Events, events.TopicOrders, "order_created", o.ID.String(), o.UserID.String(),
		map[string]any{"total_price": o.TotalPrice, "items": len(o.Items)})
	l.Info("order_created", "order_id", o.ID, "total_price", o.TotalPrice)
	return o, nil
}

// Add merges a line into the user's latest order.
func (s *OrderService) Add(ctx context.Context, userID, productID uuid.UUID, qty int) (*models.Order, error) {
	o, err := s.Lines.MergeLineItem(ctx, userID, productID, qty)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicOrders, "order_item_added", o.ID.String(), userID.String(),
		map[string]any{"product_id": productID, "quantity": qty})
	return o, nil
}

func (s *OrderService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) (*models.Order, error) {
	o, err := s.Lines.SetLineItemQuantity(ctx, userID, productID, qty)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.TopicOrders, "order_item_updated", o.ID.String(), userID.String(),
		map[string]any{"product_id": productID, "quantity": qty})
	return o, nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, err := s.Orders.Load(ctx, id)
	return o, notFound(err, "order")
}

func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Order, int64, error) {
	return s.Orders.ListByUser(ctx, userID, offset, limit)
}

func (s *OrderService) List(ctx context.Context, offset, limit int) ([]models.Order, int64, error) {
	return s.Orders.List(ctx, offset, limit)
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.Orders.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	publish(ctx, s.Events, events.TopicOrders, "order_deleted", id.String(), "", nil)
	return nil
}

func (s *OrderService) MarkPaid(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, err := s.Orders.MarkPaid(ctx, id, s.now())
	if err != nil {
		return nil, notFound(err, "order")
	}
	publish(ctx, s.Events, events.TopicOrders, "order_paid", o.ID.String(), o.UserID.String(), map[string]any{"total_price": o.TotalPrice})
	return o, nil
}

func (s *OrderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	o, err := s.Orders.MarkDelivered(ctx, id, s.now())
	if err != nil {
		return nil, notFound(err, "order")
	}
	publish(ctx, s.Events, events.TopicOrders, "order_delivered", o.ID.String(), o.UserID.String(), nil)
	return o, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("unknown order status %q: %w", status, ErrValidation)
	}
	o, err := s.Orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, notFound(err, "order")
	}
	publish(ctx, s.Events, events.TopicOrders, "order_status_changed", o.ID.String(), o.UserID.String(), map[string]any{"status": status})
	return o, nil
}
