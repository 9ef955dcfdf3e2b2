package lineitem

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

// Store applies line changes atomically to the container owned by ownerID.
// Implementations resolve the container themselves and report
// ErrContainerNotFound, ErrContainerLocked and ErrItemNotFound. Increment
// reports ErrInvalidQuantity when the line would pass MaxQuantity.
type Store[C any] interface {
	Increment(ctx context.Context, ownerID, productID uuid.UUID, delta int, unitPrice float64) (*C, error)
	SetQuantity(ctx context.Context, ownerID, productID uuid.UUID, qty int) (*C, error)
	Remove(ctx context.Context, ownerID, productID uuid.UUID) (*C, error)
}

// Catalog resolves the current unit price of a product, or ErrProductNotFound.
type Catalog interface {
	UnitPrice(ctx context.Context, productID uuid.UUID) (float64, error)
}

type Merger[C any] struct {
	Kind    string
	Store   Store[C]
	Catalog Catalog
}

func (m *Merger[C]) MergeLineItem(ctx context.Context, ownerID, productID uuid.UUID, delta int) (*C, error) {
	l := logging.FromContext(ctx).With("svc", m.Kind+".merge_line_item", "owner_id", ownerID, "product_id", productID)

	if err := checkDelta(delta); err != nil {
		return nil, err
	}

	price, err := m.Catalog.UnitPrice(ctx, productID)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			l.Error("merge_line_item_error", "reason", "cannot resolve product", "error", err)
		}
		return nil, err
	}

	c, err := m.Store.Increment(ctx, ownerID, productID, delta, price)
	if err != nil {
		l.Warn("merge_line_item_error", "quantity", delta, "error", err)
		return nil, err
	}

	l.Info("line_item_merged", "quantity", delta)
	return c, nil
}

func (m *Merger[C]) SetLineItemQuantity(ctx context.Context, ownerID, productID uuid.UUID, qty int) (*C, error) {
	l := logging.FromContext(ctx).With("svc", m.Kind+".set_line_item_quantity", "owner_id", ownerID, "product_id", productID)

	if err := checkQuantity(qty); err != nil {
		return nil, err
	}

	var (
		c   *C
		err error
	)
	switch {
	case qty == 0:
		c, err = m.Store.Remove(ctx, ownerID, productID)
	default:
		c, err = m.Store.SetQuantity(ctx, ownerID, productID, qty)
	}
	if err != nil {
		l.Warn("set_line_item_quantity_error", "quantity", qty, "error", err)
		return nil, err
	}

	l.Info("line_item_quantity_set", "quantity", qty)
	return c, nil
}
