// Package lineitem reconciles (product, quantity) lines inside a cart or an
// order. Every container holds at most one line per product.
package lineitem

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrContainerNotFound = errors.New("container not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrContainerLocked   = errors.New("container is locked")
)

// MaxQuantity caps a single line. Stores reject merges that would exceed it.
const MaxQuantity = 1_000_000

type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Merge adds delta to the line for productID, appending a new line when none
// exists. The input slice is not modified.
func Merge(items []Item, productID uuid.UUID, delta int) ([]Item, error) {
	if err := checkDelta(delta); err != nil {
		return nil, err
	}
	out := make([]Item, len(items), len(items)+1)
	copy(out, items)

	for i := range out {
		if out[i].ProductID == productID {
			if out[i].Quantity > MaxQuantity-delta {
				return nil, fmt.Errorf("%w: %d + %d exceeds %d", ErrInvalidQuantity, out[i].Quantity, delta, MaxQuantity)
			}
			out[i].Quantity += delta
			return out, nil
		}
	}
	return append(out, Item{ProductID: productID, Quantity: delta}), nil
}

// setQuantity overwrites the quantity of an existing line. Zero removes the
// line and is a no-op when the line is absent. Stores implement the same
// semantics; this slice version is what their tests are checked against.
func setQuantity(items []Item, productID uuid.UUID, qty int) ([]Item, error) {
	if err := checkQuantity(qty); err != nil {
		return nil, err
	}

	out := make([]Item, 0, len(items))
	found := false
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
			continue
		}
		found = true
		if qty > 0 {
			it.Quantity = qty
			out = append(out, it)
		}
	}
	if !found && qty > 0 {
		return nil, fmt.Errorf("%w: product %s", ErrItemNotFound, productID)
	}
	return out, nil
}

// Normalize folds duplicate product lines into one, keeping first-seen order.
func Normalize(items []Item) ([]Item, error) {
	var out []Item
	for _, it := range items {
		var err error
		if out, err = Merge(out, it.ProductID, it.Quantity); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func checkDelta(delta int) error {
	if delta <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidQuantity, delta)
	}
	if delta > MaxQuantity {
		return fmt.Errorf("%w: quantity %d exceeds %d", ErrInvalidQuantity, delta, MaxQuantity)
	}
	return nil
}

func checkQuantity(qty int) error {
	if qty < 0 {
		return fmt.Errorf("%w: quantity must not be negative, got %d", ErrInvalidQuantity, qty)
	}
	if qty > MaxQuantity {
		return fmt.Errorf("%w: quantity %d exceeds %d", ErrInvalidQuantity, qty, MaxQuantity)
	}
	return nil
}
