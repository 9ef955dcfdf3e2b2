package lineitem

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	p1, p2 := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		items   []Item
		product uuid.UUID
		delta   int
		want    []Item
		wantErr error
	}{
		{
			name:    "append to empty",
			product: p1, delta: 2,
			want: []Item{{ProductID: p1, Quantity: 2}},
		},
		{
			name:    "increment existing",
			items:   []Item{{ProductID: p1, Quantity: 2}, {ProductID: p2, Quantity: 1}},
			product: p2, delta: 3,
			want: []Item{{ProductID: p1, Quantity: 2}, {ProductID: p2, Quantity: 4}},
		},
		{
			name:    "append keeps order",
			items:   []Item{{ProductID: p1, Quantity: 1}},
			product: p2, delta: 1,
			want: []Item{{ProductID: p1, Quantity: 1}, {ProductID: p2, Quantity: 1}},
		},
		{name: "zero delta", product: p1, delta: 0, wantErr: ErrInvalidQuantity},
		{name: "negative delta", product: p1, delta: -1, wantErr: ErrInvalidQuantity},
		{name: "delta above max", product: p1, delta: MaxQuantity + 1, wantErr: ErrInvalidQuantity},
		{
			name:    "existing reaches max",
			items:   []Item{{ProductID: p1, Quantity: MaxQuantity - 1}},
			product: p1, delta: 1,
			want: []Item{{ProductID: p1, Quantity: MaxQuantity}},
		},
		{
			name:    "existing would pass max",
			items:   []Item{{ProductID: p1, Quantity: MaxQuantity}},
			product: p1, delta: 1,
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "huge delta does not wrap",
			items:   []Item{{ProductID: p1, Quantity: 1}},
			product: p1, delta: math.MaxInt,
			wantErr: ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Merge(tt.items, tt.product, tt.delta)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	p := uuid.New()
	in := []Item{{ProductID: p, Quantity: 1}}
	_, err := Merge(in, p, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, in[0].Quantity)
}

func TestMerge_TwiceAddsTwice(t *testing.T) {
	t.Parallel()

	p := uuid.New()
	items, err := Merge(nil, p, 2)
	require.NoError(t, err)
	items, err = Merge(items, p, 3)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestSetQuantityOnSlice(t *testing.T) {
	t.Parallel()

	p1, p2 := uuid.New(), uuid.New()
	base := []Item{{ProductID: p1, Quantity: 2}, {ProductID: p2, Quantity: 1}}

	tests := []struct {
		name    string
		items   []Item
		product uuid.UUID
		qty     int
		want    []Item
		wantErr error
	}{
		{
			name:  "overwrite",
			items: base, product: p1, qty: 7,
			want: []Item{{ProductID: p1, Quantity: 7}, {ProductID: p2, Quantity: 1}},
		},
		{
			name:  "zero removes",
			items: base, product: p1, qty: 0,
			want: []Item{{ProductID: p2, Quantity: 1}},
		},
		{
			name:  "zero on absent is no-op",
			items: []Item{{ProductID: p2, Quantity: 1}}, product: p1, qty: 0,
			want: []Item{{ProductID: p2, Quantity: 1}},
		},
		{name: "positive on absent", items: []Item{{ProductID: p2, Quantity: 1}}, product: p1, qty: 3, wantErr: ErrItemNotFound},
		{name: "negative", items: base, product: p1, qty: -1, wantErr: ErrInvalidQuantity},
		{name: "above max", items: base, product: p1, qty: MaxQuantity + 1, wantErr: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := setQuantity(tt.items, tt.product, tt.qty)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeThenSetZero_LeavesNoLine(t *testing.T) {
	t.Parallel()

	p := uuid.New()
	items, err := Merge(nil, p, 4)
	require.NoError(t, err)
	items, err = setQuantity(items, p, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	p1, p2 := uuid.New(), uuid.New()
	got, err := Normalize([]Item{
		{ProductID: p1, Quantity: 1},
		{ProductID: p2, Quantity: 2},
		{ProductID: p1, Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, []Item{{ProductID: p1, Quantity: 4}, {ProductID: p2, Quantity: 2}}, got)

	_, err = Normalize([]Item{{ProductID: p1, Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = Normalize([]Item{
		{ProductID: p1, Quantity: MaxQuantity},
		{ProductID: p1, Quantity: MaxQuantity},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
