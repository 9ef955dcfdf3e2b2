package category

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu     sync.Mutex
	nodes  []Node
	writes map[uuid.UUID]int
	failOn uuid.UUID
}

func (s *memStore) ListNodes(context.Context) ([]Node, error) {
	return s.nodes, nil
}

func (s *memStore) SetLevel(_ context.Context, id uuid.UUID, level int) error {
	if id == s.failOn {
		return errors.New("disk full")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writes == nil {
		s.writes = map[uuid.UUID]int{}
	}
	s.writes[id] = level
	return nil
}

func TestResolver_RecomputeAllLevels(t *testing.T) {
	t.Parallel()

	root, child, grand, orphan := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	store := &memStore{nodes: []Node{
		{ID: root, Level: 0},
		{ID: child, ParentID: ptr(root), Level: 0},
		{ID: grand, ParentID: ptr(child), Level: 2},
		{ID: orphan, ParentID: ptr(uuid.New()), Level: 5},
	}}

	r := &Resolver{Store: store, Workers: 2}
	report, err := r.RecomputeAllLevels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Scanned)
	assert.Equal(t, 2, report.Updated)
	assert.Empty(t, report.Cyclic)
	assert.Equal(t, map[uuid.UUID]int{child: 1, orphan: 1}, store.writes)
}

func TestResolver_RecomputeAllLevels_ReportsCycles(t *testing.T) {
	t.Parallel()

	a, b, ok := uuid.New(), uuid.New(), uuid.New()
	store := &memStore{nodes: []Node{
		{ID: a, ParentID: ptr(b), Level: 0},
		{ID: b, ParentID: ptr(a), Level: 0},
		{ID: ok, Level: 3},
	}}

	report, err := (&Resolver{Store: store}).RecomputeAllLevels(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycleDetected)

	assert.ElementsMatch(t, []uuid.UUID{a, b}, report.Cyclic)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, map[uuid.UUID]int{ok: 0}, store.writes)
}

func TestResolver_RecomputeAllLevels_StoreError(t *testing.T) {
	t.Parallel()

	root, child := uuid.New(), uuid.New()
	store := &memStore{
		nodes:  []Node{{ID: root}, {ID: child, ParentID: ptr(root)}},
		failOn: child,
	}

	_, err := (&Resolver{Store: store}).RecomputeAllLevels(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
