package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, repo.IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, repo.IsUniqueViolation(errors.New("UNIQUE constraint failed: tags.name")))
	assert.False(t, repo.IsUniqueViolation(errors.New("boom")))
}

func TestRepository_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := repo.NewRepository[models.Tag](newTestDB(t))

	tag := &models.Tag{Name: "lamp"}
	require.NoError(t, r.Create(ctx, tag))
	require.NotEqual(t, uuid.Nil, tag.ID)

	err := r.Create(ctx, &models.Tag{Name: "lamp"})
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	got, err := r.FindByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "lamp", got.Name)

	got, err = r.FindOne(ctx, "name = ?", "lamp")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, got.ID)

	updated, err := r.Update(ctx, tag.ID, map[string]any{"name": "desk"})
	require.NoError(t, err)
	assert.Equal(t, "desk", updated.Name)

	_, err = r.Update(ctx, uuid.New(), map[string]any{"name": "x"})
	assert.ErrorIs(t, err, repo.ErrNotFound)

	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, r.Create(ctx, &models.Tag{Name: n}))
	}
	page, total, err := r.FindMany(ctx, repo.Query{Order: "name ASC", Offset: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].Name)
	assert.Equal(t, "c", page[1].Name)

	deleted, err := r.Delete(ctx, tag.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = r.Delete(ctx, tag.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = r.FindByID(ctx, tag.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
