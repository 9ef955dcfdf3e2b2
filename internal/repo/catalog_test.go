package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toomajBandad/MoonShop-Backend/internal/category"
	"github.com/toomajBandad/MoonShop-Backend/internal/lineitem"
	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
)

func TestReviewRepo_RatingIsMeanOfAllReviews(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	p := seedProduct(t, db, "lamp", 10)
	r := repo.NewReviewRepo(db)

	ratings := []int{5, 4, 2}
	for i, rating := range ratings {
		u, _ := seedUser(t, db, "critic0"+string(rune('a'+i)))
		require.NoError(t, r.CreateAndRecompute(ctx, &models.Review{ProductID: p.ID, UserID: u.ID, Rating: rating}))
	}

	var got models.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.InDelta(t, 11.0/3.0, got.Ratings, 1e-9)
	assert.Equal(t, 3, got.ReviewCount)
}

func TestReviewRepo_DuplicateLeavesRatingUnchanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	p := seedProduct(t, db, "desk", 10)
	u, _ := seedUser(t, db, "critic10")
	r := repo.NewReviewRepo(db)

	require.NoError(t, r.CreateAndRecompute(ctx, &models.Review{ProductID: p.ID, UserID: u.ID, Rating: 4}))
	err := r.CreateAndRecompute(ctx, &models.Review{ProductID: p.ID, UserID: u.ID, Rating: 1})
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	var got models.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 4.0, got.Ratings)
	assert.Equal(t, 1, got.ReviewCount)
}

func TestReviewRepo_UpdateAndDeleteRecompute(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	p := seedProduct(t, db, "chair", 10)
	a, _ := seedUser(t, db, "critic20")
	b, _ := seedUser(t, db, "critic21")
	r := repo.NewReviewRepo(db)

	ra := &models.Review{ProductID: p.ID, UserID: a.ID, Rating: 5}
	rb := &models.Review{ProductID: p.ID, UserID: b.ID, Rating: 3}
	require.NoError(t, r.CreateAndRecompute(ctx, ra))
	require.NoError(t, r.CreateAndRecompute(ctx, rb))

	_, err := r.UpdateAndRecompute(ctx, rb.ID, map[string]any{"rating": 1})
	require.NoError(t, err)

	var got models.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 3.0, got.Ratings)

	_, err = r.DeleteAndRecompute(ctx, ra.ID)
	require.NoError(t, err)
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 1.0, got.Ratings)
	assert.Equal(t, 1, got.ReviewCount)

	touched, err := r.DeleteByUser(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{p.ID}, touched)
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Zero(t, got.Ratings)
	assert.Zero(t, got.ReviewCount)

	_, err = r.DeleteAndRecompute(ctx, uuid.New())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProductRepo_Lookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	r := repo.NewProductRepo(db)
	p := seedProduct(t, db, "Moon Lamp", 12.5)

	price, err := r.UnitPrice(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.5, price)

	_, err = r.UnitPrice(ctx, uuid.New())
	assert.ErrorIs(t, err, lineitem.ErrProductNotFound)

	taken, err := r.NameTaken(ctx, "  moon LAMP ", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = r.NameTaken(ctx, "moon lamp", p.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	tags := []models.Tag{{Name: "light"}, {Name: "home"}}
	require.NoError(t, db.Create(&tags).Error)
	got, err := r.ReplaceTags(ctx, p.ID, tags)
	require.NoError(t, err)
	assert.Len(t, got.Tags, 2)

	byTag, total, err := r.ByTagName(ctx, " LIGHT ", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byTag, 1)
	assert.Equal(t, p.ID, byTag[0].ID)

	byCat, total, err := r.ByCategoryName(ctx, "cat-Moon Lamp", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, byCat, 1)

	deleted, err := r.Remove(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var links int64
	require.NoError(t, db.Table("product_tags").Where("product_id = ?", p.ID).Count(&links).Error)
	assert.Zero(t, links)
}

func TestCategoryRepo_WithResolver(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	r := repo.NewCategoryRepo(db)

	root := seedCategory(t, db, "home", nil)
	child := seedCategory(t, db, "kitchen", &root.ID)
	grand := seedCategory(t, db, "knives", &child.ID)
	missing := uuid.New()
	orphan := seedCategory(t, db, "lost", &missing)

	report, err := (&category.Resolver{Store: r}).RecomputeAllLevels(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Scanned)
	assert.Equal(t, 3, report.Updated)

	levels := map[uuid.UUID]int{}
	nodes, err := r.ListNodes(ctx)
	require.NoError(t, err)
	for _, n := range nodes {
		levels[n.ID] = n.Level
	}
	assert.Equal(t, map[uuid.UUID]int{root.ID: 0, child.ID: 1, grand.ID: 2, orphan.ID: 1}, levels)
}
