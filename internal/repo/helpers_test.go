package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
	pkgdb "github.com/toomajBandad/MoonShop-Backend/pkg/db"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	db, err := pkgdb.Open(ctx, "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	require.NoError(t, repo.Migrate(ctx, db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) (*models.User, *models.Cart) {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@moonshop.test", PasswordHash: "x", Role: models.RoleUser}
	cart, err := repo.NewUserRepo(db).CreateWithCart(context.Background(), u)
	require.NoError(t, err)
	return u, cart
}

func seedCategory(t *testing.T, db *gorm.DB, name string, parent *uuid.UUID) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Description: name + " desc", ParentID: parent}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()
	cat := seedCategory(t, db, "cat-"+name, nil)
	p := &models.Product{Name: name, Brand: "moon", Price: price, CategoryID: cat.ID, Stock: 10}
	require.NoError(t, db.Create(p).Error)
	return p
}
