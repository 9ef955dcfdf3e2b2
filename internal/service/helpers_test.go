package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/toomajBandad/MoonShop-Backend/internal/category"
	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
	"github.com/toomajBandad/MoonShop-Backend/internal/service"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/cache"
	pkgdb "github.com/toomajBandad/MoonShop-Backend/pkg/db"
	"github.com/toomajBandad/MoonShop-Backend/pkg/events"
	"github.com/toomajBandad/MoonShop-Backend/pkg/hash"
	"github.com/toomajBandad/MoonShop-Backend/pkg/tokens"
)

type fixture struct {
	db         *gorm.DB
	events     *events.Recorder
	cache      *cache.Memory
	users      *service.UserService
	products   *service.ProductService
	categories *service.CategoryService
	tags       *service.TagService
	carts      *service.CartService
	orders     *service.OrderService
	reviews    *service.ReviewService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := pkgdb.Open(ctx, "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })
	require.NoError(t, repo.Migrate(ctx, db))

	rec := &events.Recorder{}
	mem := cache.NewMemory()

	users := repo.NewUserRepo(db)
	products := repo.NewProductRepo(db)
	categories := repo.NewCategoryRepo(db)
	tags := repo.NewRepository[models.Tag](db)
	carts := repo.NewCartStore(db)
	orders := repo.NewOrderStore(db)
	reviews := repo.NewReviewRepo(db)

	return &fixture{
		db:     db,
		events: rec,
		cache:  mem,
		users: &service.UserService{
			Users:   users,
			Carts:   carts,
			Orders:  orders,
			Reviews: reviews,
			Hasher:  hash.Bcrypt{Cost: bcrypt.MinCost},
			Tokens:  tokens.NewIssuer([]byte("test-secret"), 0),
			Events:  rec,
			Cache:   mem,
		},
		products: &service.ProductService{
			Products:   products,
			Categories: categories,
			Tags:       tags,
			Cache:      mem,
			Events:     rec,
		},
		categories: &service.CategoryService{
			Categories: categories,
			Resolver:   &category.Resolver{Store: categories, Workers: 2},
		},
		tags:    &service.TagService{Tags: tags},
		carts:   service.NewCartService(carts, products, rec),
		orders:  service.NewOrderService(orders, users, products, rec),
		reviews: &service.ReviewService{Reviews: reviews, Products: products, Cache: mem, Events: rec},
	}
}

func (f *fixture) register(t *testing.T, name string) *transport.AuthResponse {
	t.Helper()
	res, err := f.users.Register(context.Background(), transport.RegisterRequest{
		Username: name,
		Email:    name + "@moonshop.test",
		Password: "Secret123",
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) category(t *testing.T, name string) *models.Category {
	t.Helper()
	c, err := f.categories.Create(context.Background(), transport.CreateCategoryRequest{Name: name, Description: name + " things"})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, name string, price float64) *models.Product {
	t.Helper()
	cat := f.category(t, "cat-"+name)
	p, err := f.products.Create(context.Background(), transport.CreateProductRequest{
		Name:       name,
		Brand:      "moon",
		Price:      price,
		CategoryID: cat.ID,
		Stock:      5,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) eventTypes() []string {
	out := make([]string, 0, len(f.events.Events))
	for _, r := range f.events.Events {
		if ev, ok := r.Event.(events.Event); ok {
			out = append(out, ev.Type)
		}
	}
	return out
}
