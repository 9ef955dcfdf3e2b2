package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/toomajBandad/MoonShop-Backend/internal/category"
	"github.com/toomajBandad/MoonShop-Backend/internal/httpserver"
	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
	"github.com/toomajBandad/MoonShop-Backend/internal/service"
	"github.com/toomajBandad/MoonShop-Backend/pkg/cache"
	pkgdb "github.com/toomajBandad/MoonShop-Backend/pkg/db"
	"github.com/toomajBandad/MoonShop-Backend/pkg/events"
	"github.com/toomajBandad/MoonShop-Backend/pkg/hash"
	"github.com/toomajBandad/MoonShop-Backend/pkg/tokens"
)

var testSecret = []byte("handler-test-secret")

type testEnv struct {
	e      *echo.Echo
	issuer *tokens.Issuer
	events *events.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := pkgdb.Open(ctx, "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })
	require.NoError(t, repo.Migrate(ctx, db))

	rec := &events.Recorder{}
	mem := cache.NewMemory()
	issuer := tokens.NewIssuer(testSecret, time.Hour)

	users := repo.NewUserRepo(db)
	products := repo.NewProductRepo(db)
	categories := repo.NewCategoryRepo(db)
	tags := repo.NewRepository[models.Tag](db)
	carts := repo.NewCartStore(db)
	orders := repo.NewOrderStore(db)
	reviews := repo.NewReviewRepo(db)

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		Users: &httpserver.UserHTTP{Svc: &service.UserService{
			Users: users, Carts: carts, Orders: orders, Reviews: reviews,
			Hasher: hash.Bcrypt{Cost: bcrypt.MinCost}, Tokens: issuer, Events: rec, Cache: mem,
		}},
		Products: &httpserver.ProductHTTP{Svc: &service.ProductService{
			Products: products, Categories: categories, Tags: tags, Cache: mem, Events: rec,
		}},
		Categories: &httpserver.CategoryHTTP{Svc: &service.CategoryService{
			Categories: categories, Resolver: &category.Resolver{Store: categories},
		}},
		Tags:      &httpserver.TagHTTP{Svc: &service.TagService{Tags: tags}},
		Carts:     &httpserver.CartHTTP{Svc: service.NewCartService(carts, products, rec)},
		Orders:    &httpserver.OrderHTTP{Svc: service.NewOrderService(orders, users, products, rec)},
		Reviews:   &httpserver.ReviewHTTP{Svc: &service.ReviewService{Reviews: reviews, Products: products, Cache: mem, Events: rec}},
		JWTSecret: testSecret,
	})

	return &testEnv{e: e, issuer: issuer, events: rec}
}

// do sends body as JSON with token as bearer (when set) and returns the recorder.
func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type authResp struct {
	Token string       `json:"token"`
	User  models.User  `json:"user"`
	Cart  *models.Cart `json:"cart"`
}

func (env *testEnv) register(t *testing.T, name string) authResp {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/user/newUser", "", map[string]string{
		"username": name,
		"email":    name + "@moonshop.test",
		"password": "Secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[authResp](t, rec)
}

func (env *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	tok, _, err := env.issuer.Issue(uuid.NewString(), tokens.RoleAdmin)
	require.NoError(t, err)
	return tok
}

// seedProduct creates a category and a product through the admin API.
func (env *testEnv) seedProduct(t *testing.T, name string, price float64) models.Product {
	t.Helper()
	admin := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/category", admin, map[string]any{"name": "cat-" + name, "desc": "things"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cat := decode[models.Category](t, rec)

	rec = env.do(t, http.MethodPost, "/product", admin, map[string]any{
		"name":        name,
		"brand":       "moon",
		"price":       price,
		"category_id": cat.ID,
		"stock":       10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Product](t, rec)
}
