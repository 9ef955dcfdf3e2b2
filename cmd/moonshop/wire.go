package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/toomajBandad/MoonShop-Backend/internal/category"
	"github.com/toomajBandad/MoonShop-Backend/internal/httpserver"
	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
	"github.com/toomajBandad/MoonShop-Backend/internal/service"
	"github.com/toomajBandad/MoonShop-Backend/pkg/cache"
	"github.com/toomajBandad/MoonShop-Backend/pkg/config"
	pkgdb "github.com/toomajBandad/MoonShop-Backend/pkg/db"
	"github.com/toomajBandad/MoonShop-Backend/pkg/events"
	"github.com/toomajBandad/MoonShop-Backend/pkg/hash"
	"github.com/toomajBandad/MoonShop-Backend/pkg/tokens"
)

type eventSink interface {
	service.Publisher
	Close() error
}

type productCache interface {
	service.ProductCache
	Close() error
}

type app struct {
	db        *gorm.DB
	publisher eventSink
	cache     productCache
	deps      *httpserver.Deps
}

func openDB(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := repo.Migrate(ctx, db); err != nil {
		_ = pkgdb.Close(db)
		return nil, err
	}
	return db, nil
}

// newApp opens every backing store and builds the services. Kafka and Redis
// are optional; without them events are dropped and reads skip the cache.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &app{db: db, publisher: events.Noop{}, cache: cache.Noop{}}

	if len(cfg.KafkaBrokers) > 0 {
		a.publisher = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicPrefix)
	} else {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			logger.Warn("redis_disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			a.cache = rc
		}
	}

	users := repo.NewUserRepo(db)
	products := repo.NewProductRepo(db)
	categories := repo.NewCategoryRepo(db)
	tags := repo.NewRepository[models.Tag](db)
	carts := repo.NewCartStore(db)
	orders := repo.NewOrderStore(db)
	reviews := repo.NewReviewRepo(db)

	a.deps = &httpserver.Deps{
		Users: &httpserver.UserHTTP{SecureCookies: cfg.SecureCookies, Svc: &service.UserService{
			Users:   users,
			Carts:   carts,
			Orders:  orders,
			Reviews: reviews,
			Hasher:  hash.Bcrypt{Cost: hash.DefaultCost},
			Tokens:  tokens.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
			Events:  a.publisher,
			Cache:   a.cache,
		}},
		Products: &httpserver.ProductHTTP{Svc: &service.ProductService{
			Products:   products,
			Categories: categories,
			Tags:       tags,
			Cache:      a.cache,
			Events:     a.publisher,
		}},
		Categories: &httpserver.CategoryHTTP{Svc: &service.CategoryService{
			Categories: categories,
			Resolver:   &category.Resolver{Store: categories, Workers: cfg.RelevelWorkers},
		}},
		Tags:       &httpserver.TagHTTP{Svc: &service.TagService{Tags: tags}},
		Carts:      &httpserver.CartHTTP{Svc: service.NewCartService(carts, products, a.publisher)},
		Orders:     &httpserver.OrderHTTP{Svc: service.NewOrderService(orders, users, products, a.publisher)},
		Reviews: &httpserver.ReviewHTTP{Svc: &service.ReviewService{
			Reviews:  reviews,
			Products: products,
			Cache:    a.cache,
			Events:   a.publisher,
		}},
		JWTSecret: cfg.JWTSecret,
		Ready: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	return a, nil
}

func (a *app) Close() error {
	return errors.Join(a.publisher.Close(), a.cache.Close(), pkgdb.Close(a.db))
}
