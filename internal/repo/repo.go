package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/toomajBandad/MoonShop-Backend/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

const pgUniqueViolation = "23505"

// translate maps driver errors onto ErrNotFound and ErrDuplicate while keeping
// the original error in the chain.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	return err
}

func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Query narrows FindMany. Zero values mean no filter, default order, no paging.
type Query struct {
	Where   string
	Args    []any
	Order   string
	Offset  int
	Limit   int
	Preload []string
}

// Repository is the CRUD surface shared by every entity table.
type Repository[T any] struct {
	DB *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{DB: db}
}

func (r *Repository[T]) FindByID(ctx context.Context, id uuid.UUID, preload ...string) (*T, error) {
	q := r.DB.WithContext(ctx)
	for _, p := range preload {
		q = q.Preload(p)
	}
	var v T
	if err := q.Where("id = ?", id).First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *Repository[T]) FindOne(ctx context.Context, where string, args ...any) (*T, error) {
	var v T
	if err := r.DB.WithContext(ctx).Where(where, args...).First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *Repository[T]) Exists(ctx context.Context, where string, args ...any) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(new(T)).Where(where, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindMany returns one page of rows and the total row count for the filter.
func (r *Repository[T]) FindMany(ctx context.Context, q Query) ([]T, int64, error) {
	base := r.DB.WithContext(ctx).Model(new(T))
	if q.Where != "" {
		base = base.Where(q.Where, q.Args...)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := base
	for _, p := range q.Preload {
		page = page.Preload(p)
	}
	order := q.Order
	if order == "" {
		order = "created_at DESC"
	}
	page = page.Order(order)
	if q.Limit > 0 {
		page = page.Limit(q.Limit).Offset(q.Offset)
	}

	items := make([]T, 0)
	if err := page.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repository[T]) Create(ctx context.Context, v *T) error {
	return translate(r.DB.WithContext(ctx).Create(v).Error)
}

// Update applies fields to the row with id and returns the fresh row.
func (r *Repository[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	if len(fields) > 0 {
		res := r.DB.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete reports whether a row was removed.
func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repository[T]) DeleteWhere(ctx context.Context, where string, args ...any) (int64, error) {
	res := r.DB.WithContext(ctx).Where(where, args...).Delete(new(T))
	return res.RowsAffected, res.Error
}
