package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/toomajBandad/MoonShop-Backend/internal/models"
)

type ReviewRepo struct {
	*Repository[models.Review]
}

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{Repository: NewRepository[models.Review](db)}
}

// recomputeRating rescans every review of the product in one statement.
func recomputeRating(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]any{
			"ratings":      gorm.Expr("(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = ?)", productID),
			"review_count": gorm.Expr("(SELECT COUNT(*) FROM reviews WHERE product_id = ?)", productID),
		}).Error
}

// CreateAndRecompute inserts the review and refreshes the product rating in
// the same transaction.
func (r *ReviewRepo) CreateAndRecompute(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return translate(err)
		}
		return recomputeRating(tx, review.ProductID)
	})
}

func (r *ReviewRepo) UpdateAndRecompute(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Review, error) {
	var review models.Review
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&review).Error; err != nil {
			return translate(err)
		}
		if err := tx.Model(&review).Updates(fields).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// DeleteAndRecompute returns the removed review, or ErrNotFound.
func (r *ReviewRepo) DeleteAndRecompute(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&review).Error; err != nil {
			return translate(err)
		}
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteByUser removes every review written by the user and refreshes the
// rating of each affected product. It returns those product ids.
func (r *ReviewRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var products []uuid.UUID
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Review{}).Where("user_id = ?", userID).Distinct().Pluck("product_id", &products).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		for _, pid := range products {
			if err := recomputeRating(tx, pid); err != nil {
				return err
			}
		}
		return nil
	})
	return products, err
}

func (r *ReviewRepo) ByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*models.Review, error) {
	return r.FindOne(ctx, "product_id = ? AND user_id = ?", productID, userID)
}
