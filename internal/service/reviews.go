package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/toomajBandad/MoonShop-Backend/internal/lineitem"
	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/repo"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/cache"
	"github.com/toomajBandad/MoonShop-Backend/pkg/events"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

type ReviewService struct {
	Reviews  *repo.ReviewRepo
	Products *repo.ProductRepo
	Cache    ProductCache
	Events   Publisher
}

func validRating(r int) bool { return r >= 1 && r <= 5 }

func (s *ReviewService) invalidate(ctx context.Context, productID uuid.UUID) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, cache.ProductKey(productID.String())); err != nil {
		logging.FromContext(ctx).Warn("cache_invalidate_error", "product_id", productID, "error", err)
	}
}

// RecordReview stores one review per (product, user) and refreshes the
// product's mean rating with it.
func (s *ReviewService) RecordReview(ctx context.Context, userID uuid.UUID, req transport.CreateReviewRequest) (*models.Review, error) {
	l := logging.FromContext(ctx).With("svc", "review.record", "user_id", userID, "product_id", req.ProductID)

	if !validRating(req.Rating) {
		return nil, fmt.Errorf("got %d: %w", req.Rating, ErrInvalidRating)
	}
	if req.ProductID == uuid.Nil {
		return nil, fmt.Errorf("product_id is required: %w", ErrValidation)
	}

	if ok, err := s.Products.Exists(ctx, "id = ?", req.ProductID); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("product %s: %w: %w", req.ProductID, ErrNotFound, lineitem.ErrProductNotFound)
	}

	if _, err := s.Reviews.ByProductAndUser(ctx, req.ProductID, userID); err == nil {
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	review := &models.Review{
		ProductID: req.ProductID,
		UserID:    userID,
		OrderID:   req.OrderID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}
	if err := s.Reviews.CreateAndRecompute(ctx, review); err != nil {
		// lost the race against a concurrent review by the same user
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateReview
		}
		l.Error("record_review_error", "error", err)
		return nil, err
	}
	s.invalidate(ctx, review.ProductID)

	publish(ctx, s.Events, events.TopicReviews, "review_recorded", review.ID.String(), userID.String(),
		map[string]any{"product_id": review.ProductID, "rating": review.Rating})
	l.Info("review_recorded", "review_id", review.ID, "rating", review.Rating)
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	r, err := s.Reviews.FindByID(ctx, id)
	return r, notFound(err, "review")
}

func (s *ReviewService) List(ctx context.Context, offset, limit int) ([]models.Review, int64, error) {
	return s.Reviews.FindMany(ctx, repo.Query{Offset: offset, Limit: limit})
}

func (s *ReviewService) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Review, int64, error) {
	return s.Reviews.FindMany(ctx, repo.Query{Where: "user_id = ?", Args: []any{userID}, Offset: offset, Limit: limit})
}

func (s *ReviewService) Update(ctx context.Context, id uuid.UUID, req transport.PatchReviewRequest) (*models.Review, error) {
	fields := map[string]any{}
	if req.Rating != nil {
		if !validRating(*req.Rating) {
			return nil, fmt.Errorf("got %d: %w", *req.Rating, ErrInvalidRating)
		}
		fields["rating"] = *req.Rating
	}
	if req.Comment != nil {
		fields["comment"] = strings.TrimSpace(*req.Comment)
	}
	if req.IsAccepted != nil {
		fields["is_accepted"] = *req.IsAccepted
	}
	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	r, err := s.Reviews.UpdateAndRecompute(ctx, id, fields)
	if err != nil {
		return nil, notFound(err, "review")
	}
	s.invalidate(ctx, r.ProductID)
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	r, err := s.Reviews.DeleteAndRecompute(ctx, id)
	if err != nil {
		return nil, notFound(err, "review")
	}
	s.invalidate(ctx, r.ProductID)
	publish(ctx, s.Events, events.TopicReviews, "review_deleted", r.ID.String(), r.UserID.String(),
		map[string]any{"product_id": r.ProductID})
	return r, nil
}
