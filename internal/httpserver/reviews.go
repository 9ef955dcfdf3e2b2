package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toomajBandad/MoonShop-Backend/internal/service"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.list")

	p := pageOf(c)
	items, total, err := h.Svc.List(ctx, p.offset, p.limit)
	if err != nil {
		return fail(l, "list_reviews_error", err)
	}
	return listJSON(c, p, items, total)
}

func (h *ReviewHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.get")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "get_review_error", "id is not a uuid", err)
	}
	r, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_review_error", err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ReviewHTTP) ByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.by_user")

	userID, err := pathID(c, "userId")
	if err != nil {
		return badRequest(l, "list_user_reviews_error", "userId is not a uuid", err)
	}
	p := pageOf(c)
	items, total, err := h.Svc.ListByUser(ctx, userID, p.offset, p.limit)
	if err != nil {
		return fail(l, "list_user_reviews_error", err)
	}
	return listJSON(c, p, items, total)
}

func (h *ReviewHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create")

	userID, err := caller(c)
	if err != nil {
		l.Warn("create_review_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_review_error", "invalid body", err)
	}

	r, err := h.Svc.RecordReview(ctx, userID, req)
	if err != nil {
		return fail(l, "create_review_error", err)
	}
	l.Info("create_review_success", "review_id", r.ID, "product_id", r.ProductID)
	return c.JSON(http.StatusCreated, r)
}

func (h *ReviewHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.update")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "update_review_error", "id is not a uuid", err)
	}
	current, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "update_review_error", err)
	}
	if err := actAs(c, l, "update_review_error", current.UserID); err != nil {
		return err
	}

	var req transport.PatchReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_review_error", "invalid body", err)
	}
	// acceptance is a moderation flag
	if req.IsAccepted != nil && !isAdmin(c) {
		l.Warn("update_review_error", "status", 403, "reason", "is_accepted is admin only")
		return echo.NewHTTPError(http.StatusForbidden, "is_accepted is admin only")
	}

	r, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_review_error", err)
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ReviewHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.delete")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "delete_review_error", "id is not a uuid", err)
	}
	current, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "delete_review_error", err)
	}
	if err := actAs(c, l, "delete_review_error", current.UserID); err != nil {
		return err
	}
	if _, err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_review_error", err)
	}
	l.Info("delete_review_success", "review_id", id)
	return c.NoContent(http.StatusNoContent)
}
