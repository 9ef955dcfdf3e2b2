package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toomajBandad/MoonShop-Backend/internal/category"
	"github.com/toomajBandad/MoonShop-Backend/internal/service"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

type CategoryHTTP struct {
	Svc *service.CategoryService
}

func (h *CategoryHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	p := pageOf(c)
	items, total, err := h.Svc.List(ctx, p.offset, p.limit)
	if err != nil {
		return fail(l, "list_categories_error", err)
	}
	return listJSON(c, p, items, total)
}

func (h *CategoryHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "get_category_error", "id is not a uuid", err)
	}
	cat, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_category_error", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_category_error", "invalid body", err)
	}
	cat, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_category_error", err)
	}
	l.Info("create_category_success", "category_id", cat.ID, "level", cat.Level)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "update_category_error", "id is not a uuid", err)
	}
	var req transport.PatchCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_category_error", "invalid body", err)
	}
	cat, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_category_error", err)
	}
	l.Info("update_category_success", "category_id", id)
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "delete_category_error", "id is not a uuid", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_category_error", err)
	}
	l.Info("delete_category_success", "category_id", id)
	return c.NoContent(http.StatusNoContent)
}

// Relevel answers 409 with the report when part of the tree is cyclic.
func (h *CategoryHTTP) Relevel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.relevel")

	report, err := h.Svc.RecomputeLevels(ctx)
	if errors.Is(err, category.ErrCycleDetected) {
		l.Warn("relevel_cycles", "status", 409, "cyclic", len(report.Cyclic))
		return c.JSON(http.StatusConflict, report)
	}
	if err != nil {
		return fail(l, "relevel_error", err)
	}
	l.Info("relevel_success", "scanned", report.Scanned, "updated", report.Updated)
	return c.JSON(http.StatusOK, report)
}
