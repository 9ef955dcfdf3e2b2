package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toomajBandad/MoonShop-Backend/internal/service"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

type ProductHTTP struct {
	Svc *service.ProductService
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	p := pageOf(c)
	items, total, err := h.Svc.List(ctx, p.offset, p.limit)
	if err != nil {
		return fail(l, "get_products_error", err)
	}
	l.Info("get_products_success", "total", total)
	return listJSON(c, p, items, total)
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "get_product_error", "id is not a uuid", err)
	}
	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) ByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.by_category")

	p := pageOf(c)
	items, total, err := h.Svc.ByCategoryName(ctx, c.Param("catName"), p.offset, p.limit)
	if err != nil {
		return fail(l, "get_products_by_category_error", err)
	}
	return listJSON(c, p, items, total)
}

func (h *ProductHTTP) ByTag(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.by_tag")

	p := pageOf(c)
	items, total, err := h.Svc.ByTagName(ctx, c.Param("tagName"), p.offset, p.limit)
	if err != nil {
		return fail(l, "get_products_by_tag_error", err)
	}
	return listJSON(c, p, items, total)
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_product_error", "invalid body", err)
	}

	product, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_product_error", err)
	}
	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "update_product_error", "id is not a uuid", err)
	}
	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_product_error", "invalid body", err)
	}

	product, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_product_error", err)
	}
	l.Info("update_product_success", "product_id", id)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) AssignTags(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.assign_tags")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "assign_tags_error", "id is not a uuid", err)
	}
	var req transport.AssignTagsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "assign_tags_error", "invalid body", err)
	}

	product, err := h.Svc.AssignTags(ctx, id, req.Tags)
	if err != nil {
		return fail(l, "assign_tags_error", err)
	}
	l.Info("assign_tags_success", "product_id", id, "tags", len(product.Tags))
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "delete_product_error", "id is not a uuid", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_product_error", err)
	}
	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
