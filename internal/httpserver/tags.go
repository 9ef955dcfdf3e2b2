package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toomajBandad/MoonShop-Backend/internal/service"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

type TagHTTP struct {
	Svc *service.TagService
}

func (h *TagHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.list")

	p := pageOf(c)
	items, total, err := h.Svc.List(ctx, p.offset, p.limit)
	if err != nil {
		return fail(l, "list_tags_error", err)
	}
	return listJSON(c, p, items, total)
}

func (h *TagHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.get")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "get_tag_error", "id is not a uuid", err)
	}
	tag, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_tag_error", err)
	}
	return c.JSON(http.StatusOK, tag)
}

func (h *TagHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.create")

	var req transport.TagRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_tag_error", "invalid body", err)
	}
	tag, err := h.Svc.Create(ctx, req.Name)
	if err != nil {
		return fail(l, "create_tag_error", err)
	}
	return c.JSON(http.StatusCreated, tag)
}

func (h *TagHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.update")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "update_tag_error", "id is not a uuid", err)
	}
	var req transport.TagRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_tag_error", "invalid body", err)
	}
	tag, err := h.Svc.Update(ctx, id, req.Name)
	if err != nil {
		return fail(l, "update_tag_error", err)
	}
	return c.JSON(http.StatusOK, tag)
}

func (h *TagHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.delete")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "delete_tag_error", "id is not a uuid", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_tag_error", err)
	}
	return c.NoContent(http.StatusNoContent)
}
