package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/toomajBandad/MoonShop-Backend/internal/service"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.list")

	p := pageOf(c)
	items, total, err := h.Svc.List(ctx, p.offset, p.limit)
	if err != nil {
		return fail(l, "list_carts_error", err)
	}
	return listJSON(c, p, items, total)
}

func (h *CartHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "get_cart_error", "id is not a uuid", err)
	}
	cart, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_cart_error", err)
	}
	if err := actAs(c, l, "get_cart_error", cart.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) ByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.by_user")

	userID, err := pathID(c, "userId")
	if err != nil {
		return badRequest(l, "get_user_cart_error", "userId is not a uuid", err)
	}
	if err := actAs(c, l, "get_user_cart_error", userID); err != nil {
		return err
	}
	cart, err := h.Svc.ByUser(ctx, userID)
	if err != nil {
		return fail(l, "get_user_cart_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}

// Add merges a line into the cart of the user in the body, the caller when absent.
func (h *CartHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req transport.AddLineItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_cart_error", "invalid body", err)
	}
	if req.ProductID == uuid.Nil {
		return badRequest(l, "add_to_cart_error", "product_id required", nil)
	}
	if req.UserID == uuid.Nil {
		me, err := caller(c)
		if err != nil {
			l.Warn("add_to_cart_error", "status", 401, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		req.UserID = me
	}
	if err := actAs(c, l, "add_to_cart_error", req.UserID); err != nil {
		return err
	}

	cart, err := h.Svc.Add(ctx, req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return fail(l, "add_to_cart_error", err)
	}
	l.Info("add_to_cart_success", "cart_id", cart.ID, "product_id", req.ProductID)
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set_quantity")

	userID, err := pathID(c, "userId")
	if err != nil {
		return badRequest(l, "set_cart_quantity_error", "userId is not a uuid", err)
	}
	if err := actAs(c, l, "set_cart_quantity_error", userID); err != nil {
		return err
	}

	var req transport.SetLineItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "set_cart_quantity_error", "invalid body", err)
	}
	if req.ProductID == uuid.Nil || req.Quantity == nil {
		return badRequest(l, "set_cart_quantity_error", "product_id and quantity required", nil)
	}

	cart, err := h.Svc.SetQuantity(ctx, userID, req.ProductID, *req.Quantity)
	if err != nil {
		return fail(l, "set_cart_quantity_error", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "clear_cart_error", "id is not a uuid", err)
	}
	cart, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "clear_cart_error", err)
	}
	if err := actAs(c, l, "clear_cart_error", cart.UserID); err != nil {
		return err
	}
	if err := h.Svc.Clear(ctx, id); err != nil {
		return fail(l, "clear_cart_error", err)
	}
	l.Info("clear_cart_success", "cart_id", id)
	return c.JSON(http.StatusOK, map[string]string{"message": "cart cleared"})
}
