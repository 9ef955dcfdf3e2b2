package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/toomajBandad/MoonShop-Backend/internal/models"
	"github.com/toomajBandad/MoonShop-Backend/internal/service"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	p := pageOf(c)
	items, total, err := h.Svc.List(ctx, p.offset, p.limit)
	if err != nil {
		return fail(l, "list_orders_error", err)
	}
	return listJSON(c, p, items, total)
}

// owned loads the order in :id and checks the caller may act on it.
func (h *OrderHTTP) owned(c echo.Context, event string) (*models.Order, error) {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order."+event)

	id, err := pathID(c, "id")
	if err != nil {
		return nil, badRequest(l, event+"_error", "id is not a uuid", err)
	}
	o, err := h.Svc.Get(ctx, id)
	if err != nil {
		return nil, fail(l, event+"_error", err)
	}
	if err := actAs(c, l, event+"_error", o.UserID); err != nil {
		return nil, err
	}
	return o, nil
}

func (h *OrderHTTP) Get(c echo.Context) error {
	o, err := h.owned(c, "get_order")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) ByUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.by_user")

	userID, err := pathID(c, "userId")
	if err != nil {
		return badRequest(l, "list_user_orders_error", "userId is not a uuid", err)
	}
	if err := actAs(c, l, "list_user_orders_error", userID); err != nil {
		return err
	}
	p := pageOf(c)
	items, total, err := h.Svc.ListByUser(ctx, userID, p.offset, p.limit)
	if err != nil {
		return fail(l, "list_user_orders_error", err)
	}
	return listJSON(c, p, items, total)
}

func (h *OrderHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_order_error", "invalid body", err)
	}
	if req.UserID == uuid.Nil {
		me, err := caller(c)
		if err != nil {
			l.Warn("create_order_error", "status", 401, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		req.UserID = me
	}
	if err := actAs(c, l, "create_order_error", req.UserID); err != nil {
		return err
	}

	o, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_order_error", err)
	}
	l.Info("create_order_success", "order_id", o.ID)
	return c.JSON(http.StatusCreated, o)
}

func (h *OrderHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.add")

	var req transport.AddLineItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_order_error", "invalid body", err)
	}
	if req.ProductID == uuid.Nil {
		return badRequest(l, "add_to_order_error", "product_id required", nil)
	}
	if req.UserID == uuid.Nil {
		me, err := caller(c)
		if err != nil {
			l.Warn("add_to_order_error", "status", 401, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		req.UserID = me
	}
	if err := actAs(c, l, "add_to_order_error", req.UserID); err != nil {
		return err
	}

	o, err := h.Svc.Add(ctx, req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return fail(l, "add_to_order_error", err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.set_quantity")

	userID, err := pathID(c, "userId")
	if err != nil {
		return badRequest(l, "set_order_quantity_error", "userId is not a uuid", err)
	}
	if err := actAs(c, l, "set_order_quantity_error", userID); err != nil {
		return err
	}

	var req transport.SetLineItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "set_order_quantity_error", "invalid body", err)
	}
	if req.ProductID == uuid.Nil || req.Quantity == nil {
		return badRequest(l, "set_order_quantity_error", "product_id and quantity required", nil)
	}

	o, err := h.Svc.SetQuantity(ctx, userID, req.ProductID, *req.Quantity)
	if err != nil {
		return fail(l, "set_order_quantity_error", err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "delete_order_error", "id is not a uuid", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_order_error", err)
	}
	l.Info("delete_order_success", "order_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "update_order_status_error", "id is not a uuid", err)
	}
	var req transport.StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_order_status_error", "invalid body", err)
	}
	o, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return fail(l, "update_order_status_error", err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) Pay(c echo.Context) error {
	o, err := h.owned(c, "pay_order")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	paid, err := h.Svc.MarkPaid(ctx, o.ID)
	if err != nil {
		return fail(logging.FromContext(ctx).With("handler", "order.pay_order"), "pay_order_error", err)
	}
	return c.JSON(http.StatusOK, paid)
}

func (h *OrderHTTP) Deliver(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.deliver")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "deliver_order_error", "id is not a uuid", err)
	}
	o, err := h.Svc.MarkDelivered(ctx, id)
	if err != nil {
		return fail(l, "deliver_order_error", err)
	}
	return c.JSON(http.StatusOK, o)
}
