package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/internal/util"
	middleware "github.com/toomajBandad/MoonShop-Backend/pkg/middleware/auth"
	"github.com/toomajBandad/MoonShop-Backend/pkg/tokens"
)

var errForbidden = errors.New("not allowed to act for another user")

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// caller returns the authenticated user id set by the auth middleware.
func caller(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get(middleware.ContextUserID).(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("unauthorized")
	}
	return uuid.Parse(s)
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get(middleware.ContextRole).(string)
	return role == tokens.RoleAdmin
}

// actAs allows the request when the caller is owner or an admin.
func actAs(c echo.Context, l *slog.Logger, event string, owner uuid.UUID) error {
	me, err := caller(c)
	if err != nil {
		l.Warn(event, "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if me != owner && !isAdmin(c) {
		l.Warn(event, "status", 403, "user_id", me, "owner_id", owner, "error", errForbidden)
		return echo.NewHTTPError(http.StatusForbidden, errForbidden.Error())
	}
	return nil
}

type pageParams struct {
	page, offset, limit int
}

func pageOf(c echo.Context) pageParams {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	if page < 1 {
		page = 1
	}
	return pageParams{page: page, offset: offset, limit: limit}
}

func listJSON[T any](c echo.Context, p pageParams, items []T, total int64) error {
	return c.JSON(http.StatusOK, transport.ListResponse[T]{
		Data: items,
		Meta: util.Meta(p.page, p.offset, p.limit, total),
	})
}
