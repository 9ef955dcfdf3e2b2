package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toomajBandad/MoonShop-Backend/internal/service"
	"github.com/toomajBandad/MoonShop-Backend/internal/transport"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

type UserHTTP struct {
	Svc *service.UserService
	// SecureCookies marks the access token cookie Secure.
	SecureCookies bool
}

func (h *UserHTTP) setTokenCookie(c echo.Context, token string, exp time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     "accessToken",
		Value:    token,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "register_error", "invalid body", err)
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		return fail(l, "register_error", err)
	}

	h.setTokenCookie(c, res.Token, res.ExpiresAt)
	l.Info("register_success", "user_id", res.User.ID)
	return c.JSON(http.StatusCreated, res)
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login_error", "invalid body", err)
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return fail(l, "login_error", err)
	}

	h.setTokenCookie(c, res.Token, res.ExpiresAt)
	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, res)
}

func (h *UserHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.me")

	id, err := caller(c)
	if err != nil {
		l.Warn("me_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	u, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "me_error", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	p := pageOf(c)
	users, total, err := h.Svc.List(ctx, p.offset, p.limit)
	if err != nil {
		return fail(l, "list_users_error", err)
	}
	return listJSON(c, p, users, total)
}

func (h *UserHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "get_user_error", "id is not a uuid", err)
	}
	u, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_user_error", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "update_user_error", "id is not a uuid", err)
	}
	if err := actAs(c, l, "update_user_error", id); err != nil {
		return err
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_user_error", "invalid body", err)
	}

	u, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_user_error", err)
	}
	l.Info("update_user_success", "user_id", id)
	return c.JSON(http.StatusOK, u)
}

func (h *UserHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.change_password")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "change_password_error", "id is not a uuid", err)
	}
	if me, err := caller(c); err != nil || me != id {
		l.Warn("change_password_error", "status", 403, "user_id", me)
		return echo.NewHTTPError(http.StatusForbidden, "only the owner can change a password")
	}

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "change_password_error", "invalid body", err)
	}

	if err := h.Svc.ChangePassword(ctx, id, req); err != nil {
		return fail(l, "change_password_error", err)
	}
	l.Info("change_password_success", "user_id", id)
	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(l, "delete_user_error", "id is not a uuid", err)
	}
	if err := actAs(c, l, "delete_user_error", id); err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_user_error", err)
	}
	l.Info("delete_user_success", "user_id", id)
	return c.NoContent(http.StatusNoContent)
}
