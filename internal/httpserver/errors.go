package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toomajBandad/MoonShop-Backend/internal/category"
	"github.com/toomajBandad/MoonShop-Backend/internal/lineitem"
	"github.com/toomajBandad/MoonShop-Backend/internal/service"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, lineitem.ErrContainerNotFound),
		errors.Is(err, lineitem.ErrItemNotFound),
		errors.Is(err, lineitem.ErrProductNotFound),
		errors.Is(err, category.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, lineitem.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, category.ErrCycleDetected):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, lineitem.ErrContainerLocked):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// fail logs err under event and converts it to an echo.HTTPError. Server
// errors keep their details out of the response.
func fail(l *slog.Logger, event string, err error) error {
	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		l.Error(event, "status", code, "error", err)
		return echo.NewHTTPError(code, "internal server error")
	}
	l.Warn(event, "status", code, "error", err)
	return echo.NewHTTPError(code, err.Error())
}

func badRequest(l *slog.Logger, event, reason string, err error) error {
	l.Warn(event, "status", 400, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}
