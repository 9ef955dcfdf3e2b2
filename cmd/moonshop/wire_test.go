package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toomajBandad/MoonShop-Backend/internal/httpserver"
	"github.com/toomajBandad/MoonShop-Backend/pkg/cache"
	"github.com/toomajBandad/MoonShop-Backend/pkg/config"
	"github.com/toomajBandad/MoonShop-Backend/pkg/events"
	"github.com/toomajBandad/MoonShop-Backend/pkg/logging"
)

func TestNewApp_WithoutKafkaOrRedis(t *testing.T) {
	cfg := config.Config{
		ServiceName: "moonshop-test",
		DatabaseURL: "sqlite://:memory:",
		JWTSecret:   []byte("secret"),
	}

	a, err := newApp(context.Background(), cfg, logging.New("error"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	assert.IsType(t, events.Noop{}, a.publisher)
	assert.IsType(t, cache.Noop{}, a.cache)

	e := echo.New()
	httpserver.Register(e, a.deps)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewApp_BadDSN(t *testing.T) {
	_, err := newApp(context.Background(), config.Config{DatabaseURL: "mysql://nope"}, logging.New("error"))
	require.Error(t, err)
}
