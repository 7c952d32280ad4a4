package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/marketplace/base/ctx"
)

func TestAddContextAndResponseLogger(t *testing.T) {
	req := require.New(t)
	m := InitMiddleware()
	e := echo.New()
	e.Use(m.AddContext(), m.ResponseLogger())

	var seen bool
	e.GET("/ping", func(c echo.Context) error {
		_, seen = c.Get("ctx").(ctx.Ctx)
		return c.String(http.StatusTeapot, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	req.True(seen)
	req.Equal(http.StatusTeapot, rec.Code)
}

func TestIsValidAddress(t *testing.T) {
	req := require.New(t)
	e := echo.New()
	e.GET("/a/:address", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, IsValidAddress("address"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/a/0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", nil))
	req.Equal(http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/a/nope", nil))
	req.Equal(http.StatusBadRequest, rec.Code)
}
