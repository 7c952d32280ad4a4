package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/marketplace/base/ctx"
	hcdomain "github.com/x-xyz/marketplace/domain/healthcheck"
	"github.com/x-xyz/marketplace/middleware"
	"github.com/x-xyz/marketplace/service/store/memory"
	"github.com/x-xyz/marketplace/stores/healthcheck/repository"
	"github.com/x-xyz/marketplace/stores/healthcheck/usecase"
)

type downStore struct{}

func (downStore) Ping(c ctx.Ctx) error {
	return errors.New("connection refused")
}

// slowStore answers only after the ping deadline.
type slowStore struct{}

func (slowStore) Ping(c ctx.Ctx) error {
	select {
	case <-c.Done():
		return c.Err()
	case <-time.After(5 * time.Second):
		return nil
	}
}

func serve(store hcdomain.Pinger) *httptest.ResponseRecorder {
	e := echo.New()
	e.Use(middleware.InitMiddleware().AddContext())
	New(e, usecase.New(repository.New(store, "test")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec
}

func TestHealthy(t *testing.T) {
	rec := serve(memory.New())
	require.Equal(t, http.StatusOK, rec.Code)

	report := hcdomain.Report{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, "ok", report.Healthy)
	require.Equal(t, "test", report.Store.Driver)
}

func TestStoreDown(t *testing.T) {
	rec := serve(downStore{})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	res := errorReport{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "connection refused", res.Message)
	require.Equal(t, "down", res.Report.Healthy)
	require.Equal(t, "test", res.Report.Store.Driver)
}

func TestStorePingTimesOut(t *testing.T) {
	rec := serve(slowStore{})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	res := errorReport{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, context.DeadlineExceeded.Error(), res.Message)
	require.GreaterOrEqual(t, res.Report.Store.LatencyMs, int64(1000))
}
