package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ckobridge/internal/checkout"
	"ckobridge/internal/config"
	"ckobridge/internal/handler/api"
	"ckobridge/internal/identity"
	"ckobridge/internal/ops"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	factory := checkout.NewFactory(config.CheckoutConfig{
		SecretKey: "sk_sbox_test",
		BaseURL:   "http://127.0.0.1:1",
	})
	logger := zap.NewNop()

	e := echo.New()
	Setup(e, &api.Deps{
		Ops:      ops.New(factory, logger),
		Checkout: factory,
		Identity: identity.NewStaticResolver(),
		Logger:   logger,
	})
	return e
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRoutesRegistered(t *testing.T) {
	e := newTestRouter(t)

	want := map[string]string{
		"/create-payment-link": http.MethodGet,
		"/lookup-payment":      http.MethodGet,
		"/refund-payment":      http.MethodGet,
		"/get-user-context":    http.MethodPost,
		"/health":              http.MethodGet,
	}

	registered := make(map[string]string)
	for _, route := range e.Routes() {
		registered[route.Path] = route.Method
	}
	for path, method := range want {
		assert.Equal(t, method, registered[path], "route %s", path)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestCORSPreflight(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/lookup-payment", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
