package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saurabhsolanke/expensify-be/internal/config"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/common"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/expenses"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/handler/ledger"
	"github.com/saurabhsolanke/expensify-be/pkg/logger"
)

func newTestRouter() http.Handler {
	log := logger.Nop()
	pagination := config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100}
	cfg := config.Config{
		CORSAllowedOrigins: []string{"http://app.test"},
		Pagination:         pagination,
		Auth:               config.AuthConfig{JWTSecret: "secret"},
	}
	handlers := handler.New(
		common.New(nil, nil, log),
		expenses.New(nil, nil, nil, pagination, log),
		ledger.New(nil, nil, nil, nil, pagination, log),
	)
	return NewRouter(cfg, handlers, nil, log)
}

func TestHealthIsPublic(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestResourceRoutesRequireToken(t *testing.T) {
	router := newTestRouter()
	paths := []string{
		"/api/auth/me",
		"/api/expenses",
		"/api/expenses/analytics/summary",
		"/api/categories",
		"/api/credit-cards",
		"/api/borrowed-money/overdue",
		"/api/payments/summary",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid_token")
		})
	}
}

func TestPreflightSkipsAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/expenses", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://app.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServerTimeouts(t *testing.T) {
	srv := New(config.Config{HTTPPort: "9090"}, http.NotFoundHandler())

	assert.Equal(t, ":9090", srv.Addr)
	assert.Greater(t, srv.WriteTimeout, requestTimeout)
	assert.NotZero(t, srv.ReadHeaderTimeout)
	assert.NotZero(t, srv.IdleTimeout)
}
