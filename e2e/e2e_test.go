//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/saurabhsolanke/expensify-be/internal/app"
	"github.com/saurabhsolanke/expensify-be/internal/config"
	"github.com/saurabhsolanke/expensify-be/internal/db"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/middleware"
	"github.com/saurabhsolanke/expensify-be/pkg/logger"
)

const (
	jwtSecret = "e2e-secret"
	userA     = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	userB     = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		container, err := tcpostgres.RunContainer(ctx,
			testcontainers.WithImage("postgres:16-alpine"),
			tcpostgres.WithDatabase("expensify"),
			tcpostgres.WithUsername("postgres"),
			tcpostgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			t.Skipf("postgres container unavailable: %v", err)
		}
		t.Cleanup(func() {
			_ = container.Terminate(context.Background())
		})

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)
	}

	log := logger.Nop()
	cfg := config.Config{
		HTTPPort:           "0",
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		Pagination:         config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
		DB:                 config.DBConfig{DSN: dsn},
		Auth:               config.AuthConfig{JWTSecret: jwtSecret},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(dbConn, log))
	require.NoError(t, dbConn.Exec("TRUNCATE TABLE payments, expenses, borrowed_money, credit_cards, categories, users CASCADE").Error)

	router, err := app.NewRouter(cfg, dbConn, log)
	require.NoError(t, err)

	env := &testEnv{server: httptest.NewServer(router), db: dbConn}
	t.Cleanup(env.Close)
	return env
}

func (e *testEnv) Close() {
	e.server.Close()
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.TokenClaims{
		UserID: userID,
		Email:  userID[:8] + "@example.com",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp.StatusCode, decoded
}

func entity(t *testing.T, body map[string]interface{}, key string) map[string]interface{} {
	t.Helper()
	value, ok := body[key].(map[string]interface{})
	require.True(t, ok, "missing %q in %v", key, body)
	return value
}

func errorCode(body map[string]interface{}) string {
	envelope, _ := body["error"].(map[string]interface{})
	code, _ := envelope["code"].(string)
	return code
}

func TestHealthAndAuth(t *testing.T) {
	env := setupE2E(t)

	status, body := env.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["database"])

	status, _ = env.do(t, http.MethodGet, "/api/expenses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = env.do(t, http.MethodGet, "/api/auth/me", tokenFor(t, userA), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, userA, entity(t, body, "user")["id"])
}

func TestRepaymentLedger(t *testing.T) {
	env := setupE2E(t)
	token := tokenFor(t, userA)

	status, body := env.do(t, http.MethodPost, "/api/borrowed-money", token, map[string]interface{}{
		"name": "Asha", "amount": 1000, "type": "lent",
	})
	require.Equal(t, http.StatusCreated, status, body)
	recordID := entity(t, body, "borrowed_money")["id"].(string)

	status, body = env.do(t, http.MethodPost, "/api/borrowed-money/"+recordID+"/repay", token, map[string]interface{}{"amount": 400})
	require.Equal(t, http.StatusOK, status, body)
	record := entity(t, body, "borrowed_money")
	assert.Equal(t, 400.0, record["repaid_amount"])
	assert.Equal(t, "partial", record["status"])
	firstPaymentID := entity(t, body, "payment")["id"].(string)

	status, body = env.do(t, http.MethodPost, "/api/borrowed-money/"+recordID+"/repay", token, map[string]interface{}{"amount": 700})
	require.Equal(t, http.StatusBadRequest, status, body)
	assert.Equal(t, "exceeds_remaining", errorCode(body))
	assert.Equal(t, 600.0, entity(t, body, "error")["remaining_amount"])

	status, body = env.do(t, http.MethodPost, "/api/borrowed-money/"+recordID+"/repay", token, map[string]interface{}{"amount": 600})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "repaid", entity(t, body, "borrowed_money")["status"])

	status, body = env.do(t, http.MethodGet, "/api/borrowed-money/"+recordID+"/payments", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 2.0, body["total"])

	status, _ = env.do(t, http.MethodDelete, "/api/payments/"+firstPaymentID, token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodGet, "/api/borrowed-money/"+recordID, token, nil)
	require.Equal(t, http.StatusOK, status, body)
	record = entity(t, body, "borrowed_money")
	assert.Equal(t, 600.0, record["repaid_amount"])
	assert.Equal(t, "partial", record["status"])

	status, body = env.do(t, http.MethodDelete, "/api/borrowed-money/"+recordID, token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "borrowed_has_payments", errorCode(body))

	status, body = env.do(t, http.MethodGet, "/api/borrowed-money/summary", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	lent := entity(t, entity(t, body, "summary"), "lent")
	assert.Equal(t, 400.0, lent["remaining"])

	status, body = env.do(t, http.MethodGet, "/api/borrowed-money/"+recordID, tokenFor(t, userB), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "borrowed_not_found", errorCode(body))

	status, body = env.do(t, http.MethodPost, "/api/borrowed-money", token, map[string]interface{}{
		"name": "Kiran", "amount": 300, "type": "borrowed",
	})
	require.Equal(t, http.StatusCreated, status, body)
	spentID := entity(t, body, "borrowed_money")["id"].(string)

	status, body = env.do(t, http.MethodPost, "/api/categories", token, map[string]interface{}{"name": "Loans"})
	require.Equal(t, http.StatusCreated, status, body)
	categoryID := entity(t, body, "category")["id"].(string)

	status, body = env.do(t, http.MethodPost, "/api/expenses", token, map[string]interface{}{
		"amount": 120, "category_id": categoryID, "payment_mode": "borrowed", "borrowed_id": spentID,
	})
	require.Equal(t, http.StatusCreated, status, body)

	status, body = env.do(t, http.MethodDelete, "/api/borrowed-money/"+spentID, token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "borrowed_has_expenses", errorCode(body))

	status, body = env.do(t, http.MethodPost, "/api/borrowed-money/"+spentID+"/repay", token, map[string]interface{}{"amount": 0.004})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "amount", entity(t, body, "error")["field"])
}

func TestExpensesWithCardAndAnalytics(t *testing.T) {
	env := setupE2E(t)
	token := tokenFor(t, userA)

	status, body := env.do(t, http.MethodPost, "/api/categories/setup-defaults", token, nil)
	require.Equal(t, http.StatusCreated, status, body)
	categories := body["categories"].([]interface{})
	require.Len(t, categories, 10)
	categoryID := categories[0].(map[string]interface{})["id"].(string)

	status, body = env.do(t, http.MethodPost, "/api/categories/setup-defaults", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "defaults_exist", errorCode(body))

	status, body = env.do(t, http.MethodPost, "/api/credit-cards", token, map[string]interface{}{
		"bank_name": "HDFC", "card_number": "4242", "limit_amount": 5000, "due_date": 15,
	})
	require.Equal(t, http.StatusCreated, status, body)
	cardID := entity(t, body, "credit_card")["id"].(string)

	today := time.Now().UTC().Format("2006-01-02")
	status, body = env.do(t, http.MethodPost, "/api/expenses", token, map[string]interface{}{
		"amount": 1250.75, "category_id": categoryID, "payment_mode": "credit_card", "credit_card_id": cardID, "date": today,
	})
	require.Equal(t, http.StatusCreated, status, body)

	status, body = env.do(t, http.MethodPost, "/api/expenses", token, map[string]interface{}{
		"amount": 100, "category_id": categoryID, "payment_mode": "credit_card",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "credit_card_id", entity(t, body, "error")["field"])

	status, body = env.do(t, http.MethodPost, "/api/expenses", token, map[string]interface{}{
		"amount": 100, "category_id": "not-a-uuid", "payment_mode": "cash",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_id_format", errorCode(body))

	status, body = env.do(t, http.MethodGet, "/api/credit-cards/"+cardID, token, nil)
	require.Equal(t, http.StatusOK, status, body)
	summary := entity(t, body, "summary")
	assert.Equal(t, 1250.75, summary["month_total"])
	assert.Equal(t, 3749.25, summary["available_limit"])

	status, body = env.do(t, http.MethodDelete, "/api/credit-cards/"+cardID, token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "credit_card_in_use", errorCode(body))

	status, body = env.do(t, http.MethodGet, "/api/expenses/analytics/summary", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	analytics := entity(t, body, "summary")
	assert.Equal(t, 1250.75, analytics["total_amount"])
	assert.Len(t, analytics["monthly_trend"], 1)

	status, body = env.do(t, http.MethodGet, "/api/expenses?payment_mode=credit_card&limit=1", token, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 1.0, body["total"])
	assert.Equal(t, 1.0, body["currentPage"])
	assert.Equal(t, 1.0, body["totalPages"])

	status, body = env.do(t, http.MethodGet, "/api/expenses", tokenFor(t, userB), nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, 0.0, body["total"])
}
