package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userdomain "github.com/saurabhsolanke/expensify-be/internal/domain/user"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/middleware"
	"github.com/saurabhsolanke/expensify-be/pkg/logger"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(ctx context.Context) error {
	return p.err
}

type fakeUsers struct {
	user *userdomain.User
	err  error
}

func (f fakeUsers) GetUser(ctx context.Context, userID string) (*userdomain.User, error) {
	return f.user, f.err
}

func TestHealth(t *testing.T) {
	h := New(fakeUsers{}, fakePinger{}, logger.Nop())
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)

	h = New(fakeUsers{}, fakePinger{err: errors.New("down")}, logger.Nop())
	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unreachable")
}

func TestAuthMe(t *testing.T) {
	name := "Stored Name"
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h := New(fakeUsers{user: &userdomain.User{ID: "u1", Name: &name, CreatedAt: created}}, nil, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), middleware.User{ID: "u1", Email: "me@example.com"}))
	rec := httptest.NewRecorder()
	h.AuthMe(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		User authMeResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "me@example.com", body.User.Email)
	assert.Equal(t, "Stored Name", body.User.Name)
	require.NotNil(t, body.User.CreatedAt)
	assert.True(t, created.Equal(*body.User.CreatedAt))
}

func TestAuthMeWithoutUser(t *testing.T) {
	h := New(fakeUsers{err: userdomain.ErrUserNotFound}, nil, logger.Nop())
	rec := httptest.NewRecorder()
	h.AuthMe(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
