package inmemory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	categorydomain "github.com/saurabhsolanke/expensify-be/internal/domain/category"
	userdomain "github.com/saurabhsolanke/expensify-be/internal/domain/user"
)

func TestCategoriesCacheExpires(t *testing.T) {
	cache := NewInMemoryCategoriesCache()
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.store.now = func() time.Time { return current }

	cache.SetByUserID("u1", []categorydomain.Category{{ID: "c1", Name: "Food"}}, time.Minute)

	items, ok := cache.GetByUserID("u1")
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "Food", items[0].Name)

	items[0].Name = "mutated"
	again, ok := cache.GetByUserID("u1")
	require.True(t, ok)
	assert.Equal(t, "Food", again[0].Name, "cached slice must not alias callers")

	_, ok = cache.GetByUserID("u2")
	assert.False(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = cache.GetByUserID("u1")
	assert.False(t, ok)
}

func TestCategoriesCacheDeleteAndZeroTTL(t *testing.T) {
	cache := NewInMemoryCategoriesCache()

	cache.SetByUserID("u1", []categorydomain.Category{{ID: "c1"}}, time.Minute)
	cache.DeleteByUserID("u1")
	_, ok := cache.GetByUserID("u1")
	assert.False(t, ok)

	cache.SetByUserID("u1", []categorydomain.Category{{ID: "c1"}}, 0)
	_, ok = cache.GetByUserID("u1")
	assert.False(t, ok)
}

func TestUsersCacheClonesValues(t *testing.T) {
	cache := NewInMemoryUsersCache()
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache.store.now = func() time.Time { return current }

	email := "me@example.com"
	cache.SetByUserID("u1", &userdomain.User{ID: "u1", Email: &email}, time.Minute)
	email = "changed@example.com"

	user, ok := cache.GetByUserID("u1")
	require.True(t, ok)
	require.NotNil(t, user.Email)
	assert.Equal(t, "me@example.com", *user.Email)

	current = current.Add(time.Minute)
	_, ok = cache.GetByUserID("u1")
	assert.False(t, ok)
}
