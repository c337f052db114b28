package inmemory

import (
	"time"

	categorydomain "github.com/saurabhsolanke/expensify-be/internal/domain/category"
)

// InMemoryCategoriesCache holds each user's category list. Any write to a
// user's categories must call DeleteByUserID.
type InMemoryCategoriesCache struct {
	store *ttlStore[[]categorydomain.Category]
}

func NewInMemoryCategoriesCache() *InMemoryCategoriesCache {
	return &InMemoryCategoriesCache{store: newTTLStore(cloneCategories)}
}

func (c *InMemoryCategoriesCache) GetByUserID(userID string) ([]categorydomain.Category, bool) {
	return c.store.get(userID)
}

func (c *InMemoryCategoriesCache) SetByUserID(userID string, categories []categorydomain.Category, ttl time.Duration) {
	c.store.set(userID, categories, ttl)
}

func (c *InMemoryCategoriesCache) DeleteByUserID(userID string) {
	c.store.delete(userID)
}

func cloneCategories(categories []categorydomain.Category) []categorydomain.Category {
	if categories == nil {
		return nil
	}
	cloned := make([]categorydomain.Category, len(categories))
	copy(cloned, categories)
	return cloned
}
