package inmemory

import (
	"time"

	userdomain "github.com/saurabhsolanke/expensify-be/internal/domain/user"
)

// InMemoryUsersCache remembers recently upserted users so authenticated
// requests do not write the users table every time.
type InMemoryUsersCache struct {
	store *ttlStore[userdomain.User]
}

func NewInMemoryUsersCache() *InMemoryUsersCache {
	return &InMemoryUsersCache{store: newTTLStore(cloneUser)}
}

func (c *InMemoryUsersCache) GetByUserID(userID string) (*userdomain.User, bool) {
	user, ok := c.store.get(userID)
	if !ok {
		return nil, false
	}
	return &user, true
}

func (c *InMemoryUsersCache) SetByUserID(userID string, user *userdomain.User, ttl time.Duration) {
	if user == nil {
		c.store.delete(userID)
		return
	}
	c.store.set(userID, *user, ttl)
}

func (c *InMemoryUsersCache) DeleteByUserID(userID string) {
	c.store.delete(userID)
}

func cloneUser(user userdomain.User) userdomain.User {
	if user.Email != nil {
		email := *user.Email
		user.Email = &email
	}
	if user.Name != nil {
		name := *user.Name
		user.Name = &name
	}
	return user
}
