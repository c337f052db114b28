package user

import "time"

type Cache interface {
	GetByUserID(userID string) (*User, bool)
	SetByUserID(userID string, user *User, ttl time.Duration)
	DeleteByUserID(userID string)
}

type noopCache struct{}

func (noopCache) GetByUserID(string) (*User, bool) {
	return nil, false
}

func (noopCache) SetByUserID(string, *User, time.Duration) {}

func (noopCache) DeleteByUserID(string) {}
