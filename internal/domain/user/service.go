package user

import (
	"context"
	"strings"
	"time"

	"github.com/saurabhsolanke/expensify-be/internal/domain/ids"
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, nil, 0)
}

func NewServiceWithCache(repo Repository, cache Cache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		cache = noopCache{}
	}
	return &Service{repo: repo, cache: cache, cacheTTL: ttl}
}

// UpsertProfile records the caller on every authenticated request. Empty
// email or name never overwrite stored values, and a recently written
// identical profile is not written again.
func (s *Service) UpsertProfile(ctx context.Context, userID, email, name string) error {
	id, err := ids.Parse("user_id", userID)
	if err != nil {
		return err
	}

	user := User{ID: id}
	if email = strings.TrimSpace(email); email != "" {
		user.Email = &email
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = &name
	}

	if cached, ok := s.cache.GetByUserID(id); ok && covers(cached, &user) {
		return nil
	}

	if err := s.repo.Upsert(ctx, &user); err != nil {
		return err
	}
	s.cache.DeleteByUserID(id)
	if s.cacheTTL <= 0 {
		return nil
	}

	_, err = s.GetUser(ctx, id)
	return err
}

func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	if cached, ok := s.cache.GetByUserID(userID); ok {
		return cached, nil
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.SetByUserID(userID, user, s.cacheTTL)
	return user, nil
}

func covers(stored, incoming *User) bool {
	if incoming.Email != nil && (stored.Email == nil || *stored.Email != *incoming.Email) {
		return false
	}
	if incoming.Name != nil && (stored.Name == nil || *stored.Name != *incoming.Name) {
		return false
	}
	return true
}
