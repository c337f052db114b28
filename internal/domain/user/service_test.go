package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saurabhsolanke/expensify-be/internal/domain/apperr"
)

type fakeUsersRepo struct {
	users map[string]User
}

func (r *fakeUsersRepo) Upsert(ctx context.Context, user *User) error {
	stored := r.users[user.ID]
	stored.ID = user.ID
	if user.Email != nil {
		stored.Email = user.Email
	}
	if user.Name != nil {
		stored.Name = user.Name
	}
	r.users[user.ID] = stored
	return nil
}

func (r *fakeUsersRepo) GetByID(ctx context.Context, userID string) (*User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func TestUpsertProfileKeepsKnownFields(t *testing.T) {
	repo := &fakeUsersRepo{users: make(map[string]User)}
	svc := NewService(repo)
	ctx := context.Background()
	id := "AAAAAAAA-AAAA-4AAA-8AAA-AAAAAAAAAAAA"

	if err := svc.UpsertProfile(ctx, id, "me@example.com", "Me"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.UpsertProfile(ctx, id, "", " "); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	user, err := svc.GetUser(ctx, "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Email == nil || *user.Email != "me@example.com" || user.Name == nil || *user.Name != "Me" {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := svc.GetUser(ctx, "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpsertProfileRejectsMalformedID(t *testing.T) {
	svc := NewService(&fakeUsersRepo{users: make(map[string]User)})

	if err := svc.UpsertProfile(context.Background(), "user-1", "", ""); apperr.KindOf(err) != apperr.KindInvalidFormat {
		t.Fatalf("expected invalid format, got %v", err)
	}
}

type mapCache struct {
	items map[string]User
}

func (c *mapCache) GetByUserID(userID string) (*User, bool) {
	user, ok := c.items[userID]
	return &user, ok
}

func (c *mapCache) SetByUserID(userID string, user *User, ttl time.Duration) {
	c.items[userID] = *user
}

func (c *mapCache) DeleteByUserID(userID string) {
	delete(c.items, userID)
}

type countingRepo struct {
	fakeUsersRepo
	upserts int
}

func (r *countingRepo) Upsert(ctx context.Context, user *User) error {
	r.upserts++
	return r.fakeUsersRepo.Upsert(ctx, user)
}

func TestUpsertProfileSkipsUnchangedCachedUser(t *testing.T) {
	repo := &countingRepo{fakeUsersRepo: fakeUsersRepo{users: make(map[string]User)}}
	svc := NewServiceWithCache(repo, &mapCache{items: make(map[string]User)}, time.Minute)
	ctx := context.Background()
	id := "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"

	for i := 0; i < 3; i++ {
		if err := svc.UpsertProfile(ctx, id, "me@example.com", ""); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	if repo.upserts != 1 {
		t.Fatalf("expected one write, got %d", repo.upserts)
	}

	if err := svc.UpsertProfile(ctx, id, "new@example.com", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.upserts != 2 {
		t.Fatalf("expected changed email to be written, got %d writes", repo.upserts)
	}
}
