package user

import "context"

type Repository interface {
	Upsert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
}
