package common

import (
	"context"

	userdomain "github.com/saurabhsolanke/expensify-be/internal/domain/user"
	"github.com/saurabhsolanke/expensify-be/pkg/logger"
)

type UserService interface {
	GetUser(ctx context.Context, userID string) (*userdomain.User, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Users UserService
	db    Pinger
	log   logger.Logger
}

func New(users UserService, db Pinger, log logger.Logger) *Handlers {
	return &Handlers{
		Users: users,
		db:    db,
		log:   log,
	}
}
