package user

import "github.com/saurabhsolanke/expensify-be/internal/domain/apperr"

var ErrUserNotFound = apperr.New(apperr.KindNotFound, "user_not_found", "user not found")
