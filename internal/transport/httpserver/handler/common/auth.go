package common

import (
	"errors"
	"net/http"
	"time"

	userdomain "github.com/saurabhsolanke/expensify-be/internal/domain/user"
	"github.com/saurabhsolanke/expensify-be/internal/transport/httpserver/middleware"
)

type authMeResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w)
		return
	}

	response := authMeResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}

	stored, err := h.Users.GetUser(r.Context(), user.ID)
	switch {
	case err == nil:
		if stored.Email != nil && response.Email == "" {
			response.Email = *stored.Email
		}
		if stored.Name != nil && response.Name == "" {
			response.Name = *stored.Name
		}
		response.CreatedAt = &stored.CreatedAt
	case errors.Is(err, userdomain.ErrUserNotFound):
	default:
		WriteDomainError(w, r, h.log, "auth.me: get user failed", err, "user_id", user.ID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": response})
}
